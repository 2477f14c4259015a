package share

import (
	"encoding/base64"
	"testing"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePayload() Payload {
	day := domain.NewPlaceholderDay("day-1", 1, "2/10", "北海道")
	day.Attractions = []domain.Attraction{{
		ID:          "attr-1",
		Name:        "[12:00] 午餐",
		Category:    domain.CategoryFood,
		Description: "1. 一蘭 2. 松屋",
		Tags:        []domain.Tag{domain.TagMustEat},
		MapQuery:    "午餐",
		PlanVariant: "A",
		SubOptions: []domain.SubOption{
			{Label: "A plan", Name: "一蘭", Description: "一蘭", MapQuery: "一蘭"},
			{Label: "B plan", Name: "松屋", Description: "松屋\n📝 24h", MapQuery: "松屋"},
		},
	}}
	return Payload{
		Config:   Config{Name: "Hokkaido 2027", Destination: "北海道", StartDate: "2027-02-10", EndDate: "2027-02-11"},
		DayOrder: []string{"day-1"},
		Days:     []domain.Day{day},
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	p := samplePayload()

	code, err := Encode(p)
	require.NoError(t, err)

	got, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestEncode_MatchesBrowserEncoding(t *testing.T) {
	code, err := Encode(Payload{Config: Config{Name: "a b"}})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(code)
	require.NoError(t, err)
	assert.Equal(t,
		"%7B%22config%22%3A%7B%22tripName%22%3A%22a%20b%22%2C%22location%22%3A%22%22%2C%22startDate%22%3A%22%22%2C%22endDate%22%3A%22%22%7D%2C%22dayOrder%22%3A%5B%5D%2C%22days%22%3A%5B%5D%7D",
		string(raw))
}

func TestDecode_AcceptsWhitespaceAndMissingPadding(t *testing.T) {
	code, err := Encode(samplePayload())
	require.NoError(t, err)

	wrapped := code[:10] + "\n  " + code[10:]
	_, err = Decode(wrapped)
	require.NoError(t, err)

	trimmed := code
	for len(trimmed) > 0 && trimmed[len(trimmed)-1] == '=' {
		trimmed = trimmed[:len(trimmed)-1]
	}
	_, err = Decode(trimmed)
	require.NoError(t, err)
}

func TestDecode_Rejects(t *testing.T) {
	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(escapeURIComponent(s)))
	}

	tests := []struct {
		name string
		code string
	}{
		{"empty", "   "},
		{"not base64", "!!!not-base64!!!"},
		{"bad escape", base64.StdEncoding.EncodeToString([]byte("%zz"))},
		{"not json", encode("hello")},
		{"missing config", encode(`{"dayOrder":[],"days":[]}`)},
		{"missing dayOrder", encode(`{"config":{},"days":[]}`)},
		{"missing days", encode(`{"config":{},"dayOrder":[]}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecode_IgnoresUnknownSections(t *testing.T) {
	code := base64.StdEncoding.EncodeToString([]byte(escapeURIComponent(
		`{"config":{"tripName":"x"},"dayOrder":[],"days":[],"tickets":[{"id":"t1"}]}`)))

	p, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, "x", p.Config.Name)
	assert.Empty(t, p.Days)
}

func TestEscapeURIComponent(t *testing.T) {
	assert.Equal(t, "abc-_.!~*'()", escapeURIComponent("abc-_.!~*'()"))
	assert.Equal(t, "%20%2F%3F%26%3D%2B", escapeURIComponent(" /?&=+"))
	assert.Equal(t, "%E5%8D%88", escapeURIComponent("午"))
}
