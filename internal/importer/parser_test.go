package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sheet renders rows the way a spreadsheet puts them on the clipboard.
func sheet(rows ...[]string) string {
	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteByte('\t')
			}
			if strings.ContainsAny(cell, "\t\n\"") {
				cell = `"` + strings.ReplaceAll(cell, `"`, `""`) + `"`
			}
			b.WriteString(cell)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("attr-%d", n)
	}
}

func newTestParser() *Parser {
	return NewParser(WithIDFunc(seqIDs()))
}

func testDays(n int) []domain.Day {
	days := make([]domain.Day, n)
	for i := range days {
		days[i] = domain.NewPlaceholderDay(fmt.Sprintf("day-%d", i+1), i+1, "", "Hokkaido")
	}
	return days
}

func TestParse_BlankInputIsNoOp(t *testing.T) {
	days := testDays(2)
	days[0].Attractions = []domain.Attraction{{ID: "keep", Name: "Existing"}}

	for _, text := range []string{"", "   ", "\n\n", "\t\t\n"} {
		res := newTestParser().ParseText(text, days)
		assert.True(t, res.NoOp, "%q", text)
		assert.Equal(t, days, res.Days)
	}
}

func TestParse_HorizontalTwoDays(t *testing.T) {
	text := sheet(
		[]string{"2/10", "", "", "", "2/11", "", "", ""},
		[]string{"時間", "活動地點", "簡介", "備註", "時間", "活動地點", "簡介", "備註"},
		[]string{"08:00", "新千歲機場", "抵達北海道", "", "09:00", "小樽運河", "散步", "記得帶相機"},
		[]string{"女生行程", "", "", "", "", "", "", ""},
		[]string{"12:00", "午餐", "1. 一蘭\n2. 松屋", "1. 排隊\n2. 24小時", "", "", "", ""},
	)

	res := newTestParser().ParseText(text, testDays(1))

	assert.Equal(t, ModeHorizontal, res.Mode)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 3, res.Imported)
	require.Len(t, res.Days, 2)

	day1 := res.Days[0]
	require.Len(t, day1.Attractions, 2)

	first := day1.Attractions[0]
	assert.Equal(t, "attr-1", first.ID)
	assert.Equal(t, "[08:00] 新千歲機場", first.Name)
	assert.Equal(t, domain.CategoryTransit, first.Category)
	assert.Equal(t, "抵達北海道", first.Description)
	assert.Equal(t, "新千歲機場", first.MapQuery)
	assert.Empty(t, first.PlanVariant)
	assert.NotNil(t, first.Tags)

	lunch := day1.Attractions[1]
	assert.Equal(t, "[12:00] 午餐", lunch.Name)
	assert.Equal(t, domain.CategoryFood, lunch.Category)
	assert.Equal(t, "女生行程", lunch.PlanVariant)
	assert.True(t, lunch.IsMultiChoice())
	require.Len(t, lunch.SubOptions, 2)
	assert.Equal(t, "A plan", lunch.SubOptions[0].Label)
	assert.Equal(t, "一蘭\n📝 排隊", lunch.SubOptions[0].Description)
	assert.Equal(t, "松屋\n📝 24小時", lunch.SubOptions[1].Description)

	day2 := res.Days[1]
	assert.Equal(t, "day-2", day2.ID)
	assert.Equal(t, "Day 2", day2.DayLabel)
	assert.Equal(t, "2/11", day2.Date)
	require.Len(t, day2.Attractions, 1)

	canal := day2.Attractions[0]
	assert.Equal(t, "[09:00] 小樽運河", canal.Name)
	assert.Equal(t, "散步\n📝 記得帶相機", canal.Description)
	assert.Equal(t, domain.CategorySight, canal.Category)
	assert.Empty(t, canal.PlanVariant, "variants do not leak across blocks")
}

func TestParse_VariantMarkers(t *testing.T) {
	text := sheet(
		[]string{"時間", "地點"},
		[]string{"Date", ""},
		[]string{"09:00", "Temple"},
		[]string{"Plan B", ""},
		[]string{"10:00", "Garden"},
		[]string{"時間：午後", ""},
		[]string{"14:00", "Tower"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 3)
	assert.Empty(t, res.Days[0].Attractions[0].PlanVariant)
	assert.Equal(t, "Plan B", res.Days[0].Attractions[1].PlanVariant)
	// A time cell with a colon is not a variant, so the previous variant holds.
	assert.Equal(t, "Plan B", res.Days[0].Attractions[2].PlanVariant)
	assert.Equal(t, 1, res.Skipped)
}

func TestParse_OverflowColumnsMerged(t *testing.T) {
	text := sheet(
		[]string{"地點", "交通", "簡介", "", "備註"},
		[]string{"Sapporo", "JR 20min", "Clock tower", "Clock tower", "bring coat"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 1)
	a := res.Days[0].Attractions[0]
	assert.Equal(t, "Sapporo", a.Name)
	assert.Equal(t, "Clock tower | JR 20min\n📝 bring coat", a.Description)
	assert.Equal(t, domain.CategorySight, a.Category)
}

func TestCleanOrphanSlashes(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/\nA / B\nC /", "A / B\nC"},
		{"Tokyo\n / \nKyoto", "Tokyo\nKyoto"},
		{"/ leading", "leading"},
		{"a / b", "a / b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanOrphanSlashes(tt.in), "%q", tt.in)
	}
}

func TestParse_SingleMarkerStaysPlain(t *testing.T) {
	text := sheet(
		[]string{"時間", "地點", "簡介"},
		[]string{"18:00", "晚餐", "1. only one"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 1)
	a := res.Days[0].Attractions[0]
	assert.False(t, a.IsMultiChoice())
	assert.Nil(t, a.SubOptions)
	assert.Equal(t, "1. only one", a.Description)
}

func TestParse_MealSlotMapQuery(t *testing.T) {
	text := sheet(
		[]string{"時間", "地點", "簡介"},
		[]string{"12:00", "午餐", "🍜 Ramen House\nGreat broth"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 1)
	assert.Equal(t, "午餐 Ramen House", res.Days[0].Attractions[0].MapQuery)
}

func TestParse_RepeatedHeaderRowsSkipped(t *testing.T) {
	text := sheet(
		[]string{"時間", "地點"},
		[]string{"09:00", "Temple"},
		[]string{"時間", "地點"},
		[]string{"10:00", "Garden"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 2)
	assert.Equal(t, "[10:00] Garden", res.Days[0].Attractions[1].Name)
}

func TestParse_CreatesMissingDays(t *testing.T) {
	text := sheet(
		[]string{"時間", "地點", "時間", "地點"},
		[]string{"09:00", "A", "10:00", "B"},
	)
	days := []domain.Day{domain.NewPlaceholderDay("day-2", 1, "3/1", "")}

	res := newTestParser().ParseText(text, days)

	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Days, 2)
	assert.Equal(t, "day-2-2", res.Days[1].ID, "IDs stay unique")
	assert.Equal(t, "Day 2", res.Days[1].Date, "no date row above the header")
	require.Len(t, res.Days[1].Attractions, 1)
	assert.Equal(t, "[10:00] B", res.Days[1].Attractions[0].Name)
}

func TestParse_ReplacesExistingAttractions(t *testing.T) {
	days := testDays(2)
	for i := range days {
		days[i].Attractions = []domain.Attraction{{ID: "old", Name: "Old entry"}}
	}
	text := sheet(
		[]string{"地點"},
		[]string{"Fresh entry"},
	)

	got := newTestParser().Parse(text, days)

	require.Len(t, got, 2)
	require.Len(t, got[0].Attractions, 1)
	assert.Equal(t, "Fresh entry", got[0].Attractions[0].Name)
	assert.NotNil(t, got[1].Attractions)
	assert.Empty(t, got[1].Attractions)

	// The caller's slice is left as it was.
	assert.Equal(t, "Old entry", days[0].Attractions[0].Name)
	assert.Equal(t, "Old entry", days[1].Attractions[0].Name)
}

func TestParse_VerticalFallback(t *testing.T) {
	res := newTestParser().ParseText("Day 2\tMuseum Visit\t\tbring ticket\n", testDays(2))

	assert.Equal(t, ModeVertical, res.Mode)
	assert.Empty(t, res.Days[0].Attractions)
	require.Len(t, res.Days[1].Attractions, 1)

	a := res.Days[1].Attractions[0]
	assert.Equal(t, "Museum Visit", a.Name)
	assert.Equal(t, domain.CategorySight, a.Category)
	assert.Equal(t, "bring ticket", a.Description)
	assert.Equal(t, "Museum Visit", a.MapQuery)
}

func TestParse_VerticalHintsAndSkips(t *testing.T) {
	text := sheet(
		[]string{"天數", "名稱", "分類", "備註"},
		[]string{"1", "名稱", "", ""},
		[]string{"1", "東京迪士尼", "景點", "抽快速通關"},
		[]string{"2", "築地市場", "", ""},
		[]string{"5", "Out of range", "", ""},
		[]string{"3", "", "", ""},
		[]string{"3", "Hotel Gracery", "lodging", "1. twin 2. double"},
	)

	res := newTestParser().ParseText(text, testDays(3))

	assert.Equal(t, 3, res.Imported)
	assert.Equal(t, 3, res.Skipped)

	require.Len(t, res.Days[0].Attractions, 1)
	assert.Equal(t, domain.CategorySight, res.Days[0].Attractions[0].Category)
	assert.Equal(t, "抽快速通關", res.Days[0].Attractions[0].Description)

	require.Len(t, res.Days[1].Attractions, 1)
	assert.Equal(t, domain.CategoryShopping, res.Days[1].Attractions[0].Category)

	require.Len(t, res.Days[2].Attractions, 1)
	hotel := res.Days[2].Attractions[0]
	assert.Equal(t, domain.CategoryLodging, hotel.Category)
	assert.True(t, hotel.IsMultiChoice())
}

func TestParse_DefaultIDsAreUnique(t *testing.T) {
	var rows [][]string
	rows = append(rows, []string{"地點", "地點"})
	for i := 0; i < 30; i++ {
		rows = append(rows, []string{fmt.Sprintf("Place %d", i), fmt.Sprintf("Other %d", i)})
	}

	res := NewParser().ParseText(sheet(rows...), testDays(2))

	seen := make(map[string]bool)
	for _, d := range res.Days {
		for _, a := range d.Attractions {
			assert.True(t, strings.HasPrefix(a.ID, "attr-"), a.ID)
			assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
			seen[a.ID] = true
		}
	}
	assert.Len(t, seen, 60)
}

func TestParse_CategoryDefaultsToSight(t *testing.T) {
	text := sheet(
		[]string{"地點", "簡介"},
		[]string{"Odori Park", "snow festival"},
	)

	res := newTestParser().ParseText(text, testDays(1))

	require.Len(t, res.Days[0].Attractions, 1)
	assert.Equal(t, domain.CategorySight, res.Days[0].Attractions[0].Category)
}

func TestRun_UsesCustomDictionary(t *testing.T) {
	d, err := ParseDictionary([]byte("name_headers: [\"Stop\"]\ntime_keywords: [\"When\"]\n"))
	require.NoError(t, err)

	rows := [][]string{
		{"When", "Stop"},
		{"07:30", "Harbour"},
	}
	res := NewParser(WithDictionary(d), WithIDFunc(seqIDs())).Run(rows, testDays(1))

	assert.Equal(t, ModeHorizontal, res.Mode)
	require.Len(t, res.Days[0].Attractions, 1)
	assert.Equal(t, "[07:30] Harbour", res.Days[0].Attractions[0].Name)
}
