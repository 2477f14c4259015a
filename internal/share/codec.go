// Package share encodes a trip into a portable share code and back.
//
// A share code is the standard base64 encoding of the URI-component-escaped
// JSON payload, which keeps codes produced by browsers (btoa over
// encodeURIComponent) interchangeable with ours.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
)

// ErrMalformed is returned when a code cannot be decoded into a payload.
var ErrMalformed = errors.New("malformed share code")

// Config is the trip-level settings carried in a share code.
type Config struct {
	Name        string `json:"tripName"`
	Destination string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// Payload is everything a share code transports.
type Payload struct {
	Config   Config       `json:"config"`
	DayOrder []string     `json:"dayOrder"`
	Days     []domain.Day `json:"days"`
}

// wirePayload mirrors Payload with nil-able fields so a missing section can
// be told apart from an empty one.
type wirePayload struct {
	Config   *Config      `json:"config"`
	DayOrder []string     `json:"dayOrder"`
	Days     []domain.Day `json:"days"`
}

// Encode renders p as a share code.
func Encode(p Payload) (string, error) {
	if p.DayOrder == nil {
		p.DayOrder = []string{}
	}
	if p.Days == nil {
		p.Days = []domain.Day{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encoding payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(escapeURIComponent(string(data)))), nil
}

// Decode parses a share code. The config, dayOrder and days sections are
// all required.
func Decode(code string) (Payload, error) {
	code = strings.Join(strings.Fields(code), "")
	if code == "" {
		return Payload{}, fmt.Errorf("%w: empty code", ErrMalformed)
	}

	raw, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(code, "="))
		if err != nil {
			return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}

	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var w wirePayload
	if err := json.Unmarshal([]byte(text), &w); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case w.Config == nil:
		return Payload{}, fmt.Errorf("%w: missing config", ErrMalformed)
	case w.DayOrder == nil:
		return Payload{}, fmt.Errorf("%w: missing dayOrder", ErrMalformed)
	case w.Days == nil:
		return Payload{}, fmt.Errorf("%w: missing days", ErrMalformed)
	}

	return Payload{Config: *w.Config, DayOrder: w.DayOrder, Days: w.Days}, nil
}

// escapeURIComponent escapes s the way JavaScript's encodeURIComponent does:
// every byte except A-Z a-z 0-9 and - _ . ! ~ * ' ( ) is percent-encoded.
func escapeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func isURIUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
