package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/xuri/excelize/v2"
)

var asidePattern = regexp.MustCompile(`（.*?）|\(.*?\)`)

// OptionInput is the context the sub-option splitter works from.
type OptionInput struct {
	Name        string
	Description string
	Notes       string
	Category    domain.Category
	Time        string
	Variant     string
}

type numberedItem struct {
	num  int
	text string
}

// SplitOptions detects a numbered list ("1. A 2. B") inside the description
// and fans it out into sub-options, pairing each item with the note of the
// same number. It returns false when fewer than two markers are present.
// The returned attraction has no ID; the caller assigns one.
func (d *Dictionary) SplitOptions(in OptionInput) (domain.Attraction, bool) {
	text := strings.ReplaceAll(in.Description, "\r", "")
	items, preamble := d.numberedItems(text)
	if len(items) < 2 {
		return domain.Attraction{}, false
	}

	notes := make(map[int]string)
	noteItems, _ := d.numberedItems(strings.ReplaceAll(in.Notes, "\r", ""))
	for _, n := range noteItems {
		notes[n.num] = n.text
	}

	subs := make([]domain.SubOption, 0, len(items))
	for i, item := range items {
		desc := item.text
		if note := notes[item.num]; note != "" {
			desc = item.text + "\n" + d.NoteMarker + " " + note
		}
		subs = append(subs, domain.SubOption{
			Label:       d.optionLabel(i),
			Name:        item.text,
			Description: desc,
			MapQuery:    optionQuery(item.text),
		})
	}

	return domain.Attraction{
		Name:        timePrefixed(in.Time, in.Name),
		Category:    in.Category,
		Description: preamble,
		Tags:        []domain.Tag{},
		MapQuery:    d.cleanName(in.Name),
		PlanVariant: in.Variant,
		SubOptions:  subs,
	}, true
}

// numberedItems splits text at each "N." marker, in order of appearance.
// It also returns the trimmed text before the first marker.
func (d *Dictionary) numberedItems(text string) ([]numberedItem, string) {
	matches := d.markerPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil, strings.TrimSpace(text)
	}

	items := make([]numberedItem, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		num, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			num = -1
		}
		items = append(items, numberedItem{num: num, text: strings.TrimSpace(text[m[1]:end])})
	}
	return items, strings.TrimSpace(text[:matches[0][0]])
}

// hasFirstMarker reports whether text contains a "1." style marker.
func (d *Dictionary) hasFirstMarker(text string) bool {
	for _, r := range d.OptionDelimiters {
		if strings.Contains(text, "1"+string(r)) {
			return true
		}
	}
	return false
}

// optionLabel names the option at position i using spreadsheet column letters.
func (d *Dictionary) optionLabel(i int) string {
	letters, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		letters = strconv.Itoa(i + 1)
	}
	return fmt.Sprintf(d.OptionLabelFormat, letters)
}

func optionQuery(text string) string {
	q := asidePattern.ReplaceAllString(text, "")
	q = strings.ReplaceAll(q, "\n", " ")
	return strings.TrimSpace(q)
}

func timePrefixed(timeStr, name string) string {
	if timeStr == "" {
		return name
	}
	return "[" + timeStr + "] " + name
}
