package importer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/tripsheet/internal/domain"
)

const (
	// phraseKeepLimit is the rune length below which a phrase is kept whole.
	phraseKeepLimit = 20
	// phraseCutLength is how many runes of a longer phrase are kept.
	phraseCutLength = 15
)

var leadingTag = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)

// GuessCategory returns the category of the first rule whose keywords match
// the name or the description, or the dictionary default when none match.
func (d *Dictionary) GuessCategory(name, desc string) domain.Category {
	for _, rule := range d.rules {
		if matchesAny(name, rule.name) || matchesAny(desc, rule.desc) {
			return rule.category
		}
	}
	return d.DefaultCategory
}

func matchesAny(s string, ms []keywordMatcher) bool {
	for _, m := range ms {
		if m.matches(s) {
			return true
		}
	}
	return false
}

// MapQuery builds a map-search string for an entry. Leading bracketed tags
// are dropped and only the last leg of an arrow route is kept. A generic
// meal-slot name such as "Lunch" is extended with a short phrase taken from
// the description, since the slot name alone finds nothing on a map.
func (d *Dictionary) MapQuery(name, desc string) string {
	query := d.cleanName(name)
	if desc == "" || !d.IsMealSlot(query) {
		return query
	}
	phrase := d.representativePhrase(desc)
	if phrase == "" {
		return query
	}
	if utf8.RuneCountInString(phrase) >= phraseKeepLimit {
		phrase = strings.TrimSpace(string([]rune(phrase)[:phraseCutLength]))
	}
	return strings.TrimSpace(query + " " + phrase)
}

// IsMealSlot reports whether s is a generic meal-slot label, optionally
// followed by one letter or digit ("Lunch", "午餐", "Dinner B").
func (d *Dictionary) IsMealSlot(s string) bool {
	return d.mealPattern.MatchString(strings.TrimSpace(s))
}

func (d *Dictionary) cleanName(name string) string {
	query := leadingTag.ReplaceAllString(name, "")
	cut := -1
	sepLen := 0
	for _, arrow := range d.Arrows {
		if arrow == "" {
			continue
		}
		if i := strings.LastIndex(query, arrow); i > cut {
			cut, sepLen = i, len(arrow)
		}
	}
	if cut >= 0 {
		if last := strings.TrimSpace(query[cut+sepLen:]); last != "" {
			query = last
		}
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return strings.TrimSpace(name)
	}
	return query
}

// representativePhrase picks the line that best names the place behind a
// description: a line carrying the note marker, else the first non-empty line.
func (d *Dictionary) representativePhrase(desc string) string {
	var first string
	for _, line := range strings.Split(desc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if d.NoteMarker != "" && strings.Contains(line, d.NoteMarker) {
			if phrase := d.stripDecorations(line); phrase != "" {
				return phrase
			}
		}
		if first == "" {
			first = line
		}
	}
	return d.stripDecorations(first)
}

func (d *Dictionary) stripDecorations(s string) string {
	if d.NoteMarker != "" {
		s = strings.ReplaceAll(s, d.NoteMarker, "")
	}
	s = strings.Map(func(r rune) rune {
		if isPictograph(r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

func isPictograph(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0xFE0F || r == 0x200D:
		return true
	}
	return false
}
