package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/google/uuid"
)

var (
	firstNumber = regexp.MustCompile(`\d+`)
	anyDigit    = regexp.MustCompile(`\d`)

	orphanSlashLine = regexp.MustCompile(`(?:^|\n)\s*/\s*(?:$|\n)`)
	leadingSlash    = regexp.MustCompile(`(?m)^\s*/\s*`)
	trailingSlash   = regexp.MustCompile(`(?m)\s*/\s*$`)
)

// Parser turns pasted sheets into day itineraries. It holds no state between
// calls beyond its configuration, so one Parser may be reused sequentially.
type Parser struct {
	dict  *Dictionary
	newID func() string
}

// Option configures a Parser.
type Option func(*Parser)

// WithDictionary replaces the built-in keyword tables.
func WithDictionary(d *Dictionary) Option {
	return func(p *Parser) {
		if d != nil {
			p.dict = d
		}
	}
}

// WithIDFunc replaces the attraction ID generator.
func WithIDFunc(fn func() string) Option {
	return func(p *Parser) {
		if fn != nil {
			p.newID = fn
		}
	}
}

// NewParser creates a Parser using DefaultDictionary and random UUID IDs.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		dict:  DefaultDictionary(),
		newID: func() string { return "attr-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Dictionary returns the tables the parser uses.
func (p *Parser) Dictionary() *Dictionary {
	return p.dict
}

// Result describes one import run.
type Result struct {
	Days     []domain.Day
	Mode     Mode
	Blocks   []Block
	Rows     int
	Imported int
	Skipped  int
	// Created counts day placeholders appended for extra layout blocks.
	Created int
	// NoOp is set when the input held no content and days were returned unchanged.
	NoOp bool
}

// Parse converts pasted text into an updated day list. Blank text returns
// days unchanged. Otherwise every day's attractions are replaced by the
// imported ones.
func (p *Parser) Parse(text string, days []domain.Day) []domain.Day {
	return p.ParseText(text, days).Days
}

// ParseText is Parse with the run details.
func (p *Parser) ParseText(text string, days []domain.Day) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Days: days, NoOp: true}
	}
	return p.Run(Tokenize(text), days)
}

// Run imports already tokenized rows, e.g. rows read from a workbook.
func (p *Parser) Run(rows [][]string, days []domain.Day) Result {
	if isBlank(rows) {
		return Result{Days: days, NoOp: true}
	}

	out := make([]domain.Day, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Attractions = []domain.Attraction{}
	}

	layout := p.dict.DetectLayout(rows)
	res := Result{Mode: layout.Mode, Blocks: layout.Blocks, Rows: len(rows)}

	if layout.Mode == ModeHorizontal {
		out, res.Created = p.ensureDays(out, rows, layout)
		for i, b := range layout.Blocks {
			imported, skipped := p.assembleBlock(&out[i], rows, layout.HeaderRow, b)
			res.Imported += imported
			res.Skipped += skipped
		}
	} else {
		res.Imported, res.Skipped = p.assembleVertical(out, rows)
	}

	res.Days = out
	return res
}

// ensureDays appends placeholder days until every block has a day. Date
// labels come from the first pasted row when it sits above the header row.
func (p *Parser) ensureDays(days []domain.Day, rows [][]string, layout Layout) ([]domain.Day, int) {
	created := 0
	taken := make(map[string]bool, len(days))
	for _, d := range days {
		taken[d.ID] = true
	}

	for len(days) < len(layout.Blocks) {
		n := len(days) + 1
		b := layout.Blocks[n-1]

		date := ""
		// With the header on row 0 the first row holds header words, not dates.
		if layout.HeaderRow > 0 {
			for c := max(0, b.TimeCol); c <= b.NameCol; c++ {
				if v := cellAt(rows[0], c); v != "" {
					date = v
					break
				}
			}
		}

		id := fmt.Sprintf("day-%d", n)
		for suffix := 2; taken[id]; suffix++ {
			id = fmt.Sprintf("day-%d-%d", n, suffix)
		}
		taken[id] = true

		days = append(days, domain.NewPlaceholderDay(id, n, date, ""))
		created++
	}
	return days, created
}

// assembleBlock walks the data rows of one horizontal block.
func (p *Parser) assembleBlock(day *domain.Day, rows [][]string, headerRow int, b Block) (imported, skipped int) {
	variant := ""

	for r := headerRow + 1; r < len(rows); r++ {
		cols := rows[r]
		timeStr := cellAt(cols, b.TimeCol)
		name := cellAt(cols, b.NameCol)
		desc := cellAt(cols, b.DescCol)
		note := cellAt(cols, b.NoteCol)

		if timeStr != "" && name == "" && p.isVariantMarker(timeStr) {
			if !equalsAny(timeStr, p.dict.VariantExcludes) {
				variant = timeStr
			}
			continue
		}

		if name == "" {
			if rowHasContent(cols, b) {
				skipped++
			}
			continue
		}
		if equalsAny(name, p.dict.HeaderNames) {
			continue
		}

		merged := p.mergeOverflow(cols, b, desc, note)
		category := p.dict.GuessCategory(name, merged)

		splitSource := merged
		if p.dict.hasFirstMarker(desc) {
			splitSource = desc
		}

		if a, ok := p.dict.SplitOptions(OptionInput{
			Name:        name,
			Description: splitSource,
			Notes:       note,
			Category:    category,
			Time:        timeStr,
			Variant:     variant,
		}); ok {
			a.ID = p.newID()
			day.Attractions = append(day.Attractions, a)
			imported++
			continue
		}

		day.Attractions = append(day.Attractions, domain.Attraction{
			ID:          p.newID(),
			Name:        timePrefixed(timeStr, name),
			Category:    category,
			Description: merged,
			Tags:        []domain.Tag{},
			MapQuery:    p.dict.MapQuery(name, merged),
			PlanVariant: variant,
		})
		imported++
	}
	return imported, skipped
}

// isVariantMarker reports whether a time cell labels a plan branch rather
// than a clock time.
func (p *Parser) isVariantMarker(timeStr string) bool {
	return !strings.ContainsAny(timeStr, ":：") && !anyDigit.MatchString(timeStr)
}

// mergeOverflow folds unclaimed columns between the name column and the
// block's last column into the description, then appends the note.
func (p *Parser) mergeOverflow(cols []string, b Block, desc, note string) string {
	merged := desc
	for c := b.NameCol + 1; c <= b.lastCol(); c++ {
		if c == b.DescCol || c == b.NoteCol {
			continue
		}
		val := cellAt(cols, c)
		if val == "" || strings.Contains(merged, val) {
			continue
		}
		if merged != "" {
			merged += " | "
		}
		merged += val
	}

	if note != "" {
		if merged != "" {
			merged += "\n"
		}
		merged += p.dict.NoteMarker + " " + note
	}
	return cleanOrphanSlashes(merged)
}

// cleanOrphanSlashes removes "/" separators left without text on one side
// when spreadsheet cells are concatenated.
func cleanOrphanSlashes(s string) string {
	s = orphanSlashLine.ReplaceAllString(s, "\n")
	s = leadingSlash.ReplaceAllString(s, "")
	s = trailingSlash.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// assembleVertical handles the positional fallback layout:
// [day number, name, category hint, note].
func (p *Parser) assembleVertical(days []domain.Day, rows [][]string) (imported, skipped int) {
	for _, cols := range rows {
		if len(cols) < 2 {
			if len(cols) == 1 && cellAt(cols, 0) != "" {
				skipped++
			}
			continue
		}

		dayNum, ok := leadingNumber(cellAt(cols, 0))
		name := cellAt(cols, 1)
		if !ok || dayNum < 1 || dayNum > len(days) || name == "" {
			skipped++
			continue
		}
		if equalsAny(name, p.dict.VerticalHeaderNames) {
			continue
		}

		note := cellAt(cols, 3)
		category, ok := p.dict.Category(cellAt(cols, 2))
		if !ok {
			category = p.dict.GuessCategory(name, note)
		}

		day := &days[dayNum-1]
		if a, ok := p.dict.SplitOptions(OptionInput{Name: name, Description: note, Category: category}); ok {
			a.ID = p.newID()
			day.Attractions = append(day.Attractions, a)
			imported++
			continue
		}

		day.Attractions = append(day.Attractions, domain.Attraction{
			ID:          p.newID(),
			Name:        name,
			Category:    category,
			Description: note,
			Tags:        []domain.Tag{},
			MapQuery:    p.dict.MapQuery(name, note),
		})
		imported++
	}
	return imported, skipped
}

// leadingNumber extracts the first run of digits, e.g. "Day 2" -> 2.
func leadingNumber(s string) (int, bool) {
	m := firstNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

func rowHasContent(cols []string, b Block) bool {
	for c := max(0, b.TimeCol); c <= b.lastCol(); c++ {
		if cellAt(cols, c) != "" {
			return true
		}
	}
	return false
}

func isBlank(rows [][]string) bool {
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				return false
			}
		}
	}
	return true
}
