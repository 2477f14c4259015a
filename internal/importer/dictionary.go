package importer

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"gopkg.in/yaml.v3"
)

// CategoryRule maps keyword sets to a category. A rule matches when any name
// keyword occurs in the name or any description keyword occurs in the
// description. Keywords written in Latin letters must match whole words
// (an "s" or "es" plural is allowed); other keywords match anywhere.
// Rules are evaluated in order; the first match wins.
type CategoryRule struct {
	Category     domain.Category `yaml:"category"`
	NameKeywords []string        `yaml:"name_keywords"`
	DescKeywords []string        `yaml:"desc_keywords"`
}

// Dictionary holds every locale-specific word list the engine consults.
// The heuristics only ever read from a Dictionary, so swapping the tables
// changes the accepted vocabulary without touching the parsing logic.
type Dictionary struct {
	NameHeaders     []string `yaml:"name_headers"`
	TimeKeywords    []string `yaml:"time_keywords"`
	SummaryKeywords []string `yaml:"summary_keywords"`
	TransitKeywords []string `yaml:"transit_keywords"`
	NoteKeywords    []string `yaml:"note_keywords"`

	// HeaderNames are name-column values treated as repeated header rows.
	HeaderNames []string `yaml:"header_names"`
	// VariantExcludes are time-column values that never become variants.
	VariantExcludes []string `yaml:"variant_excludes"`
	// VerticalHeaderNames are skipped in the positional fallback layout.
	VerticalHeaderNames []string `yaml:"vertical_header_names"`

	MealSlots       []string                   `yaml:"meal_slots"`
	CategoryRules   []CategoryRule             `yaml:"category_rules"`
	CategoryAliases map[string]domain.Category `yaml:"category_aliases"`
	DefaultCategory domain.Category            `yaml:"default_category"`

	Arrows           []string `yaml:"arrows"`
	OptionDelimiters string   `yaml:"option_delimiters"`
	NoteMarker       string   `yaml:"note_marker"`
	// OptionLabelFormat receives the alphabetic position (A, B, ... AA).
	OptionLabelFormat string `yaml:"option_label_format"`

	mealPattern   *regexp.Regexp
	markerPattern *regexp.Regexp
	rules         []ruleMatcher
}

type ruleMatcher struct {
	category domain.Category
	name     []keywordMatcher
	desc     []keywordMatcher
}

// keywordMatcher holds either a whole-word pattern or a lowercased literal.
type keywordMatcher struct {
	word    *regexp.Regexp
	literal string
}

func newKeywordMatcher(kw string) keywordMatcher {
	kw = strings.TrimSpace(kw)
	if isLatinWord(kw) {
		return keywordMatcher{word: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `(?:e?s)?\b`)}
	}
	return keywordMatcher{literal: strings.ToLower(kw)}
}

func (m keywordMatcher) matches(s string) bool {
	if m.word != nil {
		return m.word.MatchString(s)
	}
	return m.literal != "" && strings.Contains(strings.ToLower(s), m.literal)
}

// isLatinWord reports whether kw is ASCII and starts and ends with a letter
// or digit, so that \b anchors apply on both sides.
func isLatinWord(kw string) bool {
	if kw == "" || !isASCIIAlnum(kw[0]) || !isASCIIAlnum(kw[len(kw)-1]) {
		return false
	}
	for i := 0; i < len(kw); i++ {
		if kw[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func isASCIIAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func compileKeywords(kws []string) []keywordMatcher {
	out := make([]keywordMatcher, 0, len(kws))
	for _, kw := range kws {
		if strings.TrimSpace(kw) != "" {
			out = append(out, newKeywordMatcher(kw))
		}
	}
	return out
}

// DefaultDictionary returns the built-in tables: the Traditional Chinese
// vocabulary of the original spreadsheets plus English equivalents.
func DefaultDictionary() *Dictionary {
	d := &Dictionary{
		NameHeaders:     []string{"活動地點", "地點", "行程", "景點名稱", "Location", "Venue", "Place"},
		TimeKeywords:    []string{"時間", "Time", "time"},
		SummaryKeywords: []string{"簡介", "內容", "Summary", "summary", "Content", "content"},
		TransitKeywords: []string{"交通", "Transit", "transit", "Transport", "transport"},
		NoteKeywords:    []string{"備註", "出口", "Note", "note", "Exit", "exit"},

		HeaderNames:         []string{"活動地點", "地點", "時間", "Location", "Venue", "Place", "Time"},
		VariantExcludes:     []string{"時間", "Date", "Day", "Time"},
		VerticalHeaderNames: []string{"名稱", "Name", "景點", "景點名稱"},

		MealSlots: []string{
			"早餐", "午餐", "晚餐", "宵夜", "點心", "下午茶", "休息", "吃飯", "用餐",
			"Breakfast", "Brunch", "Lunch", "Dinner", "Supper", "Snack", "Tea time", "Teatime",
		},
		CategoryRules: []CategoryRule{
			{
				Category:     domain.CategoryFood,
				NameKeywords: []string{"餐", "麵", "肉", "飯", "鍋", "壽司", "咖啡", "點心", "早餐", "Cafe", "Restaurant", "Ramen", "Sushi", "Bakery", "Breakfast", "Lunch", "Dinner"},
				DescKeywords: []string{"餐", "麵", "肉", "飯", "restaurant", "ramen"},
			},
			{
				Category:     domain.CategoryTransit,
				NameKeywords: []string{"車站", "機場", "地鐵", "捷運", "→", "火車", "公車", "巴士", "航空", "鐵", "線", "站", "Station", "Airport", "Subway", "Metro", "Train", "Bus", "Flight", "Railway"},
				DescKeywords: []string{"交通", "transit"},
			},
			{
				Category:     domain.CategoryLodging,
				NameKeywords: []string{"住宿", "民宿", "飯店", "酒店", "旅館", "Hotel", "Hostel", "Ryokan", "Check-in"},
			},
			{
				Category:     domain.CategoryShopping,
				NameKeywords: []string{"百貨", "商店", "市場", "購買", "免稅", "店", "商場", "Mall", "Market", "Shop", "Store", "Outlet", "Duty free"},
			},
			{
				Category:     domain.CategoryActivity,
				NameKeywords: []string{"體驗", "滑雪", "Ski", "Hiking", "Workshop", "Experience"},
			},
		},
		CategoryAliases: map[string]domain.Category{
			"食物": domain.CategoryFood,
			"活動": domain.CategoryActivity,
			"購物": domain.CategoryShopping,
			"景點": domain.CategorySight,
			"酒店": domain.CategoryLodging,
			"交通": domain.CategoryTransit,
		},
		DefaultCategory: domain.CategorySight,

		Arrows:            []string{"→", "➔", "->"},
		OptionDelimiters:  ".、．",
		NoteMarker:        "📝",
		OptionLabelFormat: "%s plan",
	}
	d.compile()
	return d
}

// LoadDictionary reads a YAML dictionary file. Any list or value the file
// leaves empty is taken from DefaultDictionary.
func LoadDictionary(path string) (*Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDictionary(data)
}

// ParseDictionary decodes YAML dictionary bytes over the defaults.
func ParseDictionary(data []byte) (*Dictionary, error) {
	var file Dictionary
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dictionary: %w", err)
	}
	for i, r := range file.CategoryRules {
		if _, ok := domain.ParseCategory(string(r.Category)); !ok {
			return nil, fmt.Errorf("category_rules[%d]: unknown category %q", i, r.Category)
		}
	}
	for alias, c := range file.CategoryAliases {
		if _, ok := domain.ParseCategory(string(c)); !ok {
			return nil, fmt.Errorf("category_aliases[%q]: unknown category %q", alias, c)
		}
	}
	if file.DefaultCategory != "" {
		if _, ok := domain.ParseCategory(string(file.DefaultCategory)); !ok {
			return nil, fmt.Errorf("default_category: unknown category %q", file.DefaultCategory)
		}
	}
	if file.OptionLabelFormat != "" && !strings.Contains(file.OptionLabelFormat, "%s") {
		return nil, fmt.Errorf("option_label_format %q must contain %%s", file.OptionLabelFormat)
	}

	d := DefaultDictionary()
	mergeList(&d.NameHeaders, file.NameHeaders)
	mergeList(&d.TimeKeywords, file.TimeKeywords)
	mergeList(&d.SummaryKeywords, file.SummaryKeywords)
	mergeList(&d.TransitKeywords, file.TransitKeywords)
	mergeList(&d.NoteKeywords, file.NoteKeywords)
	mergeList(&d.HeaderNames, file.HeaderNames)
	mergeList(&d.VariantExcludes, file.VariantExcludes)
	mergeList(&d.VerticalHeaderNames, file.VerticalHeaderNames)
	mergeList(&d.MealSlots, file.MealSlots)
	mergeList(&d.Arrows, file.Arrows)
	if len(file.CategoryRules) > 0 {
		d.CategoryRules = file.CategoryRules
	}
	if len(file.CategoryAliases) > 0 {
		d.CategoryAliases = file.CategoryAliases
	}
	d.DefaultCategory = domain.Category(domain.CoalesceStr(string(file.DefaultCategory), string(d.DefaultCategory)))
	d.OptionDelimiters = domain.CoalesceStr(file.OptionDelimiters, d.OptionDelimiters)
	d.NoteMarker = domain.CoalesceStr(file.NoteMarker, d.NoteMarker)
	d.OptionLabelFormat = domain.CoalesceStr(file.OptionLabelFormat, d.OptionLabelFormat)
	d.compile()
	return d, nil
}

func mergeList(dst *[]string, src []string) {
	if len(src) > 0 {
		*dst = src
	}
}

// compile builds the regular expressions derived from the word lists.
func (d *Dictionary) compile() {
	slots := make([]string, 0, len(d.MealSlots))
	for _, s := range d.MealSlots {
		slots = append(slots, regexp.QuoteMeta(s))
	}
	d.mealPattern = regexp.MustCompile(`(?i)^(?:` + strings.Join(slots, "|") + `)\s*[A-Za-z0-9]?$`)

	var class strings.Builder
	for _, r := range d.OptionDelimiters {
		class.WriteString(regexp.QuoteMeta(string(r)))
	}
	d.markerPattern = regexp.MustCompile(`(?:^|\s)(\d+)[` + class.String() + `]\s*`)

	d.rules = make([]ruleMatcher, 0, len(d.CategoryRules))
	for _, r := range d.CategoryRules {
		d.rules = append(d.rules, ruleMatcher{
			category: r.Category,
			name:     compileKeywords(r.NameKeywords),
			desc:     compileKeywords(r.DescKeywords),
		})
	}
}

// Category resolves a category hint: a canonical name or a dictionary alias.
func (d *Dictionary) Category(hint string) (domain.Category, bool) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return "", false
	}
	if c, ok := domain.ParseCategory(hint); ok {
		return c, true
	}
	c, ok := d.CategoryAliases[hint]
	return c, ok
}

func containsAny(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

func equalsAny(s string, words []string) bool {
	for _, w := range words {
		if s == w {
			return true
		}
	}
	return false
}
