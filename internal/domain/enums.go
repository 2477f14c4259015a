package domain

import "strings"

// Category is the closed set of itinerary entry kinds.
type Category string

const (
	CategoryFood     Category = "food"
	CategoryActivity Category = "activity"
	CategoryShopping Category = "shopping"
	CategorySight    Category = "sight"
	CategoryLodging  Category = "lodging"
	CategoryTransit  Category = "transit"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"food": true, "activity": true, "shopping": true,
	"sight": true, "lodging": true, "transit": true,
}

// ParseCategory resolves a case-insensitive category name.
func ParseCategory(s string) (Category, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !ValidCategories[v] {
		return "", false
	}
	return Category(v), true
}

// Tag is a manually curated marker on an attraction. Imports never set tags.
type Tag string

const (
	TagMustEat  Tag = "must-eat"
	TagMustBuy  Tag = "must-buy"
	TagMustSnap Tag = "must-snap"
	TagPrimary  Tag = "primary"
	TagBackup   Tag = "backup"
)
