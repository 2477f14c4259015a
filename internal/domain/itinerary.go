package domain

import "fmt"

// DailyAdvice is the free-text fallback advice shown for a day.
type DailyAdvice struct {
	Clothing      string `json:"clothing"`
	SnowCondition string `json:"snowCondition"`
}

// Day is one calendar day of a trip. It exclusively owns its attractions.
type Day struct {
	ID            string       `json:"id"`
	DayLabel      string       `json:"dayLabel"`
	Date          string       `json:"date"`
	LocationLabel string       `json:"locationLabel"`
	Attractions   []Attraction `json:"attractions"`
	Advice        DailyAdvice  `json:"advice"`
}

// Attraction is one placed itinerary entry. It is either a plain item
// (no sub-options) or a multi-choice item with at least two sub-options.
type Attraction struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Category    Category    `json:"category"`
	Description string      `json:"description"`
	Tags        []Tag       `json:"tags"`
	MapQuery    string      `json:"mapQuery"`
	PlanVariant string      `json:"planVariant,omitempty"`
	SubOptions  []SubOption `json:"subOptions,omitempty"`
}

// SubOption is one branch of a numbered multi-choice cell.
type SubOption struct {
	Label       string `json:"label"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MapQuery    string `json:"mapQuery"`
}

// IsMultiChoice reports whether the attraction carries a real choice.
func (a *Attraction) IsMultiChoice() bool {
	return len(a.SubOptions) >= 2
}

// NewPlaceholderDay builds an empty day for position n (1-based).
func NewPlaceholderDay(id string, n int, date, location string) Day {
	if date == "" {
		date = fmt.Sprintf("Day %d", n)
	}
	return Day{
		ID:            id,
		DayLabel:      fmt.Sprintf("Day %d", n),
		Date:          date,
		LocationLabel: location,
		Attractions:   []Attraction{},
	}
}

// CloneDays deep-copies a day list so callers can mutate the copy freely.
func CloneDays(days []Day) []Day {
	if days == nil {
		return nil
	}
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = d
		out[i].Attractions = make([]Attraction, len(d.Attractions))
		for j, a := range d.Attractions {
			out[i].Attractions[j] = a
			if a.Tags != nil {
				out[i].Attractions[j].Tags = append([]Tag{}, a.Tags...)
			}
			if a.SubOptions != nil {
				out[i].Attractions[j].SubOptions = append([]SubOption{}, a.SubOptions...)
			}
		}
	}
	return out
}

// CountAttractions sums the attractions across all days.
func CountAttractions(days []Day) int {
	n := 0
	for _, d := range days {
		n += len(d.Attractions)
	}
	return n
}
