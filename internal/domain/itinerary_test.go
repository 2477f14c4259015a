package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory(" Food ")
	assert.True(t, ok)
	assert.Equal(t, CategoryFood, c)

	_, ok = ParseCategory("museum")
	assert.False(t, ok)
}

func TestAttraction_IsMultiChoice(t *testing.T) {
	plain := Attraction{Name: "Sapporo Station"}
	assert.False(t, plain.IsMultiChoice())

	multi := Attraction{SubOptions: []SubOption{{Label: "A plan"}, {Label: "B plan"}}}
	assert.True(t, multi.IsMultiChoice())
}

func TestNewPlaceholderDay(t *testing.T) {
	d := NewPlaceholderDay("day-3", 3, "", "")
	assert.Equal(t, "Day 3", d.DayLabel)
	assert.Equal(t, "Day 3", d.Date)
	assert.NotNil(t, d.Attractions)
	assert.Empty(t, d.Attractions)

	d = NewPlaceholderDay("day-1", 1, "2/10", "Sapporo")
	assert.Equal(t, "2/10", d.Date)
	assert.Equal(t, "Sapporo", d.LocationLabel)
}

func TestCloneDays_IsDeep(t *testing.T) {
	orig := []Day{{
		ID: "day-1",
		Attractions: []Attraction{{
			ID:         "a1",
			Name:       "Otaru Canal",
			Tags:       []Tag{TagMustSnap},
			SubOptions: []SubOption{{Label: "A plan"}, {Label: "B plan"}},
		}},
	}}

	clone := CloneDays(orig)
	clone[0].Attractions[0].Name = "changed"
	clone[0].Attractions[0].Tags[0] = TagBackup
	clone[0].Attractions[0].SubOptions[0].Label = "Z"

	assert.Equal(t, "Otaru Canal", orig[0].Attractions[0].Name)
	assert.Equal(t, TagMustSnap, orig[0].Attractions[0].Tags[0])
	assert.Equal(t, "A plan", orig[0].Attractions[0].SubOptions[0].Label)
	assert.Nil(t, CloneDays(nil))
}

func TestCountAttractions(t *testing.T) {
	days := []Day{
		{Attractions: []Attraction{{}, {}}},
		{Attractions: nil},
		{Attractions: []Attraction{{}}},
	}
	assert.Equal(t, 3, CountAttractions(days))
}

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "b", CoalesceStr("", "b", "c"))
	assert.Equal(t, "", CoalesceStr("", ""))
}
