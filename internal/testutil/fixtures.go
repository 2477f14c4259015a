package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/google/uuid"
)

// TripOption customizes a fixture trip.
type TripOption func(*domain.Trip)

func WithDestination(dest string) TripOption {
	return func(t *domain.Trip) {
		t.Destination = dest
	}
}

// WithDates sets the trip span from DateLayout strings; it panics on bad input.
func WithDates(start, end string) TripOption {
	return func(t *domain.Trip) {
		t.StartDate = mustDate(start)
		t.EndDate = mustDate(end)
	}
}

func WithTripID(id string) TripOption {
	return func(t *domain.Trip) {
		t.ID = id
	}
}

// NewTestTrip returns a three-day trip starting 2027-02-10.
func NewTestTrip(name string, opts ...TripOption) *domain.Trip {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Trip{
		ID:          uuid.New().String(),
		Name:        name,
		Destination: "Hokkaido",
		StartDate:   mustDate("2027-02-10"),
		EndDate:     mustDate("2027-02-12"),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DayOption customizes a fixture day.
type DayOption func(*domain.Day)

func WithAttractions(names ...string) DayOption {
	return func(d *domain.Day) {
		for _, name := range names {
			d.Attractions = append(d.Attractions, NewTestAttraction(name))
		}
	}
}

func WithDate(date string) DayOption {
	return func(d *domain.Day) {
		d.Date = date
	}
}

// NewTestDay returns the placeholder day for position n with ID "day-n".
func NewTestDay(n int, opts ...DayOption) domain.Day {
	d := domain.NewPlaceholderDay(fmt.Sprintf("day-%d", n), n, "", "Hokkaido")
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewTestAttraction(name string) domain.Attraction {
	return domain.Attraction{
		ID:       "attr-" + uuid.NewString(),
		Name:     name,
		Category: domain.CategorySight,
		Tags:     []domain.Tag{},
		MapQuery: name,
	}
}

func mustDate(s string) time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(fmt.Sprintf("testutil: bad date %q: %v", s, err))
	}
	return d
}
