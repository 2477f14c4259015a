package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the storage and flag format for trip dates.
const DateLayout = "2006-01-02"

type Trip struct {
	ID          string
	Name        string
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks the fields a trip needs before it can be stored.
func (t *Trip) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("trip name is required (use --name flag)")
	}
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return fmt.Errorf("trip %q needs both a start and an end date", t.Name)
	}
	if t.EndDate.Before(t.StartDate) {
		return fmt.Errorf("trip end date %s is before start date %s",
			t.EndDate.Format(DateLayout), t.StartDate.Format(DateLayout))
	}
	return nil
}

// DayCount returns the number of calendar days the trip spans, inclusive.
func (t *Trip) DayCount() int {
	if t.EndDate.Before(t.StartDate) {
		return 0
	}
	start := time.Date(t.StartDate.Year(), t.StartDate.Month(), t.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(t.EndDate.Year(), t.EndDate.Month(), t.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours()/24) + 1
}

// DisplayID returns the first 8 characters of the ID.
func (t *Trip) DisplayID() string {
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
