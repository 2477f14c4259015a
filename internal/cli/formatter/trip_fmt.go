package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatTripList renders a styled trip list inside a bordered box.
func FormatTripList(trips []*domain.Trip) string {
	if len(trips) == 0 {
		return Dim("No trips yet. Create one with: tripsheet trip add --name ... --start ... --end ...")
	}

	headers := []string{"ID", "NAME", "DESTINATION", "DATES", "STARTS"}
	rows := make([][]string, 0, len(trips))
	for _, t := range trips {
		id := TruncID(t.ID)
		if strings.TrimSpace(t.ID) == "" {
			id = "--"
		}
		dest := Dim("--")
		if t.Destination != "" {
			dest = StylePurple.Render(t.Destination)
		}
		rows = append(rows, []string{
			id,
			Bold(t.Name),
			dest,
			DateRange(t),
			RelativeDate(t.StartDate),
		})
	}

	return RenderBox("Trips", RenderTable(headers, rows))
}

// FormatTripShow renders the trip metadata next to a per-day summary.
func FormatTripShow(t *domain.Trip, days []domain.Day) string {
	left := buildTripPanel(t, days)
	right := buildDaySummary(days)
	return RenderBox("", lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
}

func buildTripPanel(t *domain.Trip, days []domain.Day) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render(strings.ToUpper(t.Name)) + "\n\n")

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-12s", label)), value))
	}
	field("ID", StyleFg.Render(t.ID))
	field("Destination", domain.CoalesceStr(t.Destination, "--"))
	field("Dates", DateRange(t))
	field("Days", fmt.Sprintf("%d", len(days)))
	field("Entries", fmt.Sprintf("%d", domain.CountAttractions(days)))
	field("Updated", t.UpdatedAt.Format("2006-01-02 15:04"))
	return b.String()
}

func buildDaySummary(days []domain.Day) string {
	if len(days) == 0 {
		return Dim("No days.")
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		count := Dim("empty")
		if n := len(d.Attractions); n > 0 {
			count = StyleGreen.Render(Plural(n, "entry", "entries"))
		}
		rows = append(rows, []string{Bold(d.DayLabel), d.Date, domain.CoalesceStr(d.LocationLabel, "--"), count})
	}
	return RenderTable([]string{"DAY", "DATE", "LOCATION", "ENTRIES"}, rows)
}
