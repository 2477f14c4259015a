package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/domain"
)

// FormatItinerary renders every day of a trip, one section per day.
func FormatItinerary(days []domain.Day) string {
	if len(days) == 0 {
		return Dim("No days in this trip.")
	}
	sections := make([]string, 0, len(days))
	for _, d := range days {
		sections = append(sections, FormatDay(d))
	}
	return strings.Join(sections, "\n")
}

// FormatDay renders one day's header and its attractions in order.
func FormatDay(d domain.Day) string {
	var b strings.Builder

	title := d.DayLabel
	if d.Date != "" && d.Date != d.DayLabel {
		title += " · " + d.Date
	}
	if d.LocationLabel != "" {
		title += " · " + d.LocationLabel
	}
	b.WriteString(Header(title) + "\n")

	if len(d.Attractions) == 0 {
		b.WriteString(Dim("  (nothing planned)") + "\n")
		return b.String()
	}

	variant := ""
	for _, a := range d.Attractions {
		if a.PlanVariant != variant {
			variant = a.PlanVariant
			if variant != "" {
				b.WriteString(StyleYellowBold.Render("  ▸ "+variant) + "\n")
			}
		}
		b.WriteString(FormatAttraction(a))
	}
	return b.String()
}

// FormatAttraction renders one entry: badge and name, then description,
// map query, and any sub-options as a tree.
func FormatAttraction(a domain.Attraction) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s\n", CategoryBadge(a.Category), Bold(a.Name)))

	if a.IsMultiChoice() {
		items := make([]TreeItem, 0, len(a.SubOptions))
		for i, s := range a.SubOptions {
			title := StyleYellow.Render(s.Label) + " " + s.Name
			if desc := strings.TrimSpace(s.Description); desc != "" {
				title += " " + Dim(oneLine(desc))
			}
			items = append(items, TreeItem{
				Title:  title,
				Level:  1,
				IsLast: i == len(a.SubOptions)-1,
				Detail: s.MapQuery,
			})
		}
		b.WriteString(indent(RenderTree(items), "             "))
	} else if desc := strings.TrimSpace(a.Description); desc != "" {
		b.WriteString(indent(Dim(desc), "             ") + "\n")
	}

	if a.MapQuery != "" {
		b.WriteString("             " + StyleBlue.Render("⌖ "+a.MapQuery) + "\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	out := strings.Join(lines, "\n")
	if strings.HasSuffix(s, "\n") {
		out += "\n"
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
