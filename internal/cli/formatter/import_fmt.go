package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/importer"
	"github.com/alexanderramin/tripsheet/internal/service"
)

// FormatImportResult summarizes an import run.
func FormatImportResult(r *service.ImportResult) string {
	if r.NoOp {
		return Dim("Nothing to import: the input was empty. Itinerary left unchanged.")
	}

	var b strings.Builder
	switch {
	case r.DryRun:
		b.WriteString(StyleYellowBold.Render("Dry run") + Dim(" (nothing was saved)") + "\n\n")
	default:
		b.WriteString(StyleGreen.Render("✔ Itinerary imported") + "\n\n")
	}

	field := func(label, value string) {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-10s", label)), value))
	}
	if r.Trip != nil {
		field("Trip", Bold(r.Trip.Name))
	}
	field("Layout", layoutLabel(r))
	field("Imported", StyleGreen.Render(Plural(r.Imported, "entry", "entries")))
	if r.Skipped > 0 {
		field("Skipped", StyleYellow.Render(Plural(r.Skipped, "row", "rows")))
	}
	if r.Replaced > 0 {
		field("Replaced", StyleRed.Render(Plural(r.Replaced, "entry", "entries")))
	}
	if r.Created > 0 {
		field("New days", StyleBlue.Render(Plural(r.Created, "day", "days")))
	}

	return RenderBox("Import", strings.TrimRight(b.String(), "\n"))
}

func layoutLabel(r *service.ImportResult) string {
	if r.Mode != importer.ModeHorizontal {
		return string(importer.ModeVertical)
	}
	return fmt.Sprintf("%s, %s", importer.ModeHorizontal, Plural(len(r.Blocks), "day block", "day blocks"))
}
