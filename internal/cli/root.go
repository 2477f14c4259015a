package cli

import (
	"github.com/alexanderramin/tripsheet/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Trips     service.TripService
	Itinerary service.ItineraryService
	Import    service.ImportService
	Share     service.ShareService

	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil falls back to a huh prompt.
	Confirm func(title string) (bool, error)
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "tripsheet" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tripsheet",
		Short:         "Trip itineraries imported from spreadsheets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTripCmd(app),
		newDayCmd(app),
		newImportCmd(app),
		newShareCmd(app),
		newViewCmd(app),
	)

	return root
}
