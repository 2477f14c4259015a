package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripsheet/internal/cli/formatter"
	"github.com/alexanderramin/tripsheet/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var (
		day   int
		plain bool
	)

	cmd := &cobra.Command{
		Use:   "view TRIP",
		Short: "Browse a trip's itinerary",
		Long: `View opens a scrollable itinerary browser on a terminal. Off a terminal,
or with --plain, the itinerary is printed instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			days, err := app.Itinerary.Days(ctx, t.ID)
			if err != nil {
				return err
			}
			if day < 0 || day > len(days) {
				return fmt.Errorf("--day must be between 1 and %d", len(days))
			}

			if plain || !app.interactive() {
				if day > 0 {
					days = days[day-1 : day]
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItinerary(days))
				return nil
			}

			m := newItineraryModel(t, days, day-1)
			_, err = tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			return err
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Show a single day (1-based)")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print instead of opening the browser")

	return cmd
}

// dayTitle is the short position label shown in the browser header.
func dayTitle(days []domain.Day, i int) string {
	if i < 0 {
		return fmt.Sprintf("All %s", formatter.Plural(len(days), "day", "days"))
	}
	return fmt.Sprintf("%s of %d", days[i].DayLabel, len(days))
}
