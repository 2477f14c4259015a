package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/tripsheet/internal/cli/formatter"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newTripCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Manage trips",
	}

	cmd.AddCommand(
		newTripAddCmd(app),
		newTripListCmd(app),
		newTripShowCmd(app),
		newTripRemoveCmd(app),
	)

	return cmd
}

func newTripAddCmd(app *App) *cobra.Command {
	var name, destination, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a trip with one empty day per calendar day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (name == "" || start == "" || end == "") && app.interactive() {
				if err := tripForm(&name, &destination, &start, &end).Run(); err != nil {
					return err
				}
			}
			if start == "" || end == "" {
				return fmt.Errorf("--start and --end are required (YYYY-MM-DD)")
			}

			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			t := &domain.Trip{
				Name:        name,
				Destination: destination,
				StartDate:   startDate,
				EndDate:     endDate,
			}
			if err := app.Trips.Create(context.Background(), t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created trip %s [%s] with %s\n",
				t.Name, t.DisplayID(), formatter.Plural(t.DayCount(), "day", "days"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Trip name (unique)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination, used as each day's location")
	cmd.Flags().StringVar(&start, "start", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "Last day (YYYY-MM-DD)")

	return cmd
}

func newTripListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := app.Trips.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTripList(trips))
			return nil
		},
	}
}

func newTripShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TRIP",
		Short: "Show trip details and a per-day summary",
		Args:  cobra.ExactArgs(1),
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
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTripShow(t, days))
			return nil
		},
	}
}

func newTripRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove TRIP",
		Short: "Remove a trip and its itinerary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}

			ok, err := confirmDestructive(app, yes, fmt.Sprintf("Remove trip %q and its itinerary?", t.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if err := app.Trips.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed trip %s\n", t.Name)
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)

	return cmd
}
