package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/alexanderramin/tripsheet/internal/service"
	"github.com/spf13/cobra"
)

func newDayCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Edit the entries of one day by hand",
	}

	cmd.AddCommand(
		newDayAddCmd(app),
		newDayRemoveCmd(app),
		newDayMoveCmd(app),
	)

	return cmd
}

func newDayAddCmd(app *App) *cobra.Command {
	var in service.NewAttraction
	var category string

	cmd := &cobra.Command{
		Use:   "add TRIP DAY",
		Short: "Append an entry to a day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parsePosition("day", args[1])
			if err != nil {
				return err
			}
			if category != "" {
				c, ok := domain.ParseCategory(category)
				if !ok {
					return fmt.Errorf("invalid --category %q (food, activity, shopping, sight, lodging, transit)", category)
				}
				in.Category = c
			}
			if in.Name == "" {
				return fmt.Errorf("--name is required")
			}

			a, err := app.Itinerary.AddAttraction(ctx, t.ID, day, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to day %d of %s\n", a.Name, day, t.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Name, "name", "", "Entry name")
	cmd.Flags().StringVar(&category, "category", "", "Category (default sight)")
	cmd.Flags().StringVar(&in.Description, "desc", "", "Description")
	cmd.Flags().StringVar(&in.MapQuery, "map", "", "Map search text (default the name)")
	cmd.Flags().StringVar(&in.PlanVariant, "variant", "", "Plan variant this entry belongs to")

	return cmd
}

func newDayRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm TRIP DAY POS",
		Short: "Remove the entry at POS from a day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parsePosition("day", args[1])
			if err != nil {
				return err
			}
			pos, err := parsePosition("position", args[2])
			if err != nil {
				return err
			}

			ok, err := confirmDestructive(app, yes, fmt.Sprintf("Remove entry %d from day %d of %q?", pos, day, t.Name))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			a, err := app.Itinerary.RemoveAttraction(ctx, t.ID, day, pos)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from day %d\n", a.Name, day)
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)

	return cmd
}

func newDayMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mv TRIP DAY FROM TO",
		Short: "Move an entry to another position within its day",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			day, err := parsePosition("day", args[1])
			if err != nil {
				return err
			}
			from, err := parsePosition("position", args[2])
			if err != nil {
				return err
			}
			to, err := parsePosition("position", args[3])
			if err != nil {
				return err
			}

			if err := app.Itinerary.MoveAttraction(ctx, t.ID, day, from, to); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved entry %d to position %d on day %d\n", from, to, day)
			return nil
		},
	}
}

// parsePosition reads a 1-based number argument.
func parsePosition(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return n, nil
}
