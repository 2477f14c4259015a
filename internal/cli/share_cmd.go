package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/cli/formatter"
	"github.com/alexanderramin/tripsheet/internal/domain"
	"github.com/spf13/cobra"
)

func newShareCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Exchange trips as share codes",
	}

	cmd.AddCommand(
		newShareExportCmd(app),
		newShareImportCmd(app),
	)

	return cmd
}

func newShareExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export TRIP",
		Short: "Print a share code for a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}
			code, err := app.Share.Export(ctx, t.ID)
			if err != nil {
				return err
			}
			// Plain output so the code can be piped.
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func newShareImportCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import TRIP [CODE|-]",
		Short: "Overwrite a trip's settings and days from a share code",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}

			code := "-"
			if len(args) == 2 {
				code = args[1]
			}
			if code == "-" {
				data, err := readInput(cmd, "-")
				if err != nil {
					return err
				}
				code = string(data)
			}
			if strings.TrimSpace(code) == "" {
				return fmt.Errorf("share code is empty")
			}

			days, err := app.Itinerary.Days(ctx, t.ID)
			if err != nil {
				return err
			}
			ok, err := confirmDestructive(app, yes, fmt.Sprintf(
				"Overwrite %q (%s) with the shared trip?", t.Name, formatter.Plural(domain.CountAttractions(days), "entry", "entries")))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			updated, err := app.Share.Import(ctx, t.ID, code)
			if err != nil {
				return err
			}
			days, err = app.Itinerary.Days(ctx, updated.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported share code into %s: %s, %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(updated.Name),
				formatter.Plural(len(days), "day", "days"),
				formatter.Plural(domain.CountAttractions(days), "entry", "entries"))
			return nil
		},
	}

	addYesFlag(cmd.Flags(), &yes)

	return cmd
}
