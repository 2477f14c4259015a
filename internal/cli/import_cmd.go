package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/tripsheet/internal/cli/formatter"
	"github.com/alexanderramin/tripsheet/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var (
		xlsx   bool
		sheet  string
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "import TRIP [FILE|-]",
		Short: "Replace a trip's itinerary with a pasted sheet or an .xlsx file",
		Long: `Import reads tab-separated text copied from a spreadsheet (or an .xlsx
workbook) and replaces every day's entries with the imported ones.

Without FILE, or with "-", the sheet is read from stdin. Files ending in
.xlsx are read as workbooks; use --xlsx to force that for stdin.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := resolveTrip(ctx, app, args[0])
			if err != nil {
				return err
			}

			path := "-"
			if len(args) == 2 {
				path = args[1]
			}
			if strings.EqualFold(filepath.Ext(path), ".xlsx") {
				xlsx = true
			}
			if sheet != "" && !xlsx {
				return fmt.Errorf("--sheet only applies to .xlsx input")
			}

			if path == "-" && !xlsx && app.interactive() {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Paste the sheet, then press Ctrl-D."))
			}
			data, err := readInput(cmd, path)
			if err != nil {
				return err
			}

			run := func(opts service.ImportOptions) (*service.ImportResult, error) {
				if !xlsx {
					return app.Import.ImportText(ctx, t.ID, string(data), opts)
				}
				if app.interactive() {
					stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Reading workbook")
					defer stop()
				}
				return app.Import.ImportWorkbook(ctx, t.ID, bytes.NewReader(data), sheet, opts)
			}

			// Preview first so the prompt can say what would be lost.
			preview, err := run(service.ImportOptions{DryRun: true})
			if err != nil {
				return err
			}
			if dryRun || preview.NoOp {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(preview))
				return nil
			}

			if preview.Replaced > 0 {
				ok, err := confirmDestructive(app, yes, fmt.Sprintf(
					"Replace %s in %q with %s?",
					formatter.Plural(preview.Replaced, "entry", "entries"), t.Name,
					formatter.Plural(preview.Imported, "imported entry", "imported entries")))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled. Itinerary left unchanged.")
					return nil
				}
			}

			res, err := run(service.ImportOptions{})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}

	cmd.Flags().BoolVar(&xlsx, "xlsx", false, "Treat the input as an .xlsx workbook")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Workbook sheet to read (default: first sheet)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and report without saving")
	addYesFlag(cmd.Flags(), &yes)

	return cmd
}

// readInput reads a file, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
