package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apperrors "deriverse-cli/internal/errors"
	"deriverse-cli/internal/export"
	"deriverse-cli/internal/logging"
)

// newExportCmd creates the CSV export command.
func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the selected trades to CSV",
		Long: `Write the (optionally filtered) trade history as CSV with the fixed
21-column layout, journal columns included. Use --output - to write to
stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			trades := app.Session.Trades()

			path, _ := cmd.Flags().GetString("output")
			if path == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), trades)
			}
			if path == "" {
				name := fmt.Sprintf("deriverse-trades-%s.csv", time.Now().UTC().Format("2006-01-02"))
				path = filepath.Join(app.Config.Export.Directory, name)
			}

			f, err := os.Create(path)
			if err != nil {
				return apperrors.NewExportError(path, err)
			}
			defer f.Close()

			if err := export.WriteCSV(f, trades); err != nil {
				return apperrors.NewExportError(path, err)
			}

			logging.LogExport(app.Logger, path, len(trades))
			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"path": path, "rows": len(trades)})
			}
			output.Success("✓ Exported %d trades to %s", len(trades), path)
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "output file path ('-' for stdout)")
	return cmd
}
