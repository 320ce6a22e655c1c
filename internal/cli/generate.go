package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/data"
	apperrors "deriverse-cli/internal/errors"
)

// newGenerateCmd creates the mock data generator command.
func newGenerateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a deterministic mock trade history",
		Long: `Emit a realistic 90-day trade history as JSON: session-clustered
timestamps, fat-tailed PnL, drawdown stretches and partially journaled
trades. The same seed always produces the same history, so generated files
are reproducible fixtures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			seed, _ := cmd.Flags().GetInt64("seed")
			if seed == 0 {
				seed = app.Config.Data.Seed
			}
			trades := data.GenerateTrades(seed)

			path, _ := cmd.Flags().GetString("output")
			if path == "" || path == "-" {
				return output.JSON(trades)
			}

			raw, err := json.MarshalIndent(trades, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, raw, 0644); err != nil {
				return apperrors.NewExportError(path, err)
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"path": path, "trades": len(trades)})
			}
			output.Success("✓ Wrote %d trades to %s", len(trades), path)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	return cmd
}
