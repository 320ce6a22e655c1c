package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/analytics/thresholds"
)

// newThresholdsCmd creates the adaptive thresholds command.
func newThresholdsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thresholds",
		Short: "Show adaptive performance thresholds",
		Long: `Derive personal performance zones from your own trading history.
Each metric gets cut points at mean ± 0.5 and ± 1.5 standard deviations
plus the 25th/50th/75th/90th percentiles, so "good" is measured against
your distribution instead of fixed industry numbers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			at := thresholds.Calculate(app.Session.Trades(), app.Session.Metrics())

			if output.IsJSON() {
				return output.JSON(at)
			}

			if len(at.Zones) == 0 {
				output.Warning("Not enough trades to derive thresholds.")
				return nil
			}

			output.Bold("Adaptive Thresholds")
			output.Dim("Calculated: %s", FormatDateTime(at.LastCalculated))
			output.Println()

			names := make([]string, 0, len(at.Zones))
			for name := range at.Zones {
				names = append(names, name)
			}
			sort.Strings(names)

			table := NewTable(output, "Metric", "Mean", "σ", "Excellent", "Good", "Below Avg", "Poor", "P50", "P90")
			for _, name := range names {
				z := at.Zones[name]
				table.AddRow(
					name,
					fmt.Sprintf("%.2f", z.Mean),
					fmt.Sprintf("%.2f", z.StdDev),
					fmt.Sprintf("%.2f", z.Excellent),
					fmt.Sprintf("%.2f", z.Good),
					fmt.Sprintf("%.2f", z.BelowAvg),
					fmt.Sprintf("%.2f", z.Poor),
					fmt.Sprintf("%.2f", z.P50),
					fmt.Sprintf("%.2f", z.P90),
				)
			}
			table.Render()
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
