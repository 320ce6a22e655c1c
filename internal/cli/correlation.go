package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/analytics/correlation"
)

// newCorrelationCmd creates the symbol correlation command.
func newCorrelationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correlation",
		Short: "Show the daily-PnL correlation matrix for your top symbols",
		Long: `Build a Pearson correlation matrix over daily PnL series of your six
most-traded symbols. Symbol pairs with fewer than five common trading days
show zero. High positive correlation means those positions tend to win and
lose together, concentrating risk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			matrix := correlation.Build(app.Session.Trades())

			if output.IsJSON() {
				return output.JSON(matrix)
			}

			if len(matrix.Symbols) < 2 {
				output.Warning("Need at least two traded symbols for a correlation matrix.")
				return nil
			}

			output.Bold("Symbol Correlation (daily PnL)")
			headers := append([]string{""}, matrix.Symbols...)
			table := NewTable(output, headers...)
			for i, sym := range matrix.Symbols {
				row := make([]string, 0, len(matrix.Symbols)+1)
				row = append(row, sym)
				for j := range matrix.Symbols {
					row = append(row, formatCorrelation(output, matrix.Grid[i][j], i == j))
				}
				table.AddRow(row...)
			}
			table.Render()
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func formatCorrelation(output *Output, r float64, diagonal bool) string {
	s := fmt.Sprintf("%.2f", r)
	if diagonal {
		return output.DimText(s)
	}
	switch {
	case r >= 0.7:
		return output.Red(s)
	case r <= -0.7:
		return output.Green(s)
	default:
		return s
	}
}
