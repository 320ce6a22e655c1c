package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/analytics/insights"
	apperrors "deriverse-cli/internal/errors"
	"deriverse-cli/internal/models"
)

// newInsightCmd creates the metric insight command.
func newInsightCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insight [metric]",
		Short: "Explain a metric and where you stand on it",
		Long: `Show what a metric means, where your current value sits against
benchmark bands, one observation personalized from your own history and one
actionable suggestion. Run without arguments to list available metrics.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)

			if len(args) == 0 {
				names := insights.Names()
				if output.IsJSON() {
					return output.JSON(map[string][]string{"metrics": names})
				}
				output.Bold("Available metrics")
				for _, name := range names {
					output.Printf("  %s\n", name)
				}
				return nil
			}

			name := args[0]
			ins, ok := insights.Get(name)
			if !ok {
				return apperrors.Wrapf(apperrors.ErrMetricUnknown, "%q", name)
			}

			ctx := insights.Context{
				Trades:    app.Session.Trades(),
				Metrics:   app.Session.Metrics(),
				Portfolio: app.Session.Portfolio(),
			}
			value := metricValue(name, ctx)
			band, pos := insights.Position(value, ins.Benchmarks)

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"metric":     name,
					"title":      ins.Title,
					"definition": ins.Definition,
					"value":      value,
					"band":       band,
					"position":   pos,
					"personal":   ins.Personal(value, ctx),
					"actionable": ins.Actionable(value, ctx),
				})
			}

			output.Bold(ins.Title)
			output.Println(ins.Definition)
			output.Println()
			output.Printf("  Value:    %.2f\n", value)
			output.Printf("  Band:     %s %s\n", band, output.DimText(positionBar(pos)))
			output.Println()
			output.Info("%s", ins.Personal(value, ctx))
			output.Printf("  %s %s\n", output.Yellow("→"), ins.Actionable(value, ctx))
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

// metricValue extracts the current value for a named metric.
func metricValue(name string, ctx insights.Context) float64 {
	m := ctx.Metrics
	switch name {
	case "totalPnl":
		return m.TotalPnL
	case "winRate":
		return m.WinRate
	case "profitFactor":
		return float64(m.ProfitFactor)
	case "expectancy":
		return m.Expectancy
	case "sharpeRatio":
		return m.SharpeRatio
	case "sortinoRatio":
		return m.SortinoRatio
	case "maxDrawdown":
		return m.MaxDrawdownPercent
	case "avgDuration":
		return m.AvgTradeDuration
	case "longShortRatio":
		return m.LongShortRatio
	case "fundingPnl":
		var funding float64
		for _, t := range ctx.Trades {
			if t.Instrument == models.InstrumentPerpetual {
				funding -= t.Fees.Funding
			}
		}
		return funding
	case "marginUtilization":
		return ctx.Portfolio.MarginUtilization()
	case "delta":
		return ctx.Portfolio.GreeksAggregate.Delta
	case "gamma":
		return ctx.Portfolio.GreeksAggregate.Gamma
	case "theta":
		return ctx.Portfolio.GreeksAggregate.Theta
	case "vega":
		return ctx.Portfolio.GreeksAggregate.Vega
	case "liquidationProximity":
		d, _ := ctx.Portfolio.NearestLiquidation()
		return d
	default:
		return 0
	}
}

// positionBar renders a 0..1 position as a ten-slot gauge.
func positionBar(pos float64) string {
	const slots = 10
	filled := int(pos * slots)
	if filled > slots-1 {
		filled = slots - 1
	}
	if filled < 0 {
		filled = 0
	}
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < slots; i++ {
		if i == filled {
			b.WriteString("●")
		} else {
			b.WriteString("·")
		}
	}
	b.WriteByte(']')
	return b.String()
}
