package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/models"
)

// newMetricsCmd creates the metrics summary command.
func newMetricsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show the performance metrics dashboard",
		Long: `Compute the full metrics aggregate over the (optionally filtered)
trade history: PnL, win rate, risk-adjusted ratios, streaks, breakdowns by
instrument, order type and symbol, and rolling windows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			m := app.Session.Metrics()

			if output.IsJSON() {
				return output.JSON(m)
			}
			return showMetrics(output, m)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func showMetrics(output *Output, m models.DashboardMetrics) error {
	output.Bold("Performance Summary")
	output.Printf("  Total PnL:        %s (%s)\n", output.FormatPnL(m.TotalPnL), output.FormatPercent(m.TotalPnLPercent))
	output.Printf("  Trades:           %d\n", m.TradeCount)
	output.Printf("  Win Rate:         %.2f%%\n", m.WinRate)
	output.Printf("  Profit Factor:    %s\n", FormatRatio(float64(m.ProfitFactor)))
	output.Printf("  Expectancy:       %s / trade\n", output.FormatPnL(m.Expectancy))
	output.Printf("  Avg Duration:     %s\n", FormatMinutes(m.AvgTradeDuration))
	output.Printf("  Long/Short:       %.2f\n", m.LongShortRatio)
	output.Println()

	output.Bold("Risk")
	output.Printf("  Sharpe:           %.2f\n", m.SharpeRatio)
	output.Printf("  Sortino:          %.2f\n", m.SortinoRatio)
	output.Printf("  Max Drawdown:     %s (%.2f%%)\n", FormatCurrency(m.MaxDrawdown), m.MaxDrawdownPercent)
	output.Printf("  Largest Win:      %s\n", output.FormatPnL(m.LargestWin))
	output.Printf("  Largest Loss:     %s\n", output.FormatPnL(m.LargestLoss))
	output.Printf("  Avg Win / Loss:   %s / %s\n", FormatCurrency(m.AvgWin), FormatCurrency(m.AvgLoss))
	output.Printf("  Streaks:          %dW / %dL (max %dW / %dL)\n",
		m.ConsecutiveWins, m.ConsecutiveLosses, m.MaxConsecutiveWins, m.MaxConsecutiveLosses)
	output.Println()

	output.Bold("Costs & Volume")
	output.Printf("  Total Fees:       %s\n", FormatCurrency(m.TotalFees))
	output.Printf("  Total Volume:     %s\n", FormatCompact(m.TotalVolume))
	output.Println()

	if len(m.ByInstrument) > 0 {
		output.Bold("By Instrument")
		table := NewTable(output, "Instrument", "Trades", "Win Rate", "PnL", "Fees")
		for _, inst := range models.Instruments {
			im, ok := m.ByInstrument[inst]
			if !ok {
				continue
			}
			table.AddRow(
				string(inst),
				fmt.Sprintf("%d", im.TradeCount),
				fmt.Sprintf("%.2f%%", im.WinRate),
				output.FormatPnL(im.PnL),
				FormatCurrency(im.Fees),
			)
		}
		table.Render()
		output.Println()
	}

	if len(m.ByOrderType) > 0 {
		output.Bold("By Order Type")
		table := NewTable(output, "Order Type", "Trades", "Win Rate", "PnL")
		for _, ot := range models.OrderTypes {
			om, ok := m.ByOrderType[ot]
			if !ok {
				continue
			}
			table.AddRow(
				string(ot),
				fmt.Sprintf("%d", om.TradeCount),
				fmt.Sprintf("%.2f%%", om.WinRate),
				output.FormatPnL(om.PnL),
			)
		}
		table.Render()
		output.Println()
	}

	output.Bold("Rolling Windows")
	table := NewTable(output, "Window", "PnL", "Win Rate", "Sharpe", "Sortino")
	for _, w := range []struct {
		name string
		rw   models.RollingWindow
	}{
		{"7d", m.Rolling7d},
		{"30d", m.Rolling30d},
		{"90d", m.Rolling90d},
	} {
		table.AddRow(
			w.name,
			output.FormatPnL(w.rw.PnL),
			fmt.Sprintf("%.2f%%", w.rw.WinRate),
			fmt.Sprintf("%.2f", w.rw.Sharpe),
			fmt.Sprintf("%.2f", w.rw.Sortino),
		)
	}
	table.Render()

	return nil
}

// newEquityCmd creates the equity curve command.
func newEquityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equity",
		Short: "Show the daily equity and drawdown curves",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			m := app.Session.Metrics()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"equityCurve":   m.EquityCurve,
					"drawdownCurve": m.DrawdownCurve,
					"dailyPnl":      m.DailyPnL,
				})
			}

			if len(m.EquityCurve) == 0 {
				output.Warning("No trading days in the selected period.")
				return nil
			}

			output.Bold("Equity Curve")
			table := NewTable(output, "Date", "Equity", "Day PnL", "Drawdown")
			for i, pt := range m.EquityCurve {
				dd := ""
				if i < len(m.DrawdownCurve) {
					dd = fmt.Sprintf("%.2f%%", m.DrawdownCurve[i].DrawdownPercent)
				}
				table.AddRow(
					pt.Date,
					FormatCurrency(pt.Equity),
					output.FormatPnL(pt.PnL),
					dd,
				)
			}
			table.Render()
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}

// newHeatmapCmd creates the time-performance heatmap command.
func newHeatmapCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show PnL by weekday and 4-hour UTC block",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			m := app.Session.Metrics()

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{"heatmapData": m.HeatmapData})
			}
			return showHeatmap(output, m.HeatmapData)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

var heatmapDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var heatmapBlocks = []string{"00-04", "04-08", "08-12", "12-16", "16-20", "20-24"}

func showHeatmap(output *Output, grid [][]float64) error {
	output.Bold("PnL Heatmap (UTC)")
	table := NewTable(output, append([]string{"Block"}, heatmapDays...)...)
	for block := 0; block < models.HeatmapRows && block < len(grid); block++ {
		row := make([]string, 0, models.HeatmapCols+1)
		row = append(row, heatmapBlocks[block])
		for day := 0; day < models.HeatmapCols && day < len(grid[block]); day++ {
			v := grid[block][day]
			cell := "·"
			if v != 0 {
				cell = output.ColoredString(output.PnLColor(v), FormatCompact(v))
			}
			row = append(row, cell)
		}
		table.AddRow(row...)
	}
	table.Render()

	best := math.Inf(-1)
	bestBlock, bestDay := 0, 0
	for b := range grid {
		for d := range grid[b] {
			if grid[b][d] > best {
				best, bestBlock, bestDay = grid[b][d], b, d
			}
		}
	}
	if best > 0 {
		output.Println()
		output.Info("Best slot: %s %s with %s", heatmapDays[bestDay], heatmapBlocks[bestBlock], FormatPnL(best))
	}
	return nil
}
