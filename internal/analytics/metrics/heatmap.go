package metrics

import (
	"time"

	"deriverse-cli/internal/models"
)

// WeekdayColumn maps a timestamp's UTC weekday to the heatmap column,
// remapping Go's Sunday-first ordering to ISO order (Monday = 0, Sunday = 6).
func WeekdayColumn(ts time.Time) int {
	return (int(ts.UTC().Weekday()) + 6) % 7
}

// HourBlock maps a timestamp's UTC hour to its 4-hour block row (0..5).
func HourBlock(ts time.Time) int {
	return ts.UTC().Hour() / 4
}

func zeroHeatmap() [][]float64 {
	grid := make([][]float64, models.HeatmapRows)
	for i := range grid {
		grid[i] = make([]float64, models.HeatmapCols)
	}
	return grid
}

// buildHeatmap bins raw PnL (not fee-adjusted) into 4-hour UTC block rows by
// ISO weekday columns, keyed by each trade's open timestamp.
func buildHeatmap(trades []models.Trade) [][]float64 {
	grid := zeroHeatmap()
	for _, t := range trades {
		grid[HourBlock(t.OpenTime)][WeekdayColumn(t.OpenTime)] += t.PnL
	}
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = round2(grid[i][j])
		}
	}
	return grid
}
