// Package correlation builds a pairwise Pearson correlation matrix of daily
// PnL across the most-traded symbols.
package correlation

import (
	"math"
	"sort"

	"deriverse-cli/internal/analytics/metrics"
	"deriverse-cli/internal/models"
)

// topSymbolCount caps the matrix at the six most-traded symbols.
const topSymbolCount = 6

// minCommonDays is the smallest overlap for which a correlation is computed;
// below it the pair is forced to 0 rather than reporting a noisy estimate.
const minCommonDays = 5

// Matrix pairs the selected symbols with their correlation grid. The grid is
// symmetric with an exact-1 diagonal, values rounded to 2 decimals.
type Matrix struct {
	Symbols []string    `json:"symbols"`
	Grid    [][]float64 `json:"matrix"`
}

// Build computes the correlation matrix for the top symbols by trade count.
// Ties on count break by symbol name ascending, keeping the selection
// deterministic for a fixed input.
func Build(trades []models.Trade) Matrix {
	symbols := topSymbols(trades)
	series := make([]map[string]float64, len(symbols))
	for i, sym := range symbols {
		series[i] = dailyPnLSeries(trades, sym)
	}

	n := len(symbols)
	grid := make([][]float64, n)
	for i := range grid {
		grid[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				grid[i][j] = 1
				continue
			}
			grid[i][j] = pearson(series[i], series[j])
		}
	}

	return Matrix{Symbols: symbols, Grid: grid}
}

func topSymbols(trades []models.Trade) []string {
	counts := make(map[string]int)
	for _, t := range trades {
		counts[t.Symbol]++
	}
	symbols := make([]string, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	sort.Slice(symbols, func(i, j int) bool {
		if counts[symbols[i]] != counts[symbols[j]] {
			return counts[symbols[i]] > counts[symbols[j]]
		}
		return symbols[i] < symbols[j]
	})
	if len(symbols) > topSymbolCount {
		symbols = symbols[:topSymbolCount]
	}
	return symbols
}

// dailyPnLSeries sums raw PnL per UTC close date for one symbol.
func dailyPnLSeries(trades []models.Trade, symbol string) map[string]float64 {
	series := make(map[string]float64)
	for _, t := range trades {
		if t.Symbol != symbol {
			continue
		}
		series[metrics.DayKey(t.CloseTime)] += t.PnL
	}
	return series
}

// pearson computes the correlation coefficient over the intersection of days
// present in both series.
func pearson(a, b map[string]float64) float64 {
	var days []string
	for day := range a {
		if _, ok := b[day]; ok {
			days = append(days, day)
		}
	}
	if len(days) < minCommonDays {
		return 0
	}
	sort.Strings(days)

	va := make([]float64, len(days))
	vb := make([]float64, len(days))
	var sumA, sumB float64
	for i, day := range days {
		va[i] = a[day]
		vb[i] = b[day]
		sumA += va[i]
		sumB += vb[i]
	}
	meanA := sumA / float64(len(days))
	meanB := sumB / float64(len(days))

	var cov, varA, varB float64
	for i := range days {
		da := va[i] - meanA
		db := vb[i] - meanB
		cov += da * db
		varA += da * da
		varB += db * db
	}

	denom := math.Sqrt(varA * varB)
	if denom <= 0 {
		return 0
	}
	return math.Round(cov/denom*100) / 100
}
