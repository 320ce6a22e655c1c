package metrics

import (
	"time"

	"deriverse-cli/internal/models"
)

// FilterWindow returns the trades whose close timestamp falls within the
// trailing window of the given number of days ending at now.
func FilterWindow(trades []models.Trade, days int, now time.Time) []models.Trade {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)
	var out []models.Trade
	for _, t := range trades {
		if !t.CloseTime.Before(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// rollingWindow computes trailing-window statistics using the same
// day-grouping and ratio logic as the full aggregate, restricted to the
// filtered set. An empty window yields all zeros.
func rollingWindow(trades []models.Trade, days int, now time.Time) models.RollingWindow {
	filtered := FilterWindow(trades, days, now)
	if len(filtered) == 0 {
		return models.RollingWindow{}
	}

	returns := dailyReturns(filtered)

	var pnl float64
	for _, t := range filtered {
		pnl += t.PnL
	}

	return models.RollingWindow{
		Sharpe:  round2(sharpe(returns)),
		Sortino: round2(sortino(returns)),
		WinRate: roundPct(winRateFraction(filtered)),
		PnL:     round2(pnl),
	}
}
