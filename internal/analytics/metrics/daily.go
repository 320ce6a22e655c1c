package metrics

import (
	"sort"
	"time"

	"deriverse-cli/internal/models"
)

// dayKeyFormat produces the calendar-day grouping key. All grouping is by the
// UTC day of the close timestamp.
const dayKeyFormat = "2006-01-02"

// DayKey returns the UTC calendar-day key for a timestamp.
func DayKey(ts time.Time) string {
	return ts.UTC().Format(dayKeyFormat)
}

// GroupByDay groups trades by the UTC calendar day of their close timestamp.
// Days with no trades get no entry.
func GroupByDay(trades []models.Trade) map[string][]models.Trade {
	byDay := make(map[string][]models.Trade)
	for _, t := range trades {
		key := DayKey(t.CloseTime)
		byDay[key] = append(byDay[key], t)
	}
	return byDay
}

func sortedDayKeys(byDay map[string][]models.Trade) []string {
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// netDayPnL sums pnl - fees.total for a day's trades. The equity curve and
// the return series are fee-adjusted; the headline TotalPnL is not.
func netDayPnL(dayTrades []models.Trade) float64 {
	var sum float64
	for _, t := range dayTrades {
		sum += t.PnL - t.Fees.Total
	}
	return sum
}

// dailyReturns converts each day's net PnL into a return against the fixed
// initial-equity constant. Normalizing against start-of-day equity would
// compound; this engine deliberately does not.
func dailyReturns(trades []models.Trade) []float64 {
	byDay := GroupByDay(trades)
	returns := make([]float64, 0, len(byDay))
	for _, day := range sortedDayKeys(byDay) {
		returns = append(returns, netDayPnL(byDay[day])/InitialEquity)
	}
	return returns
}

// buildEquityCurve walks the distinct trading days in ascending order,
// advancing equity by the fee-adjusted day PnL and tracking the running peak
// for drawdowns. Days without trades produce no point.
func buildEquityCurve(trades []models.Trade) ([]models.EquityPoint, []models.DrawdownPoint) {
	byDay := GroupByDay(trades)
	days := sortedDayKeys(byDay)

	equityCurve := make([]models.EquityPoint, 0, len(days))
	drawdownCurve := make([]models.DrawdownPoint, 0, len(days))

	equity := InitialEquity
	peak := InitialEquity
	for _, day := range days {
		dayPnL := netDayPnL(byDay[day])
		equity += dayPnL
		if equity > peak {
			peak = equity
		}
		drawdown := peak - equity
		drawdownPct := 0.0
		if peak > 0 {
			drawdownPct = drawdown / peak * 100
		}

		equityCurve = append(equityCurve, models.EquityPoint{
			Date:   day,
			Equity: round2(equity),
			PnL:    round2(dayPnL),
		})
		drawdownCurve = append(drawdownCurve, models.DrawdownPoint{
			Date:            day,
			Drawdown:        round2(drawdown),
			DrawdownPercent: round2(drawdownPct),
		})
	}
	return equityCurve, drawdownCurve
}

// buildDailyPnL summarizes each trading day with raw (not fee-adjusted) PnL,
// trade count, and win rate.
func buildDailyPnL(trades []models.Trade) []models.DailyPnL {
	byDay := GroupByDay(trades)
	days := sortedDayKeys(byDay)

	out := make([]models.DailyPnL, 0, len(days))
	for _, day := range days {
		dayTrades := byDay[day]
		var pnl float64
		for _, t := range dayTrades {
			pnl += t.PnL
		}
		out = append(out, models.DailyPnL{
			Date:       day,
			PnL:        round2(pnl),
			TradeCount: len(dayTrades),
			WinRate:    roundPct(winRateFraction(dayTrades)),
		})
	}
	return out
}
