// Package metrics computes the DashboardMetrics aggregate from a list of
// closed trades. Every function is pure: same input, same output, no
// mutation of arguments. Recomputation is wholesale, O(n log n) worst case.
package metrics

import (
	"math"
	"time"

	"deriverse-cli/internal/models"
)

// InitialEquity is the fixed starting equity for the equity curve and for
// return normalization. It is a global constant, not derived from portfolio
// state.
const InitialEquity = 50000.0

// dailyRiskFree is the daily risk-free rate: 5% annual by simple division,
// not compounded.
const dailyRiskFree = 0.05 / 365

// Calculate computes the full metrics aggregate using the current wall clock
// for the rolling windows.
func Calculate(trades []models.Trade) models.DashboardMetrics {
	return CalculateAt(trades, time.Now())
}

// CalculateAt computes the full metrics aggregate. The rolling 7/30/90-day
// windows trail from now, which is evaluated exactly once.
//
// The consecutive win/loss scan runs over trades in their given order; the
// result is only meaningful when the input is chronologically sorted. Callers
// in this repo always supply sorted trades; external callers must do the same.
func CalculateAt(trades []models.Trade, now time.Time) models.DashboardMetrics {
	if len(trades) == 0 {
		return Empty()
	}

	var wins, losses []models.Trade
	longCount := 0
	for _, t := range trades {
		if t.Win() {
			wins = append(wins, t)
		} else {
			losses = append(losses, t)
		}
		if t.Side == models.SideLong {
			longCount++
		}
	}

	var totalPnL, totalFees, totalVolume float64
	for _, t := range trades {
		totalPnL += t.PnL
		totalFees += t.Fees.Total
		totalVolume += t.Notional()
	}

	var grossProfit, grossLoss float64
	for _, t := range wins {
		grossProfit += t.PnL
	}
	for _, t := range losses {
		grossLoss += t.PnL
	}
	grossLoss = math.Abs(grossLoss)

	curWins, curLosses, maxWins, maxLosses := streaks(trades)

	returns := dailyReturns(trades)

	equityCurve, drawdownCurve := buildEquityCurve(trades)
	var maxDD, maxDDPct float64
	for _, d := range drawdownCurve {
		maxDD = math.Max(maxDD, d.Drawdown)
		maxDDPct = math.Max(maxDDPct, d.DrawdownPercent)
	}

	var totalDuration time.Duration
	for _, t := range trades {
		totalDuration += t.Duration()
	}
	avgDurationMin := math.Round(totalDuration.Minutes() / float64(len(trades)))

	winRate := winRateFraction(trades)
	avgWin, avgLoss := 0.0, 0.0
	if len(wins) > 0 {
		avgWin = grossProfit / float64(len(wins))
	}
	if len(losses) > 0 {
		avgLoss = grossLoss / float64(len(losses))
	}
	expectancy := winRate*avgWin - (1-winRate)*avgLoss

	largestWin, largestLoss := 0.0, 0.0
	for _, t := range wins {
		largestWin = math.Max(largestWin, t.PnL)
	}
	for _, t := range losses {
		largestLoss = math.Min(largestLoss, t.PnL)
	}

	return models.DashboardMetrics{
		TotalPnL:             round2(totalPnL),
		TotalPnLPercent:      roundPct(totalPnL / InitialEquity),
		WinRate:              roundPct(winRate),
		TradeCount:           len(trades),
		AvgTradeDuration:     avgDurationMin,
		LongShortRatio:       float64(longCount) / math.Max(float64(len(trades)-longCount), 1),
		LargestWin:           round2(largestWin),
		LargestLoss:          round2(largestLoss),
		AvgWin:               round2(avgWin),
		AvgLoss:              round2(avgLoss),
		TotalVolume:          round2(totalVolume),
		TotalFees:            round2(totalFees),
		SharpeRatio:          round2(sharpe(returns)),
		SortinoRatio:         round2(sortino(returns)),
		ProfitFactor:         profitFactor(grossProfit, grossLoss),
		Expectancy:           round2(expectancy),
		MaxDrawdown:          round2(maxDD),
		MaxDrawdownPercent:   round2(maxDDPct),
		ConsecutiveWins:      curWins,
		ConsecutiveLosses:    curLosses,
		MaxConsecutiveWins:   maxWins,
		MaxConsecutiveLosses: maxLosses,
		ByInstrument:         byInstrument(trades),
		ByOrderType:          byOrderType(trades),
		BySymbol:             bySymbol(trades),
		EquityCurve:          equityCurve,
		DrawdownCurve:        drawdownCurve,
		DailyPnL:             buildDailyPnL(trades),
		HeatmapData:          buildHeatmap(trades),
		Rolling7d:            rollingWindow(trades, 7, now),
		Rolling30d:           rollingWindow(trades, 30, now),
		Rolling90d:           rollingWindow(trades, 90, now),
	}
}

// Empty returns a fully-zeroed metrics object: zero scalars, empty maps and
// series, a 6x7 zero heatmap. Callers never see nil fields.
func Empty() models.DashboardMetrics {
	return models.DashboardMetrics{
		ProfitFactor:  0,
		ByInstrument:  map[models.Instrument]models.InstrumentMetrics{},
		ByOrderType:   map[models.OrderType]models.OrderTypeMetrics{},
		BySymbol:      map[string]models.InstrumentMetrics{},
		EquityCurve:   []models.EquityPoint{},
		DrawdownCurve: []models.DrawdownPoint{},
		DailyPnL:      []models.DailyPnL{},
		HeatmapData:   zeroHeatmap(),
	}
}

// streaks scans trades in their given order tracking current and maximum
// win/loss runs. A non-positive PnL breaks a win streak and extends a loss
// streak.
func streaks(trades []models.Trade) (curWins, curLosses, maxWins, maxLosses int) {
	for _, t := range trades {
		if t.Win() {
			curWins++
			curLosses = 0
			if curWins > maxWins {
				maxWins = curWins
			}
		} else {
			curLosses++
			curWins = 0
			if curLosses > maxLosses {
				maxLosses = curLosses
			}
		}
	}
	return curWins, curLosses, maxWins, maxLosses
}

// profitFactor applies the sign conventions: grossLoss > 0 gives the rounded
// ratio, profit with no losses gives the infinite sentinel, no trades either
// way gives 0.
func profitFactor(grossProfit, grossLoss float64) models.ProfitFactor {
	if grossLoss > 0 {
		return models.ProfitFactor(round2(grossProfit / grossLoss))
	}
	if grossProfit > 0 {
		return models.ProfitFactor(math.Inf(1))
	}
	return 0
}

func byInstrument(trades []models.Trade) map[models.Instrument]models.InstrumentMetrics {
	out := make(map[models.Instrument]models.InstrumentMetrics)
	for _, inst := range models.Instruments {
		bucket := filterTrades(trades, func(t models.Trade) bool { return t.Instrument == inst })
		if len(bucket) == 0 {
			continue
		}
		out[inst] = bucketMetrics(bucket)
	}
	return out
}

func byOrderType(trades []models.Trade) map[models.OrderType]models.OrderTypeMetrics {
	out := make(map[models.OrderType]models.OrderTypeMetrics)
	for _, ot := range models.OrderTypes {
		bucket := filterTrades(trades, func(t models.Trade) bool { return t.OrderType == ot })
		if len(bucket) == 0 {
			continue
		}
		var pnl float64
		for _, t := range bucket {
			pnl += t.PnL
		}
		out[ot] = models.OrderTypeMetrics{
			PnL:        round2(pnl),
			WinRate:    roundPct(winRateFraction(bucket)),
			TradeCount: len(bucket),
		}
	}
	return out
}

func bySymbol(trades []models.Trade) map[string]models.InstrumentMetrics {
	out := make(map[string]models.InstrumentMetrics)
	for _, t := range trades {
		if _, ok := out[t.Symbol]; ok {
			continue
		}
		sym := t.Symbol
		bucket := filterTrades(trades, func(t models.Trade) bool { return t.Symbol == sym })
		out[sym] = bucketMetrics(bucket)
	}
	return out
}

func bucketMetrics(bucket []models.Trade) models.InstrumentMetrics {
	var pnl, fees, volume float64
	for _, t := range bucket {
		pnl += t.PnL
		fees += t.Fees.Total
		volume += t.Notional()
	}
	return models.InstrumentMetrics{
		PnL:        round2(pnl),
		WinRate:    roundPct(winRateFraction(bucket)),
		TradeCount: len(bucket),
		AvgPnL:     round2(pnl / float64(len(bucket))),
		Fees:       round2(fees),
		Volume:     round2(volume),
	}
}

func filterTrades(trades []models.Trade, keep func(models.Trade) bool) []models.Trade {
	var out []models.Trade
	for _, t := range trades {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// winRateFraction returns wins/total in [0,1]; 0 for an empty slice.
func winRateFraction(trades []models.Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for _, t := range trades {
		if t.Win() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades))
}
