// Package thresholds derives per-metric statistical zones from a trader's own
// history, so "good" and "poor" are calibrated to the trader rather than to
// fixed industry numbers. Everything is recomputed from scratch on each call.
package thresholds

import (
	"math"
	"sort"
	"time"

	"deriverse-cli/internal/analytics/metrics"
	"deriverse-cli/internal/models"
)

// Minimum sample sizes applied before a series contributes to its zone
// computation. Under-sampled series are excluded, not defaulted.
const (
	minBucketTrades = 5 // instrument / symbol win-rate and PnL series
	minDayTrades    = 2 // daily win-rate series
	minSlotTrades   = 3 // day-of-week and time-block win-rate series
)

// MetricZones holds the distribution summary and classification cut points
// for one metric series.
type MetricZones struct {
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stdDev"`
	Excellent float64 `json:"excellent"` // mean + 1.5 sigma
	Good      float64 `json:"good"`      // mean + 0.5 sigma
	Average   float64 `json:"average"`   // mean
	BelowAvg  float64 `json:"belowAvg"`  // mean - 0.5 sigma
	Poor      float64 `json:"poor"`      // mean - 1.5 sigma
	P25       float64 `json:"p25"`
	P50       float64 `json:"p50"`
	P75       float64 `json:"p75"`
	P90       float64 `json:"p90"`
}

// AdaptiveThresholds maps metric names to their zones.
type AdaptiveThresholds struct {
	Zones          map[string]MetricZones `json:"zones"`
	LastCalculated time.Time              `json:"lastCalculated"`
}

// Trend classifies the direction of a metric between two periods.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Calculate builds adaptive zones from the trade set and its already-computed
// metrics aggregate.
func Calculate(trades []models.Trade, m models.DashboardMetrics) AdaptiveThresholds {
	zones := make(map[string]MetricZones)

	var instrumentWinRates []float64
	for _, im := range m.ByInstrument {
		if im.TradeCount >= minBucketTrades {
			instrumentWinRates = append(instrumentWinRates, im.WinRate)
		}
	}
	zones["instrumentWinRate"] = calcZones(instrumentWinRates)

	var symbolWinRates, symbolPnLs []float64
	for _, sm := range m.BySymbol {
		if sm.TradeCount >= minBucketTrades {
			symbolWinRates = append(symbolWinRates, sm.WinRate)
			symbolPnLs = append(symbolPnLs, sm.PnL)
		}
	}
	zones["symbolWinRate"] = calcZones(symbolWinRates)
	zones["symbolPnl"] = calcZones(symbolPnLs)

	dailyCounts := make([]float64, 0, len(m.DailyPnL))
	dailyPnLs := make([]float64, 0, len(m.DailyPnL))
	var dailyWinRates []float64
	for _, d := range m.DailyPnL {
		dailyCounts = append(dailyCounts, float64(d.TradeCount))
		dailyPnLs = append(dailyPnLs, d.PnL)
		if d.TradeCount >= minDayTrades {
			dailyWinRates = append(dailyWinRates, d.WinRate)
		}
	}
	zones["dailyTradeCount"] = calcZones(dailyCounts)
	zones["dailyPnl"] = calcZones(dailyPnLs)
	zones["dailyWinRate"] = calcZones(dailyWinRates)

	tradePnLs := make([]float64, 0, len(trades))
	durations := make([]float64, 0, len(trades))
	leverages := make([]float64, 0, len(trades))
	for _, t := range trades {
		tradePnLs = append(tradePnLs, t.PnL)
		durations = append(durations, t.DurationMinutes())
		leverages = append(leverages, t.Leverage)
	}
	zones["tradePnl"] = calcZones(tradePnLs)
	zones["tradeDuration"] = calcZones(durations)
	zones["leverage"] = calcZones(leverages)

	zones["dayOfWeekWinRate"] = calcZones(slotWinRates(trades, models.HeatmapCols, metrics.WeekdayColumn))
	zones["timeBlockWinRate"] = calcZones(slotWinRates(trades, models.HeatmapRows, metrics.HourBlock))

	return AdaptiveThresholds{Zones: zones, LastCalculated: time.Now()}
}

// slotWinRates buckets trades by a time slot of their open timestamp and
// returns the win-rate percentage per slot, keeping only slots with enough
// observations.
func slotWinRates(trades []models.Trade, slots int, slot func(time.Time) int) []float64 {
	wins := make([]int, slots)
	counts := make([]int, slots)
	for _, t := range trades {
		s := slot(t.OpenTime)
		counts[s]++
		if t.Win() {
			wins[s]++
		}
	}
	var rates []float64
	for s := 0; s < slots; s++ {
		if counts[s] >= minSlotTrades {
			rates = append(rates, float64(wins[s])/float64(counts[s])*100)
		}
	}
	return rates
}

// calcZones computes the mean, sample standard deviation, sigma-band cut
// points, and interpolated percentiles for a series. An empty series yields
// all zeros.
func calcZones(values []float64) MetricZones {
	if len(values) == 0 {
		return MetricZones{}
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= math.Max(float64(len(values)-1), 1)
	stdDev := math.Sqrt(variance)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return MetricZones{
		Mean:      m,
		StdDev:    stdDev,
		Excellent: m + 1.5*stdDev,
		Good:      m + 0.5*stdDev,
		Average:   m,
		BelowAvg:  m - 0.5*stdDev,
		Poor:      m - 1.5*stdDev,
		P25:       Percentile(sorted, 25),
		P50:       Percentile(sorted, 50),
		P75:       Percentile(sorted, 75),
		P90:       Percentile(sorted, 90),
	}
}

// Percentile linearly interpolates the p-th percentile (0-100) of a sorted
// series: fractional index p/100*(n-1), interpolated between neighbors.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(idx-float64(lo))
}

// DetectTrend compares a recent value against a previous one in units of the
// series' dispersion. A zero sigma is always stable.
func DetectTrend(recent, previous, sigma float64) Trend {
	if sigma == 0 {
		return TrendStable
	}
	delta := recent - previous
	if delta > 0.5*sigma {
		return TrendImproving
	}
	if delta < -0.5*sigma {
		return TrendDeclining
	}
	return TrendStable
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
