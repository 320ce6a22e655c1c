package models

import (
	"encoding/json"
	"math"
)

// ProfitFactor is gross profit divided by gross loss. The distinguished
// infinite value means "no losing trades"; it marshals to the string "inf"
// so strict JSON consumers never see an Infinity literal.
type ProfitFactor float64

// Infinite reports whether the profit factor is the no-losing-trades sentinel.
func (p ProfitFactor) Infinite() bool {
	return math.IsInf(float64(p), 1)
}

// MarshalJSON implements json.Marshaler.
func (p ProfitFactor) MarshalJSON() ([]byte, error) {
	if p.Infinite() {
		return json.Marshal("inf")
	}
	return json.Marshal(float64(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ProfitFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "inf" {
			*p = ProfitFactor(math.Inf(1))
			return nil
		}
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = ProfitFactor(f)
	return nil
}

// InstrumentMetrics is the per-bucket breakdown used for instruments and
// symbols.
type InstrumentMetrics struct {
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"winRate"`
	TradeCount int     `json:"tradeCount"`
	AvgPnL     float64 `json:"avgPnl"`
	Fees       float64 `json:"fees"`
	Volume     float64 `json:"volume"`
}

// OrderTypeMetrics is the slimmer per-order-type breakdown.
type OrderTypeMetrics struct {
	PnL        float64 `json:"pnl"`
	WinRate    float64 `json:"winRate"`
	TradeCount int     `json:"tradeCount"`
}

// EquityPoint is one day on the equity curve. The equity advance is
// fee-adjusted (pnl - fees.total), unlike the headline TotalPnL.
type EquityPoint struct {
	Date   string  `json:"date"`
	Equity float64 `json:"equity"`
	PnL    float64 `json:"pnl"`
}

// DrawdownPoint is one day on the peak-to-trough drawdown curve.
type DrawdownPoint struct {
	Date            string  `json:"date"`
	Drawdown        float64 `json:"drawdown"`
	DrawdownPercent float64 `json:"drawdownPercent"`
}

// DailyPnL summarizes one calendar day of trading.
type DailyPnL struct {
	Date       string  `json:"date"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
}

// RollingWindow holds trailing-window statistics.
type RollingWindow struct {
	Sharpe  float64 `json:"sharpe"`
	Sortino float64 `json:"sortino"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
}

// HeatmapRows and HeatmapCols fix the dimensions of the PnL heatmap:
// six 4-hour UTC blocks by seven ISO weekdays (Monday = column 0).
const (
	HeatmapRows = 6
	HeatmapCols = 7
)

// DashboardMetrics is the full aggregate computed from a trade list. It is a
// pure function of its input: recomputed wholesale on any change, never
// updated incrementally.
type DashboardMetrics struct {
	TotalPnL            float64      `json:"totalPnl"`
	TotalPnLPercent     float64      `json:"totalPnlPercent"`
	WinRate             float64      `json:"winRate"`
	TradeCount          int          `json:"tradeCount"`
	AvgTradeDuration    float64      `json:"avgTradeDuration"` // minutes
	LongShortRatio      float64      `json:"longShortRatio"`
	LargestWin          float64      `json:"largestWin"`
	LargestLoss         float64      `json:"largestLoss"`
	AvgWin              float64      `json:"avgWin"`
	AvgLoss             float64      `json:"avgLoss"` // positive magnitude
	TotalVolume         float64      `json:"totalVolume"`
	TotalFees           float64      `json:"totalFees"`
	SharpeRatio         float64      `json:"sharpeRatio"`
	SortinoRatio        float64      `json:"sortinoRatio"`
	ProfitFactor        ProfitFactor `json:"profitFactor"`
	Expectancy          float64      `json:"expectancy"`
	MaxDrawdown         float64      `json:"maxDrawdown"`
	MaxDrawdownPercent  float64      `json:"maxDrawdownPercent"`
	ConsecutiveWins     int          `json:"consecutiveWins"`
	ConsecutiveLosses   int          `json:"consecutiveLosses"`
	MaxConsecutiveWins  int          `json:"maxConsecutiveWins"`
	MaxConsecutiveLosses int         `json:"maxConsecutiveLosses"`

	ByInstrument map[Instrument]InstrumentMetrics `json:"byInstrument"`
	ByOrderType  map[OrderType]OrderTypeMetrics   `json:"byOrderType"`
	BySymbol     map[string]InstrumentMetrics     `json:"bySymbol"`

	EquityCurve   []EquityPoint   `json:"equityCurve"`
	DrawdownCurve []DrawdownPoint `json:"drawdownCurve"`
	DailyPnL      []DailyPnL      `json:"dailyPnl"`
	HeatmapData   [][]float64     `json:"heatmapData"`

	Rolling7d  RollingWindow `json:"rolling7d"`
	Rolling30d RollingWindow `json:"rolling30d"`
	Rolling90d RollingWindow `json:"rolling90d"`
}
