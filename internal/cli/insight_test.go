package cli

import (
	"math"
	"testing"

	"deriverse-cli/internal/analytics/insights"
	"deriverse-cli/internal/models"
)

func TestMetricValuePortfolioMetrics(t *testing.T) {
	ctx := insights.Context{
		Portfolio: models.PortfolioState{
			TotalEquity: 50000,
			UsedMargin:  12500,
			Positions: []models.Position{
				{Side: models.SideLong, Leverage: 5, CurrentPrice: 148.67, LiquidationPrice: 121.10},
			},
			GreeksAggregate: models.Greeks{Delta: 285.4, Gamma: 12.8, Theta: -45.2, Vega: 38.7},
		},
	}

	tests := []struct {
		name string
		want float64
	}{
		{"delta", 285.4},
		{"gamma", 12.8},
		{"theta", -45.2},
		{"vega", 38.7},
		{"marginUtilization", 25},
		{"liquidationProximity", (148.67 - 121.10) / 148.67 * 100},
	}
	for _, tt := range tests {
		if got := metricValue(tt.name, ctx); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("metricValue(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMetricValueDashboardMetrics(t *testing.T) {
	ctx := insights.Context{
		Metrics: models.DashboardMetrics{
			TotalPnL:           80,
			WinRate:            66.67,
			ProfitFactor:       models.ProfitFactor(2.6),
			Expectancy:         26.67,
			SharpeRatio:        1.2,
			SortinoRatio:       1.8,
			MaxDrawdown:        40,
			MaxDrawdownPercent: 0.08,
			AvgTradeDuration:   60,
			LongShortRatio:     2,
		},
	}

	tests := []struct {
		name string
		want float64
	}{
		{"totalPnl", 80},
		{"winRate", 66.67},
		{"profitFactor", 2.6},
		{"expectancy", 26.67},
		{"sharpeRatio", 1.2},
		{"sortinoRatio", 1.8},
		// maxDrawdown reports the percent figure, not the dollar one.
		{"maxDrawdown", 0.08},
		{"avgDuration", 60},
		{"longShortRatio", 2},
	}
	for _, tt := range tests {
		if got := metricValue(tt.name, ctx); got != tt.want {
			t.Errorf("metricValue(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMetricValueFundingPnL(t *testing.T) {
	ctx := insights.Context{
		Trades: []models.Trade{
			{Instrument: models.InstrumentPerpetual, Fees: models.TradeFees{Funding: 1.5}},
			{Instrument: models.InstrumentPerpetual, Fees: models.TradeFees{Funding: -0.5}},
			{Instrument: models.InstrumentSpot, Fees: models.TradeFees{Funding: 99}},
		},
	}
	// Positive funding fees cost money, so the insight value is the negated
	// sum over perpetual trades only.
	if got := metricValue("fundingPnl", ctx); got != -1 {
		t.Errorf("metricValue(fundingPnl) = %v, want -1", got)
	}
}
