package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"deriverse-cli/internal/models"
)

// tradeSliceGen generates chronologically sorted trade histories with
// realistic PnL and fee magnitudes.
func tradeSliceGen(maxLen int) gopter.Gen {
	return gen.SliceOfN(maxLen, gen.Float64Range(-500, 500)).Map(func(pnls []float64) []models.Trade {
		base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		trades := make([]models.Trade, 0, len(pnls))
		for i, pnl := range pnls {
			open := base.Add(time.Duration(i) * 7 * time.Hour)
			side := models.SideLong
			if i%3 == 0 {
				side = models.SideShort
			}
			trades = append(trades, models.Trade{
				ID:         string(rune('a' + i%26)),
				OpenTime:   open,
				CloseTime:  open.Add(45 * time.Minute),
				Instrument: models.InstrumentPerpetual,
				Symbol:     "BTC-PERP",
				Side:       side,
				EntryPrice: 100,
				ExitPrice:  101,
				Size:       2,
				Leverage:   5,
				PnL:        pnl,
				Fees:       models.TradeFees{Total: math.Abs(pnl) * 0.01},
				OrderType:  models.OrderTypeMarket,
			})
		}
		return trades
	})
}

func TestMetricsProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	properties.Property("win rate stays within [0, 100]", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			return m.WinRate >= 0 && m.WinRate <= 100
		},
		tradeSliceGen(40),
	))

	properties.Property("total PnL equals the sum of trade PnL", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			var sum float64
			for _, tr := range trades {
				sum += tr.PnL
			}
			return math.Abs(m.TotalPnL-math.Round(sum*100)/100) < 1e-9
		},
		tradeSliceGen(40),
	))

	properties.Property("drawdown is never negative", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			for _, d := range m.DrawdownCurve {
				if d.Drawdown < 0 || d.DrawdownPercent < 0 {
					return false
				}
			}
			return true
		},
		tradeSliceGen(40),
	))

	properties.Property("equity advances by the fee-adjusted day PnL", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			prev := InitialEquity
			for _, pt := range m.EquityCurve {
				expected := math.Round((prev+pt.PnL)*100) / 100
				if math.Abs(pt.Equity-expected) > 0.02 {
					return false
				}
				prev = pt.Equity
			}
			return true
		},
		tradeSliceGen(40),
	))

	properties.Property("max streaks dominate current streaks", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			return m.MaxConsecutiveWins >= m.ConsecutiveWins &&
				m.MaxConsecutiveLosses >= m.ConsecutiveLosses
		},
		tradeSliceGen(40),
	))

	properties.Property("instrument buckets partition the trade count", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			total := 0
			for _, b := range m.ByInstrument {
				total += b.TradeCount
			}
			return total == len(trades)
		},
		tradeSliceGen(40),
	))

	properties.Property("heatmap cell sum matches raw total PnL", prop.ForAll(
		func(trades []models.Trade) bool {
			m := CalculateAt(trades, now)
			var sum float64
			for _, row := range m.HeatmapData {
				for _, v := range row {
					sum += v
				}
			}
			// Per-cell rounding accumulates at most half a cent per cell.
			return math.Abs(sum-m.TotalPnL) < 0.01*float64(models.HeatmapRows*models.HeatmapCols)
		},
		tradeSliceGen(40),
	))

	properties.Property("calculation is deterministic", prop.ForAll(
		func(trades []models.Trade) bool {
			a := CalculateAt(trades, now)
			b := CalculateAt(trades, now)
			return a.TotalPnL == b.TotalPnL &&
				a.SharpeRatio == b.SharpeRatio &&
				a.SortinoRatio == b.SortinoRatio &&
				a.MaxDrawdownPercent == b.MaxDrawdownPercent
		},
		tradeSliceGen(40),
	))

	properties.TestingRun(t)
}
