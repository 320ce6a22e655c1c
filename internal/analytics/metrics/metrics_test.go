package metrics

import (
	"math"
	"testing"
	"time"

	"deriverse-cli/internal/models"
)

// fixedNow anchors rolling windows so tests don't depend on the wall clock.
// 2025-06-03 is a Tuesday.
var fixedNow = time.Date(2025, 6, 3, 23, 0, 0, 0, time.UTC)

func trade(id string, open, close time.Time, pnl, fees float64, opts ...func(*models.Trade)) models.Trade {
	t := models.Trade{
		ID:         id,
		OpenTime:   open,
		CloseTime:  close,
		Instrument: models.InstrumentPerpetual,
		Symbol:     "BTC-PERP",
		Side:       models.SideLong,
		EntryPrice: 100,
		ExitPrice:  110,
		Size:       1,
		Leverage:   5,
		PnL:        pnl,
		Fees:       models.TradeFees{Total: fees},
		OrderType:  models.OrderTypeMarket,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

func asShortSpot(t *models.Trade) {
	t.Instrument = models.InstrumentSpot
	t.Symbol = "ETH"
	t.Side = models.SideShort
	t.OrderType = models.OrderTypeLimit
}

// threeTrades is the worked scenario: two winners and one loser over two
// trading days.
//
//	Mon 10:00-11:00  +100 PnL, 4 fees  (BTC-PERP long market)
//	Mon 12:00-13:00   -50 PnL, 3 fees  (ETH spot short limit)
//	Tue 09:00-10:00   +30 PnL, 2 fees  (BTC-PERP long market)
func threeTrades() []models.Trade {
	mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	tue := mon.Add(24 * time.Hour)
	return []models.Trade{
		trade("t1", mon.Add(10*time.Hour), mon.Add(11*time.Hour), 100, 4),
		trade("t2", mon.Add(12*time.Hour), mon.Add(13*time.Hour), -50, 3, asShortSpot),
		trade("t3", tue.Add(9*time.Hour), tue.Add(10*time.Hour), 30, 2),
	}
}

func TestCalculateWorkedScenario(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	if m.TotalPnL != 80 {
		t.Errorf("TotalPnL = %v, want 80", m.TotalPnL)
	}
	if m.TotalPnLPercent != 0.16 {
		t.Errorf("TotalPnLPercent = %v, want 0.16", m.TotalPnLPercent)
	}
	if m.WinRate != 66.67 {
		t.Errorf("WinRate = %v, want 66.67", m.WinRate)
	}
	if m.TradeCount != 3 {
		t.Errorf("TradeCount = %v, want 3", m.TradeCount)
	}
	if float64(m.ProfitFactor) != 2.6 {
		t.Errorf("ProfitFactor = %v, want 2.6", m.ProfitFactor)
	}
	if m.Expectancy != 26.67 {
		t.Errorf("Expectancy = %v, want 26.67", m.Expectancy)
	}
	if m.AvgWin != 65 || m.AvgLoss != 50 {
		t.Errorf("AvgWin/AvgLoss = %v/%v, want 65/50", m.AvgWin, m.AvgLoss)
	}
	if m.LargestWin != 100 || m.LargestLoss != -50 {
		t.Errorf("LargestWin/LargestLoss = %v/%v, want 100/-50", m.LargestWin, m.LargestLoss)
	}
	if m.LongShortRatio != 2 {
		t.Errorf("LongShortRatio = %v, want 2", m.LongShortRatio)
	}
	if m.AvgTradeDuration != 60 {
		t.Errorf("AvgTradeDuration = %v, want 60", m.AvgTradeDuration)
	}
	if m.TotalFees != 9 {
		t.Errorf("TotalFees = %v, want 9", m.TotalFees)
	}
	if m.ConsecutiveWins != 1 || m.ConsecutiveLosses != 0 {
		t.Errorf("current streaks = %dW/%dL, want 1W/0L", m.ConsecutiveWins, m.ConsecutiveLosses)
	}
	if m.MaxConsecutiveWins != 1 || m.MaxConsecutiveLosses != 1 {
		t.Errorf("max streaks = %dW/%dL, want 1W/1L", m.MaxConsecutiveWins, m.MaxConsecutiveLosses)
	}
}

func TestEquityCurveFeeAdjusted(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	// Day PnL on the equity curve is fee-adjusted: Monday 100-4-50-3 = 43,
	// Tuesday 30-2 = 28. Headline TotalPnL stays raw.
	if len(m.EquityCurve) != 2 {
		t.Fatalf("EquityCurve has %d points, want 2", len(m.EquityCurve))
	}
	if m.EquityCurve[0].Date != "2025-06-02" || m.EquityCurve[1].Date != "2025-06-03" {
		t.Errorf("curve dates = %s, %s", m.EquityCurve[0].Date, m.EquityCurve[1].Date)
	}
	if m.EquityCurve[0].Equity != 50043 {
		t.Errorf("day-1 equity = %v, want 50043", m.EquityCurve[0].Equity)
	}
	if m.EquityCurve[1].Equity != 50071 {
		t.Errorf("day-2 equity = %v, want 50071", m.EquityCurve[1].Equity)
	}

	// Monotonically rising equity never draws down.
	for _, d := range m.DrawdownCurve {
		if d.Drawdown != 0 || d.DrawdownPercent != 0 {
			t.Errorf("drawdown on %s = %v (%v%%), want 0", d.Date, d.Drawdown, d.DrawdownPercent)
		}
	}

	// DailyPnL reports raw PnL.
	if m.DailyPnL[0].PnL != 50 || m.DailyPnL[1].PnL != 30 {
		t.Errorf("DailyPnL = %v/%v, want 50/30", m.DailyPnL[0].PnL, m.DailyPnL[1].PnL)
	}
}

func TestRatiosWorkedScenario(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	if m.SharpeRatio != 42.88 {
		t.Errorf("SharpeRatio = %v, want 42.88", m.SharpeRatio)
	}
	// Both daily returns beat the risk-free rate, so the no-downside cap
	// applies.
	if m.SortinoRatio != 3 {
		t.Errorf("SortinoRatio = %v, want 3 (no-downside cap)", m.SortinoRatio)
	}
}

func TestBreakdowns(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	perp, ok := m.ByInstrument[models.InstrumentPerpetual]
	if !ok {
		t.Fatal("missing perpetual bucket")
	}
	if perp.TradeCount != 2 || perp.PnL != 130 || perp.WinRate != 100 {
		t.Errorf("perp bucket = %+v", perp)
	}

	if _, ok := m.ByInstrument[models.InstrumentOptions]; ok {
		t.Error("empty options bucket should be absent")
	}

	eth, ok := m.BySymbol["ETH"]
	if !ok {
		t.Fatal("missing ETH bucket")
	}
	if eth.TradeCount != 1 || eth.PnL != -50 || eth.WinRate != 0 {
		t.Errorf("ETH bucket = %+v", eth)
	}

	limit, ok := m.ByOrderType[models.OrderTypeLimit]
	if !ok {
		t.Fatal("missing limit bucket")
	}
	if limit.TradeCount != 1 || limit.PnL != -50 {
		t.Errorf("limit bucket = %+v", limit)
	}
}

func TestHeatmapPlacement(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	// Keyed by open time: Monday 10:00 is block 2 column 0, Monday 12:00 is
	// block 3 column 0, Tuesday 09:00 is block 2 column 1.
	if got := m.HeatmapData[2][0]; got != 100 {
		t.Errorf("heatmap[2][0] = %v, want 100", got)
	}
	if got := m.HeatmapData[3][0]; got != -50 {
		t.Errorf("heatmap[3][0] = %v, want -50", got)
	}
	if got := m.HeatmapData[2][1]; got != 30 {
		t.Errorf("heatmap[2][1] = %v, want 30", got)
	}
}

func TestWeekdayColumnRemap(t *testing.T) {
	monday := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC)
	if WeekdayColumn(monday) != 0 {
		t.Errorf("Monday column = %d, want 0", WeekdayColumn(monday))
	}
	if WeekdayColumn(sunday) != 6 {
		t.Errorf("Sunday column = %d, want 6", WeekdayColumn(sunday))
	}
}

func TestRollingWindows(t *testing.T) {
	m := CalculateAt(threeTrades(), fixedNow)

	if m.Rolling7d.PnL != 80 || m.Rolling7d.WinRate != 66.67 {
		t.Errorf("Rolling7d = %+v", m.Rolling7d)
	}

	// With now pushed 30 days out, the 7-day window is empty and must be
	// all zeros.
	later := CalculateAt(threeTrades(), fixedNow.Add(30*24*time.Hour))
	if later.Rolling7d != (models.RollingWindow{}) {
		t.Errorf("empty Rolling7d = %+v, want zero", later.Rolling7d)
	}
	if later.Rolling90d.PnL != 80 {
		t.Errorf("Rolling90d.PnL = %v, want 80", later.Rolling90d.PnL)
	}
}

func TestSingleLoser(t *testing.T) {
	mon := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	trades := []models.Trade{trade("t1", mon, mon.Add(time.Hour), -20, 1)}
	m := CalculateAt(trades, fixedNow)

	if float64(m.ProfitFactor) != 0 {
		t.Errorf("ProfitFactor = %v, want 0", m.ProfitFactor)
	}
	if m.Expectancy != -20 {
		t.Errorf("Expectancy = %v, want -20", m.Expectancy)
	}
	if m.WinRate != 0 {
		t.Errorf("WinRate = %v, want 0", m.WinRate)
	}
	// A single trading day cannot support either ratio.
	if m.SharpeRatio != 0 || m.SortinoRatio != 0 {
		t.Errorf("ratios = %v/%v, want 0/0", m.SharpeRatio, m.SortinoRatio)
	}
}

func TestProfitFactorInfinite(t *testing.T) {
	mon := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	trades := []models.Trade{trade("t1", mon, mon.Add(time.Hour), 75, 1)}
	m := CalculateAt(trades, fixedNow)

	if !m.ProfitFactor.Infinite() {
		t.Errorf("ProfitFactor = %v, want +Inf", m.ProfitFactor)
	}
	if !math.IsInf(float64(m.ProfitFactor), 1) {
		t.Error("expected positive infinity")
	}
}

func TestEmptyInput(t *testing.T) {
	m := CalculateAt(nil, fixedNow)

	if m.TradeCount != 0 || m.TotalPnL != 0 {
		t.Errorf("empty metrics = %+v", m)
	}
	if m.ByInstrument == nil || m.BySymbol == nil || m.ByOrderType == nil {
		t.Error("breakdown maps must be empty, not nil")
	}
	if m.EquityCurve == nil || m.DrawdownCurve == nil || m.DailyPnL == nil {
		t.Error("series must be empty, not nil")
	}
	if len(m.HeatmapData) != models.HeatmapRows {
		t.Fatalf("heatmap rows = %d, want %d", len(m.HeatmapData), models.HeatmapRows)
	}
	for _, row := range m.HeatmapData {
		if len(row) != models.HeatmapCols {
			t.Fatalf("heatmap cols = %d, want %d", len(row), models.HeatmapCols)
		}
		for _, v := range row {
			if v != 0 {
				t.Error("empty heatmap must be all zeros")
			}
		}
	}
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	trades := threeTrades()
	before := make([]models.Trade, len(trades))
	copy(before, trades)

	_ = CalculateAt(trades, fixedNow)

	for i := range trades {
		if trades[i].ID != before[i].ID || trades[i].PnL != before[i].PnL {
			t.Fatalf("trade %d mutated", i)
		}
	}
}

func TestCalculateIdempotent(t *testing.T) {
	a := CalculateAt(threeTrades(), fixedNow)
	b := CalculateAt(threeTrades(), fixedNow)

	if a.TotalPnL != b.TotalPnL || a.SharpeRatio != b.SharpeRatio || a.WinRate != b.WinRate {
		t.Error("repeated calculation over identical input diverged")
	}
}
