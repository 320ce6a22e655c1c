package profile

import (
	"fmt"
	"testing"
	"time"

	"deriverse-cli/internal/analytics/metrics"
	"deriverse-cli/internal/models"
)

// history builds n trades with a fixed hold duration, spread one per hour
// from a fixed Monday.
func history(n int, hold time.Duration, opts ...func(int, *models.Trade)) []models.Trade {
	base := time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC)
	trades := make([]models.Trade, 0, n)
	for i := 0; i < n; i++ {
		open := base.Add(time.Duration(i) * time.Hour)
		t := models.Trade{
			ID:         fmt.Sprintf("t%d", i),
			OpenTime:   open,
			CloseTime:  open.Add(hold),
			Instrument: models.InstrumentPerpetual,
			Symbol:     "BTC-PERP",
			Side:       models.SideLong,
			EntryPrice: 100,
			ExitPrice:  101,
			Size:       1,
			Leverage:   5,
			PnL:        10,
			OrderType:  models.OrderTypeMarket,
		}
		for _, opt := range opts {
			opt(i, &t)
		}
		trades = append(trades, t)
	}
	return trades
}

func TestDetectStyle(t *testing.T) {
	testCases := []struct {
		name  string
		n     int
		hold  time.Duration
		style Style
	}{
		// 900 trades / 90 days = 10 per day with 10-minute holds.
		{"scalper", 900, 10 * time.Minute, StyleScalper},
		// Short holds but low frequency fall through to day trader.
		{"infrequent short holds", 90, 10 * time.Minute, StyleDayTrader},
		{"day trader", 90, 3 * time.Hour, StyleDayTrader},
		{"swing trader", 90, 48 * time.Hour, StyleSwingTrader},
		{"position trader", 30, 14 * 24 * time.Hour, StylePositionTrader},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			style, conf := detectStyle(history(tc.n, tc.hold))
			if style != tc.style {
				t.Errorf("style = %v, want %v", style, tc.style)
			}
			if conf < 0 || conf > 1 {
				t.Errorf("confidence = %v, out of [0,1]", conf)
			}
		})
	}
}

func TestDetectStyleEmpty(t *testing.T) {
	style, conf := detectStyle(nil)
	if style != StyleDayTrader || conf != 0 {
		t.Errorf("empty style = %v (%v), want day_trader with 0 confidence", style, conf)
	}
}

func TestScalperConfidence(t *testing.T) {
	// 900 trades over the 90-day window is 10/day: confidence min(10/10,1)=1.
	_, conf := detectStyle(history(900, 10*time.Minute))
	if conf != 1 {
		t.Errorf("scalper confidence = %v, want 1", conf)
	}
}

func TestBuildEvolution(t *testing.T) {
	trades := history(30, time.Hour)
	evo := buildEvolution(trades)

	if len(evo) != 3 {
		t.Fatalf("evolution periods = %d, want 3", len(evo))
	}
	wantPeriods := []string{"Early", "Middle", "Recent"}
	for i, p := range evo {
		if p.Period != wantPeriods[i] {
			t.Errorf("period[%d] = %s, want %s", i, p.Period, wantPeriods[i])
		}
		// All winners at +10 each over 10 trades per chunk.
		if p.WinRate != 100 || p.PnL != 100 {
			t.Errorf("period %s = %+v", p.Period, p)
		}
		if p.Style != StyleDayTrader {
			t.Errorf("period %s style = %v", p.Period, p.Style)
		}
	}
}

func TestBuildEvolutionTooFewTrades(t *testing.T) {
	if evo := buildEvolution(history(9, time.Hour)); evo != nil {
		t.Errorf("evolution with 9 trades = %v, want nil", evo)
	}
}

func now() time.Time { return time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }

func TestHoldsLosersPattern(t *testing.T) {
	// Losers held 4x longer than winners, with more than 5 losses.
	trades := history(20, 30*time.Minute, func(i int, t *models.Trade) {
		if i%2 == 1 {
			t.PnL = -10
			t.CloseTime = t.OpenTime.Add(2 * time.Hour)
		}
	})

	p := holdsLosers(trades, DefaultConfig())
	if !p.Detected {
		t.Error("holds-losers should trigger")
	}
	if p.Severity != SeverityWarning {
		t.Errorf("severity = %v, want warning", p.Severity)
	}

	c := cutsWinners(trades, DefaultConfig())
	if !c.Detected {
		t.Error("cutting winners short should trigger on the same asymmetry")
	}
}

func TestRevengeTradingPattern(t *testing.T) {
	revenge := models.EmotionRevenge
	trades := history(10, time.Hour, func(i int, t *models.Trade) {
		if i < 4 {
			t.Journal = &models.TradeJournal{Emotion: revenge}
		}
	})

	p := revengeTrading(trades, DefaultConfig())
	if !p.Detected {
		t.Error("4 revenge trades exceed the limit of 3")
	}

	calm := history(10, time.Hour)
	if revengeTrading(calm, DefaultConfig()).Detected {
		t.Error("unannotated trades must not trigger revenge trading")
	}
}

func TestConsistentSizingPattern(t *testing.T) {
	uniform := history(20, time.Hour)
	p := consistentSizing(uniform, DefaultConfig())
	if !p.Detected || p.Severity != SeverityPositive {
		t.Errorf("uniform sizing = %+v, want detected positive", p)
	}

	erratic := history(20, time.Hour, func(i int, t *models.Trade) {
		t.Size = float64(1 + i*3)
	})
	if consistentSizing(erratic, DefaultConfig()).Detected {
		t.Error("high size dispersion must not count as consistent")
	}
}

func TestStreakChasingPattern(t *testing.T) {
	// Size doubles on every trade after two wins: every index from 2 on is
	// an escalation, far above the limit of 5.
	trades := history(12, time.Hour, func(i int, t *models.Trade) {
		t.Size = float64(int(1) << i)
	})

	p := streakChasing(trades, DefaultConfig())
	if !p.Detected {
		t.Error("doubling after wins should trigger streak chasing")
	}
}

func TestGenerateAssemblesAllSections(t *testing.T) {
	trades := history(30, time.Hour)
	m := metrics.CalculateAt(trades, now())
	p := Generate(trades, m)

	if p.Style == "" || p.StyleDescription == "" {
		t.Error("style section incomplete")
	}
	if len(p.Patterns) != 7 {
		t.Errorf("pattern count = %d, want 7", len(p.Patterns))
	}
	if len(p.Evolution) != 3 {
		t.Errorf("evolution count = %d, want 3", len(p.Evolution))
	}
	if len(p.OptimalConditions) == 0 {
		t.Error("optimal conditions missing")
	}
	// 100% win rate trips both win-rate and profit-factor strengths.
	if len(p.Strengths) == 0 {
		t.Error("strengths missing for an all-winning history")
	}
	if len(p.Strengths) > 4 || len(p.Weaknesses) > 4 {
		t.Error("strengths/weaknesses must cap at 4")
	}
}

func TestBestSymbolTieBreak(t *testing.T) {
	m := models.DashboardMetrics{
		BySymbol: map[string]models.InstrumentMetrics{
			"BBB": {PnL: 100, TradeCount: 6},
			"AAA": {PnL: 100, TradeCount: 8},
			"CCC": {PnL: 50, TradeCount: 9},
		},
	}
	sym, ok := bestSymbol(m)
	if !ok || sym != "AAA" {
		t.Errorf("bestSymbol = %q (%v), want AAA", sym, ok)
	}
}
