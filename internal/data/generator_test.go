package data

import (
	"sort"
	"testing"
	"time"

	"deriverse-cli/internal/models"
)

var anchor = time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)

func TestGenerateDeterministic(t *testing.T) {
	a := GenerateTradesAt(42, anchor)
	b := GenerateTradesAt(42, anchor)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].PnL != b[i].PnL || !a[i].OpenTime.Equal(b[i].OpenTime) {
			t.Fatalf("trade %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateSeedChangesOutput(t *testing.T) {
	a := GenerateTradesAt(1, anchor)
	b := GenerateTradesAt(2, anchor)

	if len(a) == len(b) {
		same := true
		for i := range a {
			if a[i].PnL != b[i].PnL {
				same = false
				break
			}
		}
		if same {
			t.Fatal("different seeds produced identical histories")
		}
	}
}

func TestGenerateCountRange(t *testing.T) {
	for _, seed := range []int64{1, 42, 99} {
		trades := GenerateTradesAt(seed, anchor)
		if len(trades) < 580 || len(trades) > 720 {
			t.Errorf("seed %d: got %d trades, want 580..720", seed, len(trades))
		}
	}
}

func TestGenerateSortedByOpenTime(t *testing.T) {
	trades := GenerateTradesAt(42, anchor)
	sorted := sort.SliceIsSorted(trades, func(i, j int) bool {
		return trades[i].OpenTime.Before(trades[j].OpenTime)
	})
	if !sorted {
		t.Fatal("trades are not sorted by open time")
	}
}

func TestGenerateWindowBounds(t *testing.T) {
	trades := GenerateTradesAt(42, anchor)
	start := anchor.Add(-90 * 24 * time.Hour)
	end := anchor.Add(2 * time.Hour)

	for _, tr := range trades {
		if tr.OpenTime.Before(start) || tr.OpenTime.After(end) {
			t.Fatalf("trade %s opened at %s, outside the 90 day window", tr.ID, tr.OpenTime)
		}
		if !tr.CloseTime.After(tr.OpenTime) {
			t.Fatalf("trade %s closes at or before open", tr.ID)
		}
	}
}

func TestGenerateTradeShape(t *testing.T) {
	trades := GenerateTradesAt(42, anchor)

	journaled := 0
	for _, tr := range trades {
		if tr.ID == "" {
			t.Fatal("empty trade ID")
		}
		if tr.Size <= 0 {
			t.Fatalf("trade %s has non positive size %v", tr.ID, tr.Size)
		}
		if tr.Fees.Total < 0 {
			t.Fatalf("trade %s has negative total fees", tr.ID)
		}
		if tr.Leverage < 1 {
			t.Fatalf("trade %s has leverage %v", tr.ID, tr.Leverage)
		}
		hasOptions := tr.Options != nil
		if hasOptions != (tr.Instrument == models.InstrumentOptions) {
			t.Fatalf("trade %s: options data mismatch for instrument %s", tr.ID, tr.Instrument)
		}
		if tr.Journal != nil {
			journaled++
		}
	}

	// Roughly 30% of trades carry a journal entry.
	frac := float64(journaled) / float64(len(trades))
	if frac < 0.15 || frac > 0.45 {
		t.Errorf("journaled fraction %.2f outside expected band", frac)
	}
}

func TestGenerateLeverageOnlyOnDerivatives(t *testing.T) {
	trades := GenerateTradesAt(42, anchor)
	for _, tr := range trades {
		switch tr.Instrument {
		case models.InstrumentSpot, models.InstrumentOptions:
			if tr.Leverage != 1 {
				t.Fatalf("%s trade %s has leverage %v", tr.Instrument, tr.ID, tr.Leverage)
			}
		}
	}
}

func TestGeneratePortfolioConsistent(t *testing.T) {
	p := GeneratePortfolio()

	if len(p.Positions) == 0 {
		t.Fatal("no open positions")
	}

	var unrealized, margin float64
	for _, pos := range p.Positions {
		unrealized += pos.UnrealizedPnL
		margin += pos.MarginUsed
	}
	if p.UnrealizedPnL != unrealized {
		t.Errorf("UnrealizedPnL = %v, want sum of positions %v", p.UnrealizedPnL, unrealized)
	}
	if p.UsedMargin != margin {
		t.Errorf("UsedMargin = %v, want %v", p.UsedMargin, margin)
	}
	if got := p.TotalEquity - p.UsedMargin; p.AvailableMargin != got {
		t.Errorf("AvailableMargin = %v, want %v", p.AvailableMargin, got)
	}
	if p.MarginUtilization() <= 0 || p.MarginUtilization() >= 100 {
		t.Errorf("MarginUtilization = %v, want within (0, 100)", p.MarginUtilization())
	}
}
