package models

import (
	"math"
	"testing"
)

func TestLiquidationDistanceLong(t *testing.T) {
	p := Position{
		Side: SideLong, Leverage: 5,
		CurrentPrice: 148.67, LiquidationPrice: 121.10,
	}
	want := (148.67 - 121.10) / 148.67 * 100
	if got := p.LiquidationDistance(); math.Abs(got-want) > 1e-9 {
		t.Errorf("LiquidationDistance = %v, want %v", got, want)
	}
}

func TestLiquidationDistanceShort(t *testing.T) {
	p := Position{
		Side: SideShort, Leverage: 3,
		CurrentPrice: 97450, LiquidationPrice: 130933.33,
	}
	want := (130933.33 - 97450) / 97450 * 100
	if got := p.LiquidationDistance(); math.Abs(got-want) > 1e-9 {
		t.Errorf("LiquidationDistance = %v, want %v", got, want)
	}
}

func TestNearestLiquidation(t *testing.T) {
	state := PortfolioState{
		Positions: []Position{
			{Side: SideLong, Leverage: 5, CurrentPrice: 148.67, LiquidationPrice: 121.10},
			{Side: SideShort, Leverage: 3, CurrentPrice: 97450, LiquidationPrice: 130933.33},
			// Spot and zero-liquidation positions must not count.
			{Side: SideLong, Leverage: 1, CurrentPrice: 3450, LiquidationPrice: 0},
			{Side: SideLong, Leverage: 2, CurrentPrice: 10, LiquidationPrice: 0},
		},
	}

	distance, leveraged := state.NearestLiquidation()
	if leveraged != 2 {
		t.Errorf("leveraged = %d, want 2", leveraged)
	}
	// The long at 18.5% is closer than the short at 34.4%.
	want := (148.67 - 121.10) / 148.67 * 100
	if math.Abs(distance-want) > 1e-9 {
		t.Errorf("distance = %v, want %v", distance, want)
	}
}

func TestNearestLiquidationNoLeveragedPositions(t *testing.T) {
	state := PortfolioState{
		Positions: []Position{
			{Side: SideLong, Leverage: 1, CurrentPrice: 3450},
		},
	}
	distance, leveraged := state.NearestLiquidation()
	if distance != 100 || leveraged != 0 {
		t.Errorf("NearestLiquidation = %v, %d; want 100, 0", distance, leveraged)
	}
}
