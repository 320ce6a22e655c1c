package models

// Position is an open position snapshot, supplied by the data source. The
// analytics engine treats it as read-only input.
type Position struct {
	Instrument       Instrument `json:"instrument"`
	Symbol           string     `json:"symbol"`
	Side             Side       `json:"side"`
	Size             float64    `json:"size"`
	EntryPrice       float64    `json:"entryPrice"`
	CurrentPrice     float64    `json:"currentPrice"`
	UnrealizedPnL    float64    `json:"unrealizedPnl"`
	Leverage         float64    `json:"leverage"`
	LiquidationPrice float64    `json:"liquidationPrice"`
	MarginUsed       float64    `json:"marginUsed"`
}

// PortfolioState is the open-position snapshot, independent of trade history.
type PortfolioState struct {
	TotalEquity     float64    `json:"totalEquity"`
	AvailableMargin float64    `json:"availableMargin"`
	UsedMargin      float64    `json:"usedMargin"`
	UnrealizedPnL   float64    `json:"unrealizedPnl"`
	Positions       []Position `json:"positions"`
	GreeksAggregate Greeks     `json:"greeksAggregate"`
}

// MarginUtilization returns used margin as a percentage of total equity.
func (p PortfolioState) MarginUtilization() float64 {
	if p.TotalEquity <= 0 {
		return 0
	}
	return p.UsedMargin / p.TotalEquity * 100
}

// LiquidationDistance returns the percent gap between the current price and
// the liquidation price. Longs liquidate below the market, shorts above.
func (p Position) LiquidationDistance() float64 {
	if p.CurrentPrice <= 0 {
		return 0
	}
	if p.Side == SideLong {
		return (p.CurrentPrice - p.LiquidationPrice) / p.CurrentPrice * 100
	}
	return (p.LiquidationPrice - p.CurrentPrice) / p.CurrentPrice * 100
}

// NearestLiquidation returns the smallest liquidation distance across open
// leveraged positions, plus how many such positions are open. With no
// position at risk the distance is 100.
func (p PortfolioState) NearestLiquidation() (distance float64, leveraged int) {
	distance = 100
	for _, pos := range p.Positions {
		if pos.Leverage <= 1 || pos.LiquidationPrice <= 0 {
			continue
		}
		leveraged++
		if d := pos.LiquidationDistance(); d < distance {
			distance = d
		}
	}
	return distance, leveraged
}
