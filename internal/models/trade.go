// Package models provides domain models for the trading analytics application.
package models

import "time"

// Instrument represents the instrument class of a trade.
type Instrument string

const (
	InstrumentSpot      Instrument = "spot"
	InstrumentPerpetual Instrument = "perpetual"
	InstrumentOptions   Instrument = "options"
	InstrumentFutures   Instrument = "futures"
)

// Instruments lists all instrument classes in display order.
var Instruments = []Instrument{InstrumentSpot, InstrumentPerpetual, InstrumentOptions, InstrumentFutures}

// Side represents the direction of a trade.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// OrderType represents the order type used to enter a trade.
type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop-limit"
)

// OrderTypes lists all order types in display order.
var OrderTypes = []OrderType{OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit}

// Emotion is a journal tag describing the trader's state of mind.
type Emotion string

const (
	EmotionDisciplined Emotion = "disciplined"
	EmotionFOMO        Emotion = "fomo"
	EmotionRevenge     Emotion = "revenge"
	EmotionFearful     Emotion = "fearful"
	EmotionGreedy      Emotion = "greedy"
	EmotionNeutral     Emotion = "neutral"
)

// Setup is a journal tag describing the trade setup.
type Setup string

const (
	SetupBreakout      Setup = "breakout"
	SetupMeanReversion Setup = "mean-reversion"
	SetupTrend         Setup = "trend"
	SetupRange         Setup = "range"
	SetupNews          Setup = "news"
	SetupOther         Setup = "other"
)

// Grade is a self-assigned execution grade.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// TradeFees breaks down the cost of a trade. Funding may be negative (a
// rebate); Total is Entry + Exit + |Funding| by convention.
type TradeFees struct {
	Entry   float64 `json:"entry"`
	Exit    float64 `json:"exit"`
	Funding float64 `json:"funding"`
	Total   float64 `json:"total"`
}

// TradeJournal is a user-supplied annotation on a trade.
type TradeJournal struct {
	Emotion       Emotion `json:"emotion"`
	Setup         Setup   `json:"setup"`
	Grade         Grade   `json:"grade"`
	PreTradeNote  string  `json:"preTradeNote"`
	PostTradeNote string  `json:"postTradeNote"`
}

// Greeks holds option sensitivities.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
}

// OptionType distinguishes calls from puts.
type OptionType string

const (
	OptionCall OptionType = "call"
	OptionPut  OptionType = "put"
)

// OptionsData is present only on options trades.
type OptionsData struct {
	Type   OptionType `json:"type"`
	Strike float64    `json:"strike"`
	Expiry time.Time  `json:"expiry"`
	IV     float64    `json:"iv"`
	Greeks Greeks     `json:"greeks"`
}

// Trade is an immutable record of one closed position. A Trade value is never
// mutated after creation; journal edits produce a new Trade with a merged
// journal (see the journal package).
type Trade struct {
	ID         string        `json:"id"`
	OpenTime   time.Time     `json:"timestamp"`
	CloseTime  time.Time     `json:"closeTimestamp"`
	Instrument Instrument    `json:"instrument"`
	Symbol     string        `json:"symbol"`
	Side       Side          `json:"side"`
	EntryPrice float64       `json:"entryPrice"`
	ExitPrice  float64       `json:"exitPrice"`
	Size       float64       `json:"size"`
	Leverage   float64       `json:"leverage"`
	PnL        float64       `json:"pnl"`
	Fees       TradeFees     `json:"fees"`
	OrderType  OrderType     `json:"orderType"`
	Journal    *TradeJournal `json:"journal,omitempty"`
	Options    *OptionsData  `json:"optionsData,omitempty"`
}

// Duration returns how long the position was held.
func (t Trade) Duration() time.Duration {
	return t.CloseTime.Sub(t.OpenTime)
}

// DurationMinutes returns the hold duration in minutes.
func (t Trade) DurationMinutes() float64 {
	return t.CloseTime.Sub(t.OpenTime).Minutes()
}

// Notional returns the absolute entry notional value.
func (t Trade) Notional() float64 {
	n := t.Size * t.EntryPrice
	if n < 0 {
		return -n
	}
	return n
}

// Win reports whether the trade closed in profit. A zero PnL counts as a
// loss everywhere in the engine.
func (t Trade) Win() bool {
	return t.PnL > 0
}
