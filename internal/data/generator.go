// Package data synthesizes realistic trade histories and portfolio snapshots.
// The generator is a stand-in for a live data feed: the analytics engine
// never assumes anything about it beyond the Trade schema. Output is fully
// deterministic for a given seed and anchor time.
package data

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"deriverse-cli/internal/models"
)

// DefaultSeed is the seed used when none is supplied.
const DefaultSeed = 42

var symbolsByInstrument = map[models.Instrument][]string{
	models.InstrumentSpot:      {"SOL/USDC", "BTC/USDC", "ETH/USDC", "BONK/USDC", "WIF/USDC", "JUP/USDC"},
	models.InstrumentPerpetual: {"SOL-PERP", "BTC-PERP", "ETH-PERP", "BONK-PERP"},
	models.InstrumentOptions:   {"SOL-CALL", "SOL-PUT", "BTC-CALL", "ETH-CALL", "ETH-PUT"},
	models.InstrumentFutures:   {"SOL-FUT-0326", "BTC-FUT-0326", "ETH-FUT-0326"},
}

var basePrices = map[string]float64{
	"SOL/USDC": 148, "BTC/USDC": 97500, "ETH/USDC": 3450,
	"BONK/USDC": 0.000024, "WIF/USDC": 1.85, "JUP/USDC": 0.92,
	"SOL-PERP": 148, "BTC-PERP": 97500, "ETH-PERP": 3450, "BONK-PERP": 0.000024,
	"SOL-CALL": 148, "SOL-PUT": 148, "BTC-CALL": 97500, "ETH-CALL": 3450, "ETH-PUT": 3450,
	"SOL-FUT-0326": 150, "BTC-FUT-0326": 98200, "ETH-FUT-0326": 3500,
}

var emotions = []models.Emotion{
	models.EmotionDisciplined, models.EmotionFOMO, models.EmotionRevenge,
	models.EmotionFearful, models.EmotionGreedy, models.EmotionNeutral,
}

var setups = []models.Setup{
	models.SetupBreakout, models.SetupMeanReversion, models.SetupTrend,
	models.SetupRange, models.SetupNews, models.SetupOther,
}

var grades = []models.Grade{models.GradeA, models.GradeB, models.GradeC, models.GradeD}

var preTradeNotes = []string{
	"Strong trend forming, waiting for pullback entry",
	"Breaking above key resistance with volume",
	"Mean reversion setup at support",
	"News catalyst expected, positioning early",
	"Funding rate divergence opportunity",
	"Range bound, playing the levels",
	"Following institutional flow signals",
	"Momentum building after consolidation",
}

var postTradeNotes = []string{
	"Executed as planned, good entry timing",
	"Should have waited for better entry",
	"Took profit too early, left money on the table",
	"Stop was too tight, got shaken out",
	"Perfect execution on the setup",
	"Oversize position, need to manage risk better",
	"Market moved against thesis, cut quickly",
	"Held through noise, thesis played out",
}

// GenerateTrades produces a 90-day trade history ending at time.Now.
func GenerateTrades(seed int64) []models.Trade {
	return GenerateTradesAt(seed, time.Now())
}

// GenerateTradesAt produces a 90-day trade history ending at the given anchor
// time. Trades cluster in Asian and US sessions, include two or three
// multi-day drawdown regimes with depressed win probability, carry
// Pareto-tailed PnL, and close sorted by open time.
func GenerateTradesAt(seed int64, now time.Time) []models.Trade {
	r := newRNG(seed)
	numTrades := r.intn(580, 720)
	start := now.Add(-90 * 24 * time.Hour)

	type regime struct {
		from, to time.Time
	}
	regimes := make([]regime, 0, 3)
	for _, spec := range []struct{ lo, hi, durLo, durHi int }{
		{15, 25, 3, 6},
		{50, 60, 4, 7},
		{72, 80, 2, 4},
	} {
		from := start.Add(time.Duration(r.intn(spec.lo, spec.hi)) * 24 * time.Hour)
		to := from.Add(time.Duration(r.intn(spec.durLo, spec.durHi)) * 24 * time.Hour)
		regimes = append(regimes, regime{from, to})
	}

	trades := make([]models.Trade, 0, numTrades)
	for i := 0; i < numTrades; i++ {
		day := start.Add(time.Duration(r.rangeF(0, 89) * 24 * float64(time.Hour)))

		var hour float64
		switch roll := r.next(); {
		case roll < 0.35:
			hour = r.rangeF(0, 8) // Asian session
		case roll < 0.8:
			hour = r.rangeF(13, 21) // US session
		default:
			hour = r.rangeF(0, 24)
		}
		openTime := day.Add(time.Duration(hour*float64(time.Hour)) + time.Duration(r.rangeF(0, 3600))*time.Second)

		var instrument models.Instrument
		switch roll := r.next(); {
		case roll < 0.4:
			instrument = models.InstrumentSpot
		case roll < 0.75:
			instrument = models.InstrumentPerpetual
		case roll < 0.9:
			instrument = models.InstrumentOptions
		default:
			instrument = models.InstrumentFutures
		}

		symbol := r.pick(symbolsByInstrument[instrument])
		side := models.SideShort
		if r.next() < 0.55 {
			side = models.SideLong
		}

		leverage := 1.0
		if instrument == models.InstrumentPerpetual || instrument == models.InstrumentFutures {
			switch roll := r.next(); {
			case roll < 0.8:
				leverage = r.rangeF(2, 5)
			case roll < 0.95:
				leverage = r.rangeF(5, 8)
			default:
				leverage = r.rangeF(8, 10)
			}
			leverage = math.Round(leverage*10) / 10
		}

		basePrice := basePrices[symbol]
		volatility := r.rangeF(0.002, 0.03)
		entryPrice := basePrice * (1 + r.gaussian()*0.05)

		inDrawdown := false
		for _, reg := range regimes {
			if !openTime.Before(reg.from) && !openTime.After(reg.to) {
				inDrawdown = true
				break
			}
		}

		winProb := 0.62
		if inDrawdown {
			winProb = 0.35
		}
		isWin := r.next() < winProb

		size := tradeSize(r, symbol)
		notional := size * entryPrice
		magnitude := r.pareto(2.5) * basePrice * volatility
		pnlBase := math.Min(magnitude*size*leverage, notional*leverage*0.15)

		pnl := pnlBase
		if !isWin {
			pnl = -pnlBase * r.rangeF(0.7, 1.3)
		}

		priceChange := pnl / (size * leverage)
		exitPrice := entryPrice + priceChange
		if side == models.SideShort {
			exitPrice = entryPrice - priceChange
		}

		var duration time.Duration
		switch instrument {
		case models.InstrumentSpot:
			duration = time.Duration(r.rangeF(2, 48) * float64(time.Hour))
		case models.InstrumentPerpetual:
			duration = time.Duration(r.rangeF(5, 480) * float64(time.Minute))
		case models.InstrumentOptions:
			duration = time.Duration(r.rangeF(1, 30) * 24 * float64(time.Hour))
		default:
			duration = time.Duration(r.rangeF(4, 168) * float64(time.Hour))
		}
		closeTime := openTime.Add(duration)

		orderType := models.OrderTypes[r.intn(0, len(models.OrderTypes)-1)]
		isMaker := orderType == models.OrderTypeLimit
		entryFeeRate := r.rangeF(0.0005, 0.001)
		exitFeeRate := r.rangeF(0.0005, 0.001)
		if isMaker {
			entryFeeRate = r.rangeF(0.0002, 0.0005)
			exitFeeRate = r.rangeF(0.0002, 0.0005)
		}
		entryFee := notional * entryFeeRate
		exitFee := math.Abs(exitPrice*size) * exitFeeRate
		fundingFee := 0.0
		if instrument == models.InstrumentPerpetual {
			fundingPeriods := float64(int(duration / (8 * time.Hour)))
			fundingFee = fundingPeriods * notional * r.rangeF(-0.0001, 0.0003)
		}

		var journal *models.TradeJournal
		if r.next() < 0.3 {
			journal = generateJournal(r, isWin, inDrawdown)
		}

		var options *models.OptionsData
		if instrument == models.InstrumentOptions {
			options = generateOptions(r, symbol, openTime)
		}

		trades = append(trades, models.Trade{
			ID:         fmt.Sprintf("trade-%04d", i),
			OpenTime:   openTime,
			CloseTime:  closeTime,
			Instrument: instrument,
			Symbol:     symbol,
			Side:       side,
			EntryPrice: math.Round(entryPrice*10000) / 10000,
			ExitPrice:  math.Round(exitPrice*10000) / 10000,
			Size:       math.Round(size*10000) / 10000,
			Leverage:   leverage,
			PnL:        math.Round(pnl*100) / 100,
			Fees: models.TradeFees{
				Entry:   math.Round(entryFee*100) / 100,
				Exit:    math.Round(exitFee*100) / 100,
				Funding: math.Round(fundingFee*100) / 100,
				Total:   math.Round((entryFee+exitFee+math.Abs(fundingFee))*100) / 100,
			},
			OrderType: orderType,
			Journal:   journal,
			Options:   options,
		})
	}

	sort.Slice(trades, func(i, j int) bool { return trades[i].OpenTime.Before(trades[j].OpenTime) })
	return trades
}

func tradeSize(r *rng, symbol string) float64 {
	base := basePrices[symbol]
	switch {
	case base > 10000:
		return r.rangeF(0.01, 0.5)
	case base > 100:
		return r.rangeF(1, 50)
	case base > 1:
		return r.rangeF(10, 500)
	case base > 0.001:
		return r.rangeF(100000, 5000000)
	default:
		return r.rangeF(1000000, 50000000)
	}
}

func generateJournal(r *rng, isWin, inDrawdown bool) *models.TradeJournal {
	emotionWeights := []float64{0.4, 0.1, 0.05, 0.1, 0.1, 0.25}
	if inDrawdown {
		emotionWeights = []float64{0.1, 0.25, 0.3, 0.2, 0.1, 0.05}
	}
	roll := r.next()
	emotionIdx := 0
	cum := 0.0
	for e, w := range emotionWeights {
		cum += w
		if roll <= cum {
			emotionIdx = e
			break
		}
	}

	var gradeIdx int
	if isWin {
		switch {
		case r.next() < 0.6:
			gradeIdx = 0
		case r.next() < 0.7:
			gradeIdx = 1
		default:
			gradeIdx = 2
		}
	} else {
		switch {
		case r.next() < 0.3:
			gradeIdx = 1
		case r.next() < 0.6:
			gradeIdx = 2
		default:
			gradeIdx = 3
		}
	}

	return &models.TradeJournal{
		Emotion:       emotions[emotionIdx],
		Setup:         setups[r.intn(0, len(setups)-1)],
		Grade:         grades[gradeIdx],
		PreTradeNote:  r.pick(preTradeNotes),
		PostTradeNote: r.pick(postTradeNotes),
	}
}

func generateOptions(r *rng, symbol string, openTime time.Time) *models.OptionsData {
	base := basePrices[symbol]
	isCall := strings.Contains(symbol, "CALL")
	optType := models.OptionPut
	delta := r.rangeF(-0.8, -0.2)
	if isCall {
		optType = models.OptionCall
		delta = r.rangeF(0.2, 0.8)
	}
	strike := math.Round((base+r.rangeF(-0.1, 0.1)*base)*100) / 100

	return &models.OptionsData{
		Type:   optType,
		Strike: strike,
		Expiry: openTime.Add(time.Duration(r.intn(7, 45)) * 24 * time.Hour),
		IV:     r.rangeF(0.4, 1.2),
		Greeks: models.Greeks{
			Delta: math.Round(delta*1000) / 1000,
			Gamma: math.Round(r.rangeF(0.001, 0.05)*10000) / 10000,
			Theta: math.Round(-r.rangeF(0.5, 5)*100) / 100,
			Vega:  math.Round(r.rangeF(0.1, 2)*100) / 100,
		},
	}
}

// GeneratePortfolio returns a fixed open-position snapshot matching the trade
// universe.
func GeneratePortfolio() models.PortfolioState {
	positions := []models.Position{
		{
			Instrument: models.InstrumentPerpetual, Symbol: "SOL-PERP", Side: models.SideLong, Size: 120,
			EntryPrice: 145.32, CurrentPrice: 148.67, UnrealizedPnL: 402.00,
			Leverage: 5, LiquidationPrice: 121.10, MarginUsed: 3487.68,
		},
		{
			Instrument: models.InstrumentPerpetual, Symbol: "BTC-PERP", Side: models.SideShort, Size: 0.15,
			EntryPrice: 98200, CurrentPrice: 97450, UnrealizedPnL: 112.50,
			Leverage: 3, LiquidationPrice: 130933.33, MarginUsed: 4910.00,
		},
		{
			Instrument: models.InstrumentSpot, Symbol: "ETH/USDC", Side: models.SideLong, Size: 5.2,
			EntryPrice: 3380, CurrentPrice: 3450, UnrealizedPnL: 364.00,
			Leverage: 1, MarginUsed: 17576.00,
		},
		{
			Instrument: models.InstrumentOptions, Symbol: "SOL-CALL", Side: models.SideLong, Size: 50,
			EntryPrice: 8.50, CurrentPrice: 12.20, UnrealizedPnL: 185.00,
			Leverage: 1, MarginUsed: 425.00,
		},
	}

	var unrealized, usedMargin float64
	for _, p := range positions {
		unrealized += p.UnrealizedPnL
		usedMargin += p.MarginUsed
	}

	return models.PortfolioState{
		TotalEquity:     67834.52,
		AvailableMargin: 67834.52 - usedMargin,
		UsedMargin:      usedMargin,
		UnrealizedPnL:   unrealized,
		Positions:       positions,
		GreeksAggregate: models.Greeks{Delta: 285.4, Gamma: 12.8, Theta: -45.2, Vega: 38.7},
	}
}
