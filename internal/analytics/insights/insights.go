// Package insights turns already-computed metrics into short explanatory
// text: what a metric means, where the current value sits against benchmark
// bands, and one personalized observation plus one actionable suggestion.
// It performs no analytics of its own.
package insights

import (
	"fmt"
	"math"
	"sort"

	"deriverse-cli/internal/models"
)

// Benchmark is one labeled band of a metric's value range.
type Benchmark struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Context carries everything an insight may draw on.
type Context struct {
	Trades    []models.Trade
	Metrics   models.DashboardMetrics
	Portfolio models.PortfolioState
}

// Insight describes one metric and generates its commentary.
type Insight struct {
	Title      string
	Definition string
	Benchmarks []Benchmark
	Personal   func(value float64, ctx Context) string
	Actionable func(value float64, ctx Context) string
}

// Get returns the insight definition for a metric name, or false when none
// exists.
func Get(metric string) (Insight, bool) {
	ins, ok := registry[metric]
	return ins, ok
}

// Names returns the registered metric names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Position locates a value within its benchmark bands, returning the band
// label and a 0..1 position inside the band.
func Position(value float64, benchmarks []Benchmark) (label string, position float64) {
	for _, b := range benchmarks {
		if value >= b.Min && value < b.Max {
			lo := math.Max(b.Min, -100)
			hi := math.Min(b.Max, 100)
			span := hi - lo
			pos := 0.5
			if span > 0 {
				pos = math.Min(math.Max((value-lo)/span, 0), 1)
			}
			return b.Label, pos
		}
	}
	last := benchmarks[len(benchmarks)-1]
	return last.Label, 1
}

var registry = map[string]Insight{
	"totalPnl": {
		Title:      "Total PnL",
		Definition: "Your net profit/loss across all closed trades in the selected period.",
		Benchmarks: []Benchmark{
			{"Loss", math.Inf(-1), 0},
			{"Break-even", 0, 500},
			{"Profit", 500, 2000},
			{"Strong", 2000, math.Inf(1)},
		},
		Personal: func(_ float64, ctx Context) string {
			annualized := ctx.Metrics.TotalPnLPercent * (365.0 / 90.0)
			sign := ""
			if annualized >= 0 {
				sign = "+"
			}
			return fmt.Sprintf("At this rate, your annualized return would be %s%.1f%% on initial equity.", sign, annualized)
		},
		Actionable: func(value float64, ctx Context) string {
			if value < 0 {
				if sym, m, ok := extremeSymbol(ctx.Metrics, false); ok {
					return fmt.Sprintf("Your biggest loss source is %s ($%.2f). Consider reducing position size there.", sym, m.PnL)
				}
				return "Focus on cutting losses earlier and letting winners run longer."
			}
			if sym, _, ok := extremeSymbol(ctx.Metrics, true); ok {
				return fmt.Sprintf("%s is your top performer. Consider concentrating more on instruments where you have an edge.", sym)
			}
			return "Keep refining your strategy and managing risk consistently."
		},
	},
	"winRate": {
		Title:      "Win Rate",
		Definition: "Percentage of trades that closed in profit. One of the two components of edge (the other being win/loss size ratio).",
		Benchmarks: []Benchmark{
			{"Needs work", 0, 40},
			{"Average", 40, 50},
			{"Good", 50, 60},
			{"Excellent", 60, 100},
		},
		Personal: func(_ float64, ctx Context) string {
			day, block := bestHeatmapCell(ctx.Metrics)
			return fmt.Sprintf("Your best performance comes on %s during %s UTC hours.", shortDayNames[day], shortBlockNames[block])
		},
		Actionable: func(value float64, ctx Context) string {
			pf := float64(ctx.Metrics.ProfitFactor)
			if value < 50 {
				rel := "smaller"
				if pf > 1 {
					rel = "larger"
				}
				return fmt.Sprintf("Win rate alone doesn't determine profitability. Your profit factor of %.2f means your winners are %s than your losers.", pf, rel)
			}
			return fmt.Sprintf("Strong win rate combined with %.2fx profit factor shows a solid edge. Maintain your selection criteria.", pf)
		},
	},
	"profitFactor": {
		Title:      "Profit Factor",
		Definition: "Gross profits divided by gross losses. Tells you how much you earn for every dollar lost.",
		Benchmarks: []Benchmark{
			{"Losing", 0, 1.0},
			{"Marginal", 1.0, 1.5},
			{"Good", 1.5, 2.0},
			{"Excellent", 2.0, math.Inf(1)},
		},
		Personal: func(value float64, _ Context) string {
			if math.IsInf(value, 1) {
				return "No losing trades — your profit factor is infinite. This is unsustainable long-term but impressive."
			}
			verdict := "Aim for at least 1.5x."
			if value >= 1.5 {
				verdict = "This is a healthy ratio."
			}
			return fmt.Sprintf("For every $1 you lose, you make back $%.2f. %s", value, verdict)
		},
		Actionable: func(value float64, ctx Context) string {
			if value < 1.5 {
				return fmt.Sprintf("Focus on cutting losses earlier. Your avg loss is $%.2f but your avg win is only $%.2f.", ctx.Metrics.AvgLoss, ctx.Metrics.AvgWin)
			}
			return "Your profit factor is healthy. Focus on consistency and avoiding drawdowns."
		},
	},
	"expectancy": {
		Title:      "Expectancy",
		Definition: "Average profit you can expect per trade over time. The mathematical edge of your strategy.",
		Benchmarks: []Benchmark{
			{"Negative", math.Inf(-1), 0},
			{"Small edge", 0, 10},
			{"Solid", 10, 50},
			{"Strong", 50, math.Inf(1)},
		},
		Personal: func(value float64, _ Context) string {
			return fmt.Sprintf("Over your next 100 trades at current stats, you'd expect to make ~$%.0f.", value*100)
		},
		Actionable: func(_ float64, ctx Context) string {
			winContrib := ctx.Metrics.WinRate / 100 * ctx.Metrics.AvgWin
			lossContrib := (1 - ctx.Metrics.WinRate/100) * ctx.Metrics.AvgLoss
			driver := "average win size"
			if winContrib > lossContrib {
				driver = "win rate"
			}
			return fmt.Sprintf("Your expectancy is driven more by %s. Improving the weaker component would have the biggest impact.", driver)
		},
	},
	"sharpeRatio": {
		Title:      "Sharpe Ratio",
		Definition: "Return earned per unit of risk (volatility). The gold standard of risk-adjusted performance measurement.",
		Benchmarks: []Benchmark{
			{"Losing", math.Inf(-1), 0},
			{"Poor", 0, 0.5},
			{"Average", 0.5, 1.0},
			{"Good", 1.0, 2.0},
			{"Excellent", 2.0, math.Inf(1)},
		},
		Personal: func(value float64, ctx Context) string {
			if sym, ok := bestAvgPnLSymbol(ctx.Metrics); ok {
				return fmt.Sprintf("Your best risk-adjusted returns come from %s trades.", sym)
			}
			verdict := "has room for improvement"
			if value >= 1.0 {
				verdict = "indicates good risk-adjusted returns"
			}
			return fmt.Sprintf("Your Sharpe of %.2f %s.", value, verdict)
		},
		Actionable: func(value float64, _ Context) string {
			if value < 1.0 {
				return "Institutional funds typically target Sharpe >1.0. Reduce position sizing or concentrate on your best setups."
			}
			return "You're above the institutional threshold. Maintain consistency to preserve this edge."
		},
	},
	"sortinoRatio": {
		Title:      "Sortino Ratio",
		Definition: "Like Sharpe, but only penalizes downside volatility. Ignores positive volatility, a fairer measure if you have big winners.",
		Benchmarks: []Benchmark{
			{"Poor", math.Inf(-1), 0.5},
			{"Average", 0.5, 1.5},
			{"Good", 1.5, 3.0},
			{"Excellent", 3.0, math.Inf(1)},
		},
		Personal: func(value float64, ctx Context) string {
			if value > ctx.Metrics.SharpeRatio*1.3 {
				return "Sortino well above Sharpe means your volatility skews positive: your big swings are wins, not losses. Healthy pattern."
			}
			strength, control := "average", "something to monitor"
			if value >= 1.5 {
				strength, control = "strong", "well-controlled"
			}
			return fmt.Sprintf("Your Sortino of %.2f is %s: downside risk is %s.", value, strength, control)
		},
		Actionable: func(value float64, _ Context) string {
			if value < 1.5 {
				return "Focus on reducing the size of your losing trades to improve downside risk metrics."
			}
			return "Strong downside control. Your losses are well-managed relative to your gains."
		},
	},
	"maxDrawdown": {
		Title:      "Max Drawdown",
		Definition: "The largest peak-to-trough decline in your equity. Shows the worst-case scenario you've experienced.",
		Benchmarks: []Benchmark{
			{"Conservative", 0, 5},
			{"Moderate", 5, 15},
			{"Aggressive", 15, 30},
			{"Dangerous", 30, 100},
		},
		Personal: func(value float64, ctx Context) string {
			verdict := "This is within manageable range."
			if value > 20 {
				verdict = "This is significant: recovery requires disproportionate gains."
			}
			return fmt.Sprintf("Your worst drawdown was %.2f%% ($%.2f). %s", value, ctx.Metrics.MaxDrawdown, verdict)
		},
		Actionable: func(value float64, _ Context) string {
			switch {
			case value > 20:
				return "A 50% drawdown requires 100% gain to recover. Consider reducing position sizes or max leverage."
			case value > 10:
				return "Monitor your drawdown recovery time. Consider reducing risk when approaching your max drawdown level."
			default:
				return "Conservative risk management. Your drawdown control is a strength."
			}
		},
	},
	"avgDuration": {
		Title:      "Average Duration",
		Definition: "How long you hold positions on average. Helps identify your trading style and potential holding biases.",
		Benchmarks: []Benchmark{
			{"Scalper", 0, 30},
			{"Day trader", 30, 480},
			{"Swing", 480, 10080},
			{"Position", 10080, math.Inf(1)},
		},
		Personal: func(_ float64, ctx Context) string {
			winDur, lossDur := durationSplit(ctx.Trades)
			rel := "shorter"
			if winDur > lossDur {
				rel = "longer"
			}
			return fmt.Sprintf("Winners held %s on average (%s vs %s for losers).", rel, formatDuration(winDur), formatDuration(lossDur))
		},
		Actionable: func(_ float64, ctx Context) string {
			winDur, lossDur := durationSplit(ctx.Trades)
			switch {
			case lossDur > winDur*1.5:
				return "You may be holding losers hoping for recovery. Consider stricter stop-losses."
			case winDur > lossDur*2:
				return "Good patience with winners. Your hold discipline is contributing to profitability."
			default:
				return "Your hold times are balanced between winners and losers."
			}
		},
	},
	"longShortRatio": {
		Title:      "Long/Short Ratio",
		Definition: "Your directional bias: how many more longs vs shorts you trade. 1.0 = perfectly balanced.",
		Benchmarks: []Benchmark{
			{"Short bias", 0, 0.7},
			{"Balanced", 0.7, 1.5},
			{"Long bias", 1.5, 3.0},
			{"Heavy bias", 3.0, math.Inf(1)},
		},
		Personal: func(_ float64, ctx Context) string {
			longWR, shortWR := sideWinRates(ctx.Trades)
			return fmt.Sprintf("Long trades: %.1f%% win rate vs Short: %.1f%% win rate.", longWR, shortWR)
		},
		Actionable: func(value float64, _ Context) string {
			if value > 2.5 || value < 0.4 {
				bias := "short"
				if value > 1 {
					bias = "long"
				}
				return fmt.Sprintf("You have a strong %s bias. This works in trending markets but increases risk if the market reverses.", bias)
			}
			return "Relatively balanced directional exposure. This provides natural hedging in volatile markets."
		},
	},
	"fundingPnl": {
		Title:      "Funding Rate PnL",
		Definition: "In perpetual futures, you pay or receive funding every 8 hours. This shows the net impact on your perps trading.",
		Benchmarks: []Benchmark{
			{"Costly", math.Inf(-1), -100},
			{"Minor cost", -100, 0},
			{"Neutral", 0, 50},
			{"Earning", 50, math.Inf(1)},
		},
		Personal: func(value float64, ctx Context) string {
			var perpPnL float64
			for _, t := range ctx.Trades {
				if t.Instrument == models.InstrumentPerpetual {
					perpPnL += t.PnL
				}
			}
			if perpPnL == 0 {
				return "No perpetual trades in this period."
			}
			verb := "cost"
			if value >= 0 {
				verb = "added"
			}
			pct := math.Abs(value / perpPnL * 100)
			return fmt.Sprintf("Funding has %s you $%.2f total. That's %.1f%% of your perps PnL.", verb, math.Abs(value), pct)
		},
		Actionable: func(value float64, _ Context) string {
			if value < -50 {
				return "Consider closing perp positions before funding snapshots if you're consistently on the paying side."
			}
			return "Funding costs are manageable relative to your trading PnL."
		},
	},
	"delta": {
		Title:      "Delta (Δ)",
		Definition: "How much your portfolio moves per $1 move in the underlying. Delta of 0.5 means you gain $0.50 per $1 upward move.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(value float64, _ Context) string {
			sign := ""
			if value >= 0 {
				sign = "+"
			}
			exposure := "Moderate exposure."
			if math.Abs(value) > 1 {
				exposure = "Significant directional exposure."
			}
			return fmt.Sprintf("Net portfolio delta of %s%.2f. %s", sign, value, exposure)
		},
		Actionable: func(value float64, _ Context) string {
			if math.Abs(value) > 2 {
				return "High delta — consider hedging to reduce directional risk."
			}
			return "Delta within normal range."
		},
	},
	"gamma": {
		Title:      "Gamma (Γ)",
		Definition: "Rate of change of your Delta per $1 move. High Gamma means your exposure changes rapidly with price movement.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(value float64, _ Context) string {
			verdict := "Low gamma, stable delta exposure."
			if math.Abs(value) > 0.1 {
				verdict = "Your delta shifts quickly — monitor closely."
			}
			return fmt.Sprintf("Gamma of %.4f. %s", value, verdict)
		},
		Actionable: func(value float64, _ Context) string {
			if math.Abs(value) > 0.1 {
				return "High gamma requires frequent delta hedging."
			}
			return "Gamma is manageable."
		},
	},
	"theta": {
		Title:      "Theta (Θ)",
		Definition: "Time decay — how much value your options portfolio loses per day as expiration approaches.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(value float64, _ Context) string {
			verdict := "Modest time decay impact."
			if value < -10 {
				verdict = "Significant daily bleed from options."
			}
			return fmt.Sprintf("Daily time decay: $%.2f. %s", value, verdict)
		},
		Actionable: func(value float64, _ Context) string {
			if value < -20 {
				return "Consider selling options to offset theta decay, or close positions nearing expiry."
			}
			return "Theta is within normal range."
		},
	},
	"vega": {
		Title:      "Vega (ν)",
		Definition: "Sensitivity to volatility changes. Positive Vega means you profit when implied volatility rises.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(value float64, _ Context) string {
			sign := ""
			if value >= 0 {
				sign = "+"
			}
			direction := "You benefit from falling volatility."
			if value > 0 {
				direction = "You profit from rising volatility."
			}
			return fmt.Sprintf("Vega exposure: %s%.2f. %s", sign, value, direction)
		},
		Actionable: func(value float64, _ Context) string {
			if math.Abs(value) > 50 {
				return "Large vega exposure — a volatility spike could significantly impact your portfolio."
			}
			return "Vega exposure is moderate."
		},
	},
	"liquidationProximity": {
		Title:      "Liquidation Proximity",
		Definition: "How close your leveraged positions are to being force-closed by the exchange. Larger distance = safer.",
		Benchmarks: []Benchmark{
			{"Danger", 0, 5},
			{"Warning", 5, 15},
			{"Moderate", 15, 30},
			{"Safe", 30, 100},
		},
		Personal: func(value float64, ctx Context) string {
			_, leveraged := ctx.Portfolio.NearestLiquidation()
			plural := "s"
			if leveraged == 1 {
				plural = ""
			}
			return fmt.Sprintf("Nearest liquidation is %.1f%% away. %d leveraged position%s open.", value, leveraged, plural)
		},
		Actionable: func(value float64, _ Context) string {
			switch {
			case value < 10:
				return "Dangerously close to liquidation. Consider adding margin or reducing position size immediately."
			case value < 20:
				return "Monitor closely. A 10-15% market move could trigger liquidation."
			default:
				return "Comfortable distance from liquidation levels."
			}
		},
	},
	"marginUtilization": {
		Title:      "Margin Utilization",
		Definition: "Percentage of your available margin currently in use by open positions.",
		Benchmarks: []Benchmark{
			{"Safe", 0, 30},
			{"Moderate", 30, 60},
			{"High", 60, 80},
			{"Danger", 80, 100},
		},
		Personal: func(value float64, ctx Context) string {
			verdict := "Healthy margin buffer."
			if value > 60 {
				verdict = "Limited room for new trades."
			}
			return fmt.Sprintf("%.1f%% margin used across %d positions. %s", value, len(ctx.Portfolio.Positions), verdict)
		},
		Actionable: func(value float64, _ Context) string {
			if value > 60 {
				return "High margin usage increases liquidation risk. Consider closing some positions or adding collateral."
			}
			return "Comfortable margin level. Room for additional positions if needed."
		},
	},
	"emotionPerformance": {
		Title:      "Emotion-Performance Link",
		Definition: "How your tagged emotional state correlates with trading results. Data-driven self-awareness.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(_ float64, ctx Context) string {
			type agg struct {
				pnl   float64
				count int
			}
			byEmotion := make(map[models.Emotion]*agg)
			for _, t := range ctx.Trades {
				if t.Journal == nil {
					continue
				}
				a := byEmotion[t.Journal.Emotion]
				if a == nil {
					a = &agg{}
					byEmotion[t.Journal.Emotion] = a
				}
				a.pnl += t.PnL
				a.count++
			}
			if len(byEmotion) < 2 {
				return "Tag more trades with emotions to see patterns."
			}
			emotions := make([]models.Emotion, 0, len(byEmotion))
			for e := range byEmotion {
				emotions = append(emotions, e)
			}
			sort.Slice(emotions, func(i, j int) bool {
				ai, aj := byEmotion[emotions[i]], byEmotion[emotions[j]]
				return ai.pnl/float64(ai.count) > aj.pnl/float64(aj.count)
			})
			best, worst := emotions[0], emotions[len(emotions)-1]
			return fmt.Sprintf("'%s' trades avg +$%.2f vs '%s' avg $%.2f.",
				best, byEmotion[best].pnl/float64(byEmotion[best].count),
				worst, byEmotion[worst].pnl/float64(byEmotion[worst].count))
		},
		Actionable: func(_ float64, ctx Context) string {
			var pnl float64
			count := 0
			for _, t := range ctx.Trades {
				if t.Journal != nil && t.Journal.Emotion == models.EmotionRevenge {
					pnl += t.PnL
					count++
				}
			}
			if count > 0 {
				return fmt.Sprintf("Revenge trading costs ~$%.2f per trade. Recognizing the pattern is the first step.", math.Abs(pnl/float64(count)))
			}
			return "Continue tagging trades with emotions to build a stronger behavioral dataset."
		},
	},
	"setupPerformance": {
		Title:      "Setup Performance",
		Definition: "Which trade setups (breakout, trend, etc.) work best for your specific trading style.",
		Benchmarks: []Benchmark{{"Range", math.Inf(-1), math.Inf(1)}},
		Personal: func(_ float64, ctx Context) string {
			type agg struct {
				pnl   float64
				count int
				wins  int
			}
			bySetup := make(map[models.Setup]*agg)
			for _, t := range ctx.Trades {
				if t.Journal == nil {
					continue
				}
				a := bySetup[t.Journal.Setup]
				if a == nil {
					a = &agg{}
					bySetup[t.Journal.Setup] = a
				}
				a.pnl += t.PnL
				a.count++
				if t.Win() {
					a.wins++
				}
			}
			var best models.Setup
			bestWR := -1.0
			for s, a := range bySetup {
				if a.count < 3 {
					continue
				}
				wr := float64(a.wins) / float64(a.count)
				if wr > bestWR || (wr == bestWR && s < best) {
					best, bestWR = s, wr
				}
			}
			if bestWR < 0 {
				return "Tag more trades with setups to discover your best patterns."
			}
			a := bySetup[best]
			return fmt.Sprintf("Best setup: '%s' with %.0f%% win rate and $%.2f total PnL.", best, bestWR*100, a.pnl)
		},
		Actionable: func(_ float64, ctx Context) string {
			type agg struct {
				count int
				wins  int
			}
			bySetup := make(map[models.Setup]*agg)
			tagged := 0
			for _, t := range ctx.Trades {
				if t.Journal == nil {
					continue
				}
				tagged++
				a := bySetup[t.Journal.Setup]
				if a == nil {
					a = &agg{}
					bySetup[t.Journal.Setup] = a
				}
				a.count++
				if t.Win() {
					a.wins++
				}
			}
			if len(ctx.Trades) > 0 {
				setups := make([]models.Setup, 0, len(bySetup))
				for s := range bySetup {
					setups = append(setups, s)
				}
				sort.Slice(setups, func(i, j int) bool { return setups[i] < setups[j] })
				for _, s := range setups {
					a := bySetup[s]
					if a.count < 3 {
						continue
					}
					wr := float64(a.wins) / float64(a.count) * 100
					share := float64(a.count) / float64(len(ctx.Trades)) * 100
					if wr > 60 && share < 20 {
						return fmt.Sprintf("'%s' has %.0f%% WR but only %.0f%% of your trades. Use it more.", s, wr, share)
					}
				}
			}
			return "Continue journaling setups to identify your highest-edge patterns."
		},
	},
}

var shortDayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var shortBlockNames = []string{"00-04", "04-08", "08-12", "12-16", "16-20", "20-24"}

// bestHeatmapCell finds the single highest-PnL cell, returning its day column
// and time-block row.
func bestHeatmapCell(m models.DashboardMetrics) (day, block int) {
	best := math.Inf(-1)
	for b := range m.HeatmapData {
		for d := range m.HeatmapData[b] {
			if m.HeatmapData[b][d] > best {
				best = m.HeatmapData[b][d]
				day, block = d, b
			}
		}
	}
	return day, block
}

// extremeSymbol returns the symbol with the highest (best=true) or lowest
// PnL.
func extremeSymbol(m models.DashboardMetrics, best bool) (string, models.InstrumentMetrics, bool) {
	symbols := make([]string, 0, len(m.BySymbol))
	for sym := range m.BySymbol {
		symbols = append(symbols, sym)
	}
	if len(symbols) == 0 {
		return "", models.InstrumentMetrics{}, false
	}
	sort.Slice(symbols, func(i, j int) bool {
		pi, pj := m.BySymbol[symbols[i]].PnL, m.BySymbol[symbols[j]].PnL
		if pi != pj {
			if best {
				return pi > pj
			}
			return pi < pj
		}
		return symbols[i] < symbols[j]
	})
	return symbols[0], m.BySymbol[symbols[0]], true
}

// bestAvgPnLSymbol returns the symbol with the highest average PnL among
// symbols with at least 5 trades.
func bestAvgPnLSymbol(m models.DashboardMetrics) (string, bool) {
	best, bestAvg, found := "", math.Inf(-1), false
	symbols := make([]string, 0, len(m.BySymbol))
	for sym := range m.BySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	for _, sym := range symbols {
		sm := m.BySymbol[sym]
		if sm.TradeCount < 5 {
			continue
		}
		avg := sm.PnL / math.Max(float64(sm.TradeCount), 1)
		if avg > bestAvg {
			best, bestAvg, found = sym, avg, true
		}
	}
	return best, found
}

func durationSplit(trades []models.Trade) (winDur, lossDur float64) {
	var winSum, lossSum float64
	winCount, lossCount := 0, 0
	for _, t := range trades {
		if t.Win() {
			winSum += t.DurationMinutes()
			winCount++
		} else {
			lossSum += t.DurationMinutes()
			lossCount++
		}
	}
	if winCount > 0 {
		winDur = winSum / float64(winCount)
	}
	if lossCount > 0 {
		lossDur = lossSum / float64(lossCount)
	}
	return winDur, lossDur
}

func sideWinRates(trades []models.Trade) (longWR, shortWR float64) {
	longWins, longCount, shortWins, shortCount := 0, 0, 0, 0
	for _, t := range trades {
		if t.Side == models.SideLong {
			longCount++
			if t.Win() {
				longWins++
			}
		} else {
			shortCount++
			if t.Win() {
				shortWins++
			}
		}
	}
	if longCount > 0 {
		longWR = float64(longWins) / float64(longCount) * 100
	}
	if shortCount > 0 {
		shortWR = float64(shortWins) / float64(shortCount) * 100
	}
	return longWR, shortWR
}

func formatDuration(minutes float64) string {
	if minutes < 60 {
		return fmt.Sprintf("%.0fm", math.Round(minutes))
	}
	hours := int(minutes / 60)
	if hours < 24 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dd", hours/24)
}
