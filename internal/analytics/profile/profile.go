// Package profile classifies trading style and flags behavioral patterns
// from aggregate trade statistics.
package profile

import (
	"fmt"
	"math"
	"sort"

	"deriverse-cli/internal/models"
)

// Style is the classified trading style.
type Style string

const (
	StyleScalper        Style = "scalper"
	StyleDayTrader      Style = "day_trader"
	StyleSwingTrader    Style = "swing_trader"
	StylePositionTrader Style = "position_trader"
)

// Severity tags a detected pattern.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityNeutral  Severity = "neutral"
	SeverityWarning  Severity = "warning"
)

// Pattern is one behavioral pattern check result.
type Pattern struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Detected    bool     `json:"detected"`
	Severity    Severity `json:"severity"`
}

// EvolutionPeriod summarizes one chronological third of the trade history.
type EvolutionPeriod struct {
	Period  string  `json:"period"`
	Style   Style   `json:"style"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
}

// Profile is the assembled trader profile.
type Profile struct {
	Style             Style             `json:"style"`
	StyleConfidence   float64           `json:"styleConfidence"`
	StyleDescription  string            `json:"styleDescription"`
	Patterns          []Pattern         `json:"patterns"`
	Strengths         []string          `json:"strengths"`
	Weaknesses        []string          `json:"weaknesses"`
	OptimalConditions []string          `json:"optimalConditions"`
	Evolution         []EvolutionPeriod `json:"evolution"`
}

// Config holds the empirical pattern-detection constants. They are design
// constants, not model-derived; tune with care since downstream descriptions
// assume them.
type Config struct {
	RevengeTradeLimit   int     `mapstructure:"revenge_trade_limit"`
	OvertradingHighDays int     `mapstructure:"overtrading_high_days"`
	CutsWinnersRatio    float64 `mapstructure:"cuts_winners_ratio"`
	HoldsLosersRatio    float64 `mapstructure:"holds_losers_ratio"`
	StreakSizeFactor    float64 `mapstructure:"streak_size_factor"`
	StreakChaseLimit    int     `mapstructure:"streak_chase_limit"`
	TimeConcentration   float64 `mapstructure:"time_concentration"`
	SizeCVLimit         float64 `mapstructure:"size_cv_limit"`
}

// DefaultConfig returns the reference detection constants.
func DefaultConfig() Config {
	return Config{
		RevengeTradeLimit:   3,
		OvertradingHighDays: 5,
		CutsWinnersRatio:    0.7,
		HoldsLosersRatio:    1.5,
		StreakSizeFactor:    1.3,
		StreakChaseLimit:    5,
		TimeConcentration:   0.5,
		SizeCVLimit:         0.5,
	}
}

// Style classification thresholds: average hold duration in minutes and
// trades per day over the 90-day analysis window.
const (
	scalperMaxMinutes  = 30
	dayTraderMaxMinutes = 480
	swingMaxMinutes    = 10080 // 7 days
	scalperMinPerDay   = 5
	analysisWindowDays = 90
)

var styleDescriptions = map[Style]string{
	StyleScalper:        "You favor rapid-fire trades with tight targets. Speed and precision are your edge.",
	StyleDayTrader:      "You open and close within a session. You catch intraday moves and avoid overnight risk.",
	StyleSwingTrader:    "You hold for days, riding multi-day moves. Patience and trend-reading are your tools.",
	StylePositionTrader: "You think in weeks or months. Macro views and conviction define your approach.",
}

// Generate builds the trader profile with the default detection constants.
func Generate(trades []models.Trade, m models.DashboardMetrics) Profile {
	return GenerateWithConfig(trades, m, DefaultConfig())
}

// GenerateWithConfig builds the trader profile using custom detection
// constants.
func GenerateWithConfig(trades []models.Trade, m models.DashboardMetrics, cfg Config) Profile {
	style, confidence := detectStyle(trades)
	strengths, weaknesses := rankStrengths(trades, m)
	return Profile{
		Style:             style,
		StyleConfidence:   confidence,
		StyleDescription:  styleDescriptions[style],
		Patterns:          detectPatterns(trades, m, cfg),
		Strengths:         strengths,
		Weaknesses:        weaknesses,
		OptimalConditions: optimalConditions(m),
		Evolution:         buildEvolution(trades),
	}
}

// detectStyle walks a decision tree over average duration and trade
// frequency. Confidence is a heuristic ratio of how strongly the dominant
// signal exceeds its threshold.
func detectStyle(trades []models.Trade) (Style, float64) {
	if len(trades) == 0 {
		return StyleDayTrader, 0
	}
	var totalMin float64
	for _, t := range trades {
		totalMin += t.DurationMinutes()
	}
	avgMin := totalMin / float64(len(trades))
	perDay := float64(len(trades)) / analysisWindowDays

	switch {
	case avgMin < scalperMaxMinutes && perDay > scalperMinPerDay:
		return StyleScalper, math.Min(perDay/10, 1)
	case avgMin < dayTraderMaxMinutes:
		return StyleDayTrader, math.Min(avgMin/240, 1)
	case avgMin < swingMaxMinutes:
		return StyleSwingTrader, 0.8
	default:
		return StylePositionTrader, 0.7
	}
}

func classifyByDuration(avgMin float64) Style {
	switch {
	case avgMin < scalperMaxMinutes:
		return StyleScalper
	case avgMin < dayTraderMaxMinutes:
		return StyleDayTrader
	case avgMin < swingMaxMinutes:
		return StyleSwingTrader
	default:
		return StylePositionTrader
	}
}

// buildEvolution splits the chronologically sorted history into three equal
// chunks and classifies each. Fewer than 10 trades produces no output.
func buildEvolution(trades []models.Trade) []EvolutionPeriod {
	if len(trades) < 10 {
		return nil
	}
	sorted := make([]models.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OpenTime.Before(sorted[j].OpenTime) })

	chunkSize := (len(sorted) + 2) / 3
	periods := []string{"Early", "Middle", "Recent"}
	out := make([]EvolutionPeriod, 0, 3)
	for i, period := range periods {
		lo := i * chunkSize
		hi := lo + chunkSize
		if lo > len(sorted) {
			lo = len(sorted)
		}
		if hi > len(sorted) {
			hi = len(sorted)
		}
		chunk := sorted[lo:hi]

		wins := 0
		var pnl, totalMin float64
		for _, t := range chunk {
			if t.Win() {
				wins++
			}
			pnl += t.PnL
			totalMin += t.DurationMinutes()
		}
		n := math.Max(float64(len(chunk)), 1)
		out = append(out, EvolutionPeriod{
			Period:  period,
			Style:   classifyByDuration(totalMin / n),
			WinRate: float64(wins) / n * 100,
			PnL:     pnl,
		})
	}
	return out
}

func rankStrengths(trades []models.Trade, m models.DashboardMetrics) (strengths, weaknesses []string) {
	if m.WinRate > 55 {
		strengths = append(strengths, "High win rate")
	} else if m.WinRate < 40 {
		weaknesses = append(weaknesses, "Low win rate")
	}

	if m.ProfitFactor.Infinite() || m.ProfitFactor > 1.5 {
		strengths = append(strengths, "Strong profit factor")
	} else if m.ProfitFactor < 1.0 {
		weaknesses = append(weaknesses, "Negative profit factor")
	}

	if m.MaxDrawdownPercent < 10 {
		strengths = append(strengths, "Conservative risk management")
	} else if m.MaxDrawdownPercent > 25 {
		weaknesses = append(weaknesses, "High maximum drawdown")
	}

	if m.SharpeRatio > 1.0 {
		strengths = append(strengths, "Good risk-adjusted returns")
	} else if m.SharpeRatio < 0.5 {
		weaknesses = append(weaknesses, "Poor risk-adjusted returns")
	}

	winDur, lossDur, winCount, lossCount := durationSplit(trades)
	if winDur > lossDur*1.3 && winCount > 5 {
		strengths = append(strengths, "Lets winners run")
	}
	if lossDur > winDur*1.5 && lossCount > 5 {
		weaknesses = append(weaknesses, "Holds losers too long")
	}

	if m.ConsecutiveWins >= 5 {
		strengths = append(strengths, "Strong winning streaks")
	}
	if m.ConsecutiveLosses >= 5 {
		weaknesses = append(weaknesses, "Prone to losing streaks")
	}

	if len(strengths) > 4 {
		strengths = strengths[:4]
	}
	if len(weaknesses) > 4 {
		weaknesses = weaknesses[:4]
	}
	return strengths, weaknesses
}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var timeBlockNames = []string{"00:00-04:00", "04:00-08:00", "08:00-12:00", "12:00-16:00", "16:00-20:00", "20:00-24:00"}

func optimalConditions(m models.DashboardMetrics) []string {
	var conditions []string

	bestDay, bestDayVal := 0, math.Inf(-1)
	for d := 0; d < models.HeatmapCols; d++ {
		var sum float64
		for b := 0; b < len(m.HeatmapData); b++ {
			sum += m.HeatmapData[b][d]
		}
		if sum > bestDayVal {
			bestDayVal = sum
			bestDay = d
		}
	}
	conditions = append(conditions, fmt.Sprintf("Best day: %s", dayNames[bestDay]))

	bestBlock, bestBlockVal := 0, math.Inf(-1)
	for b := 0; b < len(m.HeatmapData); b++ {
		var sum float64
		for _, v := range m.HeatmapData[b] {
			sum += v
		}
		if sum > bestBlockVal {
			bestBlockVal = sum
			bestBlock = b
		}
	}
	conditions = append(conditions, fmt.Sprintf("Peak hours: %s UTC", timeBlockNames[bestBlock]))

	if inst, ok := bestInstrument(m); ok {
		conditions = append(conditions, fmt.Sprintf("Strongest instrument: %s", inst))
	}
	if sym, ok := bestSymbol(m); ok {
		conditions = append(conditions, fmt.Sprintf("Top symbol: %s", sym))
	}
	return conditions
}

func bestInstrument(m models.DashboardMetrics) (models.Instrument, bool) {
	best, bestPnL, found := models.Instrument(""), math.Inf(-1), false
	for _, inst := range models.Instruments {
		im, ok := m.ByInstrument[inst]
		if !ok {
			continue
		}
		if im.PnL > bestPnL {
			best, bestPnL, found = inst, im.PnL, true
		}
	}
	return best, found
}

func bestSymbol(m models.DashboardMetrics) (string, bool) {
	symbols := make([]string, 0, len(m.BySymbol))
	for sym, sm := range m.BySymbol {
		if sm.TradeCount >= 5 {
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		return "", false
	}
	sort.Slice(symbols, func(i, j int) bool {
		if m.BySymbol[symbols[i]].PnL != m.BySymbol[symbols[j]].PnL {
			return m.BySymbol[symbols[i]].PnL > m.BySymbol[symbols[j]].PnL
		}
		return symbols[i] < symbols[j]
	})
	return symbols[0], true
}

// durationSplit returns average winner and loser hold durations in minutes,
// with the respective counts.
func durationSplit(trades []models.Trade) (winDur, lossDur float64, winCount, lossCount int) {
	var winSum, lossSum float64
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
	return winDur, lossDur, winCount, lossCount
}
