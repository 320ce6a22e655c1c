package profile

import (
	"fmt"
	"math"

	"deriverse-cli/internal/analytics/metrics"
	"deriverse-cli/internal/models"
)

// detectPatterns runs the independent behavioral predicates. Every pattern is
// always reported; Detected and the description flip with the verdict.
func detectPatterns(trades []models.Trade, m models.DashboardMetrics, cfg Config) []Pattern {
	return []Pattern{
		revengeTrading(trades, cfg),
		overtrading(trades, cfg),
		cutsWinners(trades, cfg),
		holdsLosers(trades, cfg),
		streakChasing(trades, cfg),
		timeDiscipline(m, cfg),
		consistentSizing(trades, cfg),
	}
}

func revengeTrading(trades []models.Trade, cfg Config) Pattern {
	var revenge []models.Trade
	for _, t := range trades {
		if t.Journal != nil && t.Journal.Emotion == models.EmotionRevenge {
			revenge = append(revenge, t)
		}
	}
	detected := len(revenge) > cfg.RevengeTradeLimit

	desc := "No revenge trades detected. Good emotional discipline."
	if len(revenge) > 0 {
		var pnl float64
		for _, t := range revenge {
			pnl += t.PnL
		}
		avg := pnl / float64(len(revenge))
		desc = fmt.Sprintf("Detected %d revenge trades averaging $%.2f PnL.", len(revenge), avg)
	}

	return Pattern{
		ID:          "revenge_trading",
		Label:       "Revenge Trading",
		Description: desc,
		Detected:    detected,
		Severity:    warnIf(detected),
	}
}

func overtrading(trades []models.Trade, cfg Config) Pattern {
	dailyCounts := make(map[string]int)
	for _, t := range trades {
		dailyCounts[metrics.DayKey(t.OpenTime)]++
	}
	avgDaily := float64(len(trades)) / math.Max(float64(len(dailyCounts)), 1)
	highDays := 0
	for _, c := range dailyCounts {
		if float64(c) > avgDaily*2 {
			highDays++
		}
	}
	detected := highDays > cfg.OvertradingHighDays

	desc := "Trade frequency is consistent. No overtrading detected."
	if detected {
		desc = fmt.Sprintf("%d days with 2x+ normal volume. May indicate impulsive trading.", highDays)
	}

	return Pattern{
		ID:          "overtrading",
		Label:       "Overtrading",
		Description: desc,
		Detected:    detected,
		Severity:    warnIf(detected),
	}
}

func cutsWinners(trades []models.Trade, cfg Config) Pattern {
	winDur, lossDur, winCount, _ := durationSplit(trades)
	detected := winDur < lossDur*cfg.CutsWinnersRatio && winCount > 5

	desc := "Winner hold times are appropriate relative to losers."
	if detected {
		desc = "You close winning trades significantly faster than losing ones."
	}

	return Pattern{
		ID:          "cuts_winners",
		Label:       "Cutting Winners Short",
		Description: desc,
		Detected:    detected,
		Severity:    warnIf(detected),
	}
}

func holdsLosers(trades []models.Trade, cfg Config) Pattern {
	winDur, lossDur, _, lossCount := durationSplit(trades)
	detected := lossDur > winDur*cfg.HoldsLosersRatio && lossCount > 5

	desc := "Good discipline closing losing positions."
	if detected {
		desc = "You hold losing positions significantly longer than winners."
	}

	return Pattern{
		ID:          "holds_losers",
		Label:       "Loss Aversion",
		Description: desc,
		Detected:    detected,
		Severity:    warnIf(detected),
	}
}

// streakChasing counts size escalations after two consecutive wins over a
// sliding 2-trade lookback.
func streakChasing(trades []models.Trade, cfg Config) Pattern {
	chases := 0
	for i := 2; i < len(trades); i++ {
		if trades[i-1].Win() && trades[i-2].Win() && trades[i].Size > trades[i-1].Size*cfg.StreakSizeFactor {
			chases++
		}
	}
	detected := chases > cfg.StreakChaseLimit

	desc := "Position sizing is consistent regardless of recent results."
	if detected {
		desc = "You tend to increase position size after consecutive wins."
	}

	return Pattern{
		ID:          "streak_chaser",
		Label:       "Streak Chasing",
		Description: desc,
		Detected:    detected,
		Severity:    warnIf(detected),
	}
}

// timeDiscipline treats trading in under half of the heatmap cells as a
// positive concentration signal.
func timeDiscipline(m models.DashboardMetrics, cfg Config) Pattern {
	total, active := 0, 0
	for _, row := range m.HeatmapData {
		for _, cell := range row {
			total++
			if cell != 0 {
				active++
			}
		}
	}
	focused := float64(active)/math.Max(float64(total), 1) < cfg.TimeConcentration

	desc := "You trade across many time slots. Consider focusing on your best hours."
	severity := SeverityNeutral
	if focused {
		desc = "You trade during specific time windows. This shows discipline."
		severity = SeverityPositive
	}

	return Pattern{
		ID:          "time_discipline",
		Label:       "Time Discipline",
		Description: desc,
		Detected:    focused,
		Severity:    severity,
	}
}

// consistentSizing checks the coefficient of variation of position sizes.
func consistentSizing(trades []models.Trade, cfg Config) Pattern {
	var sum float64
	for _, t := range trades {
		sum += t.Size
	}
	avg := sum / math.Max(float64(len(trades)), 1)

	var variance float64
	for _, t := range trades {
		variance += (t.Size - avg) * (t.Size - avg)
	}
	variance /= math.Max(float64(len(trades)-1), 1)
	cv := math.Sqrt(variance) / math.Max(avg, 0.01)
	consistent := cv < cfg.SizeCVLimit

	desc := "Position sizes vary significantly. Consider standardizing."
	severity := SeverityNeutral
	if consistent {
		desc = "Position sizes are relatively uniform. Good risk management."
		severity = SeverityPositive
	}

	return Pattern{
		ID:          "consistent_sizing",
		Label:       "Consistent Sizing",
		Description: desc,
		Detected:    consistent,
		Severity:    severity,
	}
}

func warnIf(detected bool) Severity {
	if detected {
		return SeverityWarning
	}
	return SeverityPositive
}
