package metrics

import "math"

// annualize converts a daily ratio to annual terms by the sqrt(252)
// trading-day convention, regardless of actual calendar span.
var annualize = math.Sqrt(252)

// sharpe computes the annualized Sharpe ratio over daily returns using the
// sample standard deviation (n-1 denominator). Fewer than 2 points or zero
// dispersion yields 0, never NaN.
func sharpe(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	m := mean(returns)
	var variance float64
	for _, r := range returns {
		variance += (r - m) * (r - m)
	}
	variance /= float64(len(returns) - 1)
	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return (m - dailyRiskFree) / stdDev * annualize
}

// sortino computes the annualized Sortino ratio. The downside deviation uses
// only returns strictly below the daily risk-free rate, with variance taken
// against the risk-free rate (not the downside mean) over the downside count.
// With no downside observations the value is capped at 3 when the mean beats
// the risk-free rate, else 0; the cap is an intentional convention for "no
// downside ever observed", not a true infinity.
func sortino(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	m := mean(returns)
	var downsideVar float64
	downside := 0
	for _, r := range returns {
		if r < dailyRiskFree {
			downsideVar += (r - dailyRiskFree) * (r - dailyRiskFree)
			downside++
		}
	}
	if downside == 0 {
		if m > dailyRiskFree {
			return 3
		}
		return 0
	}
	downsideDev := math.Sqrt(downsideVar / float64(downside))
	if downsideDev == 0 {
		return 0
	}
	return (m - dailyRiskFree) / downsideDev * annualize
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
