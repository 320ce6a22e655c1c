package metrics

import "math"

// round2 rounds a currency value to 2 decimals, half away from zero. The
// value*100 round /100 form keeps repeated float summations from leaking
// binary artifacts into output.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundPct converts a fraction to a percentage with exactly 2 decimals,
// rounding the scaled value rather than the percentage itself.
func roundPct(fraction float64) float64 {
	return math.Round(fraction*10000) / 100
}
