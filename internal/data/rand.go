package data

import "math"

// rng is a 32-bit linear congruential generator. Using our own generator
// rather than math/rand keeps the trade stream bit-identical for a given
// seed across Go versions.
type rng struct {
	seed uint32
}

func newRNG(seed int64) *rng {
	return &rng{seed: uint32(seed)}
}

// next returns a uniform float64 in [0, 1).
func (r *rng) next() float64 {
	r.seed = r.seed*1664525 + 1013904223
	return float64(r.seed) / float64(0xffffffff)
}

func (r *rng) rangeF(min, max float64) float64 {
	return min + r.next()*(max-min)
}

func (r *rng) intn(min, max int) int {
	return min + int(r.next()*float64(max-min+1))
}

func (r *rng) pick(arr []string) string {
	return arr[r.intn(0, len(arr)-1)]
}

// gaussian draws a standard normal via Box-Muller.
func (r *rng) gaussian() float64 {
	u, v := 0.0, 0.0
	for u == 0 {
		u = r.next()
	}
	for v == 0 {
		v = r.next()
	}
	return math.Sqrt(-2*math.Log(u)) * math.Cos(2*math.Pi*v)
}

// pareto draws from a Pareto distribution with the given shape, producing
// many small draws and occasional large ones.
func (r *rng) pareto(alpha float64) float64 {
	u := r.next()
	return 1 / math.Pow(1-u, 1/alpha)
}
