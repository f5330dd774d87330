// Package stats provides the descriptive primitives and effective-sample-size
// estimators the credibility engine is built on. All functions are pure and
// follow a zero-on-empty convention instead of returning errors.
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean, 0 for empty input
func Mean(xs []float64) float64 {
	m, err := mstats.Mean(xs)
	if err != nil {
		return 0
	}
	return m
}

// Variance returns the sample variance (Bessel's correction), 0 for n <= 1
func Variance(xs []float64) float64 {
	if len(xs) <= 1 {
		return 0
	}
	v, err := mstats.SampleVariance(xs)
	if err != nil {
		return 0
	}
	return v
}

// StandardDeviation is the square root of the sample variance
func StandardDeviation(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// Median returns the middle value of a sorted copy (average of the two
// middles for even n), 0 for empty input. The input is not mutated.
func Median(xs []float64) float64 {
	m, err := mstats.Median(xs)
	if err != nil {
		return 0
	}
	return m
}

// Percentile computes the p-th percentile by linear interpolation on a
// sorted copy: index = p/100 * (n-1), interpolating between the floor and
// ceil neighbors. Returns 0 for empty input; a single-element input yields
// that element at any p. The input is not mutated.
//
// montanaflynn's Percentile uses nearest-rank semantics, which does not
// match this contract, so this one primitive is computed directly.
func Percentile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}

	idx := p / 100 * float64(n-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// Round1 rounds to one decimal place
func Round1(x float64) float64 {
	r, err := mstats.Round(x, 1)
	if err != nil {
		return 0
	}
	return r
}

// Clamp bounds x to [min, max]
func Clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
