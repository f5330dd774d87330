package stats

import (
	"sort"
	"time"
)

// Observation is a timestamped score
type Observation struct {
	At    time.Time
	Value float64
}

// Gap-bucket weights: the closer an observation follows its predecessor,
// the less independent information it carries.
const (
	weightUnderDay   = 0.3  // gap < 1 day
	weightUnderWeek  = 0.6  // 1-7 days
	weightUnderMonth = 0.85 // 7-30 days
	weightFull       = 1.0  // >= 30 days
)

// CountEffectiveSampleSize is the unweighted fallback when timestamps are
// unavailable: every observation counts fully.
func CountEffectiveSampleSize(scores []float64) float64 {
	return float64(len(scores))
}

// TemporalEffectiveSampleSize discounts temporally clustered observations.
// The first observation contributes 1; each subsequent one contributes a
// weight determined by the gap in days since its predecessor. Input order
// does not matter. Returns 0 for empty input, 1 for a single observation;
// the result is rounded to one decimal place.
func TemporalEffectiveSampleSize(obs []Observation) float64 {
	if len(obs) == 0 {
		return 0
	}
	if len(obs) == 1 {
		return 1
	}

	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].At.Before(sorted[j].At) })

	total := 1.0
	for i := 1; i < len(sorted); i++ {
		gapDays := sorted[i].At.Sub(sorted[i-1].At).Hours() / 24
		total += gapWeight(gapDays)
	}
	return Round1(total)
}

func gapWeight(days float64) float64 {
	switch {
	case days < 1:
		return weightUnderDay
	case days < 7:
		return weightUnderWeek
	case days < 30:
		return weightUnderMonth
	default:
		return weightFull
	}
}
