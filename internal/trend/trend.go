// Package trend derives score-movement signals from a source's
// chronological analysis history.
package trend

import (
	"sort"
	"time"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/stats"
)

// minTrendSamples is the history length below which no deltas are computed
const minTrendSamples = 5

// sparklineLength caps the sparkline at the most recent scores
const sparklineLength = 20

// Improvement dead band: 30-day deltas within ±3 points read as stable
const directionThreshold = 3.0

// Analyze computes 30/90-day score deltas, a direction, and a sparkline.
// Fewer than five analyses always yields a stable direction with nil deltas
// and the full raw score sequence as the sparkline.
func Analyze(records []model.AnalysisRecord, now time.Time) model.Trend {
	sorted := make([]model.AnalysisRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	scores := make([]float64, len(sorted))
	for i, r := range sorted {
		scores[i] = r.TruthScore
	}

	if len(sorted) < minTrendSamples {
		return model.Trend{
			Direction: model.TrendStable,
			Sparkline: scores,
		}
	}

	var last30, days30to90, last90, before90 []float64
	for _, r := range sorted {
		age := now.Sub(r.CreatedAt)
		switch {
		case age <= 30*24*time.Hour:
			last30 = append(last30, r.TruthScore)
			last90 = append(last90, r.TruthScore)
		case age <= 90*24*time.Hour:
			days30to90 = append(days30to90, r.TruthScore)
			last90 = append(last90, r.TruthScore)
		default:
			before90 = append(before90, r.TruthScore)
		}
	}

	change30 := bucketDelta(last30, days30to90)
	change90 := bucketDelta(last90, before90)

	sparkline := scores
	if len(sparkline) > sparklineLength {
		sparkline = sparkline[len(sparkline)-sparklineLength:]
	}

	return model.Trend{
		Direction:    direction(change30),
		Change30Days: change30,
		Change90Days: change90,
		Sparkline:    sparkline,
	}
}

// bucketDelta is the recent-minus-older mean difference, nil when either
// bucket is empty
func bucketDelta(recent, older []float64) *float64 {
	if len(recent) == 0 || len(older) == 0 {
		return nil
	}
	d := stats.Round1(stats.Mean(recent) - stats.Mean(older))
	return &d
}

func direction(change30 *float64) model.TrendDirection {
	if change30 == nil {
		return model.TrendStable
	}
	switch {
	case *change30 > directionThreshold:
		return model.TrendImproving
	case *change30 < -directionThreshold:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}
