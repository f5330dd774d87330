// Package score turns per-article sub-metrics into the five normalized
// component scores and combines them into a letter grade.
package score

import (
	"math"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/stats"
)

// Per-instance fallacy deductions by severity, normalized by article count.
// A source averaging one medium fallacy per article loses 8 points.
const (
	fallacyDeductionLow    = 4.0
	fallacyDeductionMedium = 8.0
	fallacyDeductionHigh   = 12.0
)

// Methodology scores sourcing practice on a 0-100 scale:
//
//	(evidenceQuality/40)*40 + (methodologyRigor/25)*30 + primarySourceRate*15 + verifiedClaimRate*15
//
// Each term is independently monotonic in its input. Inputs are clamped to
// their documented ranges; the result is rounded to one decimal.
func Methodology(avgEvidenceQuality, avgMethodologyRigor, primarySourceRate, verifiedClaimRate float64) float64 {
	eq := stats.Clamp(avgEvidenceQuality, 0, 40)
	mr := stats.Clamp(avgMethodologyRigor, 0, 25)
	psr := stats.Clamp(primarySourceRate, 0, 1)
	vcr := stats.Clamp(verifiedClaimRate, 0, 1)

	s := (eq/40)*40 + (mr/25)*30 + psr*15 + vcr*15
	return stats.Round1(stats.Clamp(s, 0, 100))
}

// Logic starts at 100 and deducts a severity-scaled penalty per fallacy,
// normalized by the number of articles published. Unknown severities count
// as medium. Returns 0 when totalArticles is 0.
func Logic(fallacies []model.FallacyInstance, totalArticles int) float64 {
	if totalArticles <= 0 {
		return 0
	}

	var deduction float64
	for _, f := range fallacies {
		switch f.Severity {
		case model.SeverityLow:
			deduction += fallacyDeductionLow
		case model.SeverityHigh:
			deduction += fallacyDeductionHigh
		default:
			deduction += fallacyDeductionMedium
		}
	}

	s := 100 - deduction/float64(totalArticles)
	return stats.Round1(stats.Clamp(s, 0, 100))
}

// ManipulationAbsence rewards sources with few deception instances per
// article: max(0, 100 - (deceptionCount/n)*20)
func ManipulationAbsence(deceptionCount, totalArticles int) float64 {
	if totalArticles <= 0 {
		return 0
	}
	s := 100 - float64(deceptionCount)/float64(totalArticles)*20
	return stats.Round1(math.Max(0, s))
}

// Consistency rewards low score dispersion: max(0, 100 - sqrt(rawVariance)*4)
func Consistency(rawVariance float64) float64 {
	if rawVariance < 0 {
		rawVariance = 0
	}
	s := 100 - math.Sqrt(rawVariance)*4
	return stats.Round1(math.Max(0, s))
}
