// Package bayes estimates source credibility by shrinking a source's raw
// mean truth score toward the global prior (Bühlmann credibility weighting).
package bayes

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/stats"
)

// shrinkageScale calibrates K in Z = n/(n+K): a source exactly as noisy as
// the population needs about ten observations before its own mean dominates
// the prior.
const shrinkageScale = 10.0

// credibleZ is the two-sided 95% normal quantile
var credibleZ = distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

// EstimateScores computes the Bayesian source score from plain truth scores.
// Without timestamps the effective sample size equals n exactly; callers
// with timestamped history should prefer EstimateObservations.
func EstimateScores(scores []float64, prior model.GlobalPrior) model.BayesianSourceScore {
	return estimate(scores, stats.CountEffectiveSampleSize(scores), prior)
}

// EstimateObservations computes the Bayesian source score from timestamped
// observations, discounting bursty submissions via the temporal effective
// sample size. The discount tightens nothing: it only widens the credible
// interval and lowers the confidence tier relative to a well-spaced history
// of the same length.
func EstimateObservations(obs []stats.Observation, prior model.GlobalPrior) model.BayesianSourceScore {
	scores := make([]float64, len(obs))
	for i, o := range obs {
		scores[i] = o.Value
	}
	return estimate(scores, stats.TemporalEffectiveSampleSize(obs), prior)
}

func estimate(scores []float64, ess float64, prior model.GlobalPrior) model.BayesianSourceScore {
	if prior.Variance <= 0 {
		prior.Variance = model.DefaultGlobalPrior().Variance
	}

	n := len(scores)
	if n == 0 {
		// Maximal uncertainty: the prior is all we have.
		return model.BayesianSourceScore{
			RawMean:             prior.Mean,
			RawVariance:         prior.Variance,
			SampleSize:          0,
			ShrunkScore:         prior.Mean,
			CredibleInterval:    model.CredibleInterval{Lower: 0, Upper: 100},
			EffectiveSampleSize: 0,
			GradeConfidence:     model.ConfidenceInsufficient,
		}
	}

	rawMean := stats.Mean(scores)
	rawVariance := stats.Variance(scores)

	// Identical observations give zero sample variance; substitute the prior
	// variance so the posterior spread stays finite.
	observedVariance := rawVariance
	if observedVariance == 0 {
		observedVariance = prior.Variance
	}

	k := shrinkageScale * observedVariance / prior.Variance
	z := float64(n) / (float64(n) + k)
	shrunk := stats.Round1(z*rawMean + (1-z)*prior.Mean)
	// Rounding must not push the estimate outside the raw-mean/prior band.
	shrunk = stats.Clamp(shrunk, math.Min(rawMean, prior.Mean), math.Max(rawMean, prior.Mean))

	interval := credibleInterval(shrunk, ess, k, prior.Variance)

	return model.BayesianSourceScore{
		RawMean:             rawMean,
		RawVariance:         rawVariance,
		SampleSize:          n,
		ShrunkScore:         shrunk,
		CredibleInterval:    interval,
		EffectiveSampleSize: ess,
		GradeConfidence:     confidence(n, ess, rawVariance),
	}
}

// credibleInterval centers a 95% band on the shrunk score with posterior
// spread sqrt(priorVariance * (1 - Zeff)), where Zeff recomputes the
// credibility weight from the effective sample size. The spread is strictly
// decreasing in effective sample size and the interval always contains the
// shrunk score.
func credibleInterval(shrunk, ess, k, priorVariance float64) model.CredibleInterval {
	zeff := ess / (ess + k)
	spread := math.Sqrt(priorVariance * (1 - zeff))

	lower := stats.Clamp(stats.Round1(shrunk-credibleZ*spread), 0, 100)
	upper := stats.Clamp(stats.Round1(shrunk+credibleZ*spread), 0, 100)
	if lower > shrunk {
		lower = shrunk
	}
	if upper < shrunk {
		upper = shrunk
	}
	return model.CredibleInterval{Lower: lower, Upper: upper}
}

func confidence(n int, ess, rawVariance float64) model.GradeConfidence {
	switch {
	case n <= 1:
		return model.ConfidenceInsufficient
	case ess <= 10:
		return model.ConfidenceLow
	case ess < 30:
		return model.ConfidenceMedium
	case math.Sqrt(rawVariance) <= 15:
		return model.ConfidenceHigh
	default:
		return model.ConfidenceMedium
	}
}
