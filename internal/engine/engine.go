// Package engine orchestrates the source-credibility pipeline: it pulls each
// publication's analysis history, runs the effective-sample-size, Bayesian,
// component, and trend computations in order, and returns ranked SourceStats.
package engine

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ppiankov/veridex/internal/bayes"
	"github.com/ppiankov/veridex/internal/cache"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/score"
	"github.com/ppiankov/veridex/internal/stats"
	"github.com/ppiankov/veridex/internal/store"
	"github.com/ppiankov/veridex/internal/trend"
	"github.com/ppiankov/veridex/internal/worker"
)

// topTypeCount caps the reported deception/fallacy type lists
const topTypeCount = 3

// Engine computes per-source credibility statistics. All state beyond the
// injected collaborators is per-call; only the global prior is cached, with
// a bounded TTL. Concurrent prior refreshes may race; the computation is
// idempotent, so a race wastes one redundant read and corrupts nothing.
type Engine struct {
	store        store.AnalysisStore
	cache        cache.Cache
	priorTTL     time.Duration
	defaultPrior model.GlobalPrior
	workers      int
	now          func() time.Time
}

// Option customizes an Engine
type Option func(*Engine)

// WithCache injects the prior cache (a fresh memory cache by default)
func WithCache(c cache.Cache) Option {
	return func(e *Engine) { e.cache = c }
}

// WithPriorTTL bounds how stale the cached global prior may be
func WithPriorTTL(ttl time.Duration) Option {
	return func(e *Engine) { e.priorTTL = ttl }
}

// WithDefaultPrior overrides the no-data prior
func WithDefaultPrior(p model.GlobalPrior) Option {
	return func(e *Engine) { e.defaultPrior = p }
}

// WithWorkers bounds the per-source fan-out
func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

// WithClock injects the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given analysis store
func New(st store.AnalysisStore, opts ...Option) *Engine {
	e := &Engine{
		store:        st,
		priorTTL:     time.Hour,
		defaultPrior: model.DefaultGlobalPrior(),
		workers:      4,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.cache == nil {
		e.cache = cache.NewMemoryCache(e.priorTTL, 10*time.Minute)
	}
	return e
}

// GlobalPrior returns the system-wide truth-score mean/variance, recomputing
// it at most once per TTL window. With fewer than two analyses system-wide
// the default prior applies.
func (e *Engine) GlobalPrior(ctx context.Context) (model.GlobalPrior, error) {
	if v, ok := e.cache.Get(cache.GlobalPriorKey); ok {
		if prior, ok := v.(model.GlobalPrior); ok {
			return prior, nil
		}
	}

	scores, err := e.store.AllTruthScores(ctx)
	if err != nil {
		return model.GlobalPrior{}, fmt.Errorf("load truth scores: %w", err)
	}

	prior := e.defaultPrior
	if len(scores) >= 2 {
		prior = model.GlobalPrior{
			Mean:     stats.Mean(scores),
			Variance: stats.Variance(scores),
		}
		// A degenerate system-wide variance would break the shrinkage
		// weight; fall back to the default spread.
		if prior.Variance <= 0 {
			prior.Variance = e.defaultPrior.Variance
		}
	}

	e.cache.Set(cache.GlobalPriorKey, prior, e.priorTTL)
	return prior, nil
}

// SourceStats returns the ranked, paginated source list for a query.
// Publications with fewer analyses than MinArticles are silently excluded.
func (e *Engine) SourceStats(ctx context.Context, q Query) (*Result, error) {
	q = q.normalized()

	prior, err := e.GlobalPrior(ctx)
	if err != nil {
		return nil, err
	}

	grouped, err := e.store.AnalysesBySource(ctx, store.Filter{
		ArticleType: q.ArticleType,
		Since:       q.TimeRange.Since(e.now()),
	})
	if err != nil {
		return nil, fmt.Errorf("load analyses: %w", err)
	}

	type job struct {
		publication string
		records     []model.AnalysisRecord
	}
	jobs := make([]job, 0, len(grouped))
	for pub, recs := range grouped {
		if len(recs) < q.MinArticles {
			continue
		}
		jobs = append(jobs, job{publication: pub, records: recs})
	}

	var (
		mu      sync.Mutex
		sources = make([]model.SourceStats, 0, len(jobs))
	)
	tasks := make([]worker.Task, len(jobs))
	for i := range jobs {
		j := jobs[i]
		tasks[i] = func(context.Context) {
			s := e.computeSource(j.publication, j.records, prior)
			mu.Lock()
			sources = append(sources, s)
			mu.Unlock()
		}
	}
	worker.NewPool(e.workers).Run(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sortSources(sources, q.SortBy, q.SortOrder)

	total := len(sources)
	page := sources[min(q.Offset, total):]
	if len(page) > q.Limit {
		page = page[:q.Limit]
	}

	return &Result{
		Sources:    page,
		Total:      total,
		GlobalMean: stats.Round1(prior.Mean),
	}, nil
}

// SourceStatsByPublication computes one publication's full report, or nil
// when the publication has no analyses.
func (e *Engine) SourceStatsByPublication(ctx context.Context, publication string) (*model.SourceStats, error) {
	prior, err := e.GlobalPrior(ctx)
	if err != nil {
		return nil, err
	}

	records, err := e.store.SourceAnalyses(ctx, publication, store.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load analyses for %q: %w", publication, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	s := e.computeSource(publication, records, prior)
	return &s, nil
}

// computeSource runs the full per-source pipeline. The pipeline is short and
// strictly sequential: primitives feed the shrinkage estimate, which feeds
// the composite grade.
func (e *Engine) computeSource(publication string, records []model.AnalysisRecord, prior model.GlobalPrior) model.SourceStats {
	sorted := make([]model.AnalysisRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	n := len(sorted)
	observations := make([]stats.Observation, n)
	evidenceQuality := make([]float64, n)
	methodologyRigor := make([]float64, n)
	primaryRatios := make([]float64, n)

	var (
		fallacies      []model.FallacyInstance
		deceptionCount int
		deceptionTypes = make(map[string]int)
		fallacyTypes   = make(map[string]int)
		articleTypes   = make(map[string]int)
		credibility    = make(map[string]int)
		factChecks     model.FactCheckSummary
	)

	for i, rec := range sorted {
		observations[i] = stats.Observation{At: rec.CreatedAt, Value: rec.TruthScore}
		evidenceQuality[i] = rec.Breakdown.EvidenceQuality
		methodologyRigor[i] = rec.Breakdown.MethodologyRigor
		primaryRatios[i] = rec.PrimarySourceRatio

		fallacies = append(fallacies, rec.Fallacies...)
		for _, f := range rec.Fallacies {
			fallacyTypes[f.Type]++
		}
		deceptionCount += len(rec.Deceptions)
		for _, d := range rec.Deceptions {
			deceptionTypes[d.Category]++
		}

		articleType := rec.ArticleType
		if articleType == "" {
			articleType = "unclassified"
		}
		articleTypes[articleType]++
		credibility[credibilityBand(rec.TruthScore)]++

		tallyFactChecks(&factChecks, rec.FactChecks)
	}
	finalizeFactChecks(&factChecks)

	bayesian := bayes.EstimateObservations(observations, prior)

	components := model.ComponentScores{
		LogicalStructure:    score.Logic(fallacies, n),
		MethodologyRigor:    score.Methodology(stats.Mean(evidenceQuality), stats.Mean(methodologyRigor), stats.Mean(primaryRatios), verifiedClaimRate(factChecks)),
		FactualReliability:  bayesian.ShrunkScore,
		ManipulationAbsence: score.ManipulationAbsence(deceptionCount, n),
		Consistency:         score.Consistency(bayesian.RawVariance),
	}

	composite := score.Compose(components, n, bayesian.GradeConfidence)

	return model.SourceStats{
		Publication:             publication,
		ArticleCount:            n,
		Bayesian:                bayesian,
		Grade:                   composite.Grade,
		GradeDisplay:            composite.Display,
		NumericScore:            composite.FinalScore,
		Components:              components,
		Penalty:                 composite.Penalty,
		CredibilityDistribution: credibility,
		ArticleTypeDistribution: articleTypes,
		TopDeceptionTypes:       topTypes(deceptionTypes, topTypeCount),
		TopFallacyTypes:         topTypes(fallacyTypes, topTypeCount),
		FactChecks:              factChecks,
		Trend:                   trend.Analyze(sorted, e.now()),
		FirstAnalysisAt:         sorted[0].CreatedAt,
		LastAnalysisAt:          sorted[n-1].CreatedAt,
	}
}

// credibilityBand buckets a truth score for the distribution summary
func credibilityBand(truthScore float64) string {
	switch {
	case truthScore >= 75:
		return "high"
	case truthScore >= 50:
		return "medium"
	case truthScore >= 25:
		return "low"
	default:
		return "very_low"
	}
}

func tallyFactChecks(sum *model.FactCheckSummary, checks []model.FactCheckResult) {
	for _, c := range checks {
		sum.Total++
		switch c.Verification {
		case model.VerifiedTrue:
			sum.VerifiedTrue++
		case model.VerifiedFalse:
			sum.VerifiedFalse++
		case model.PartiallyVerified:
			sum.PartiallyVerified++
		default:
			sum.Unverifiable++
		}
	}
}

// finalizeFactChecks computes the accuracy rate: fully verified claims count
// in full, partially verified count half
func finalizeFactChecks(sum *model.FactCheckSummary) {
	if sum.Total == 0 {
		return
	}
	rate := (float64(sum.VerifiedTrue) + 0.5*float64(sum.PartiallyVerified)) / float64(sum.Total)
	sum.AccuracyRate = stats.Round1(rate * 100)
}

// verifiedClaimRate is the 0-1 input to the methodology scorer
func verifiedClaimRate(sum model.FactCheckSummary) float64 {
	if sum.Total == 0 {
		return model.DefaultVerifiedClaimRate // midpoint default, no checks recorded
	}
	return (float64(sum.VerifiedTrue) + 0.5*float64(sum.PartiallyVerified)) / float64(sum.Total)
}

func topTypes(counts map[string]int, limit int) []model.TypeCount {
	out := make([]model.TypeCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, model.TypeCount{Type: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortSources(sources []model.SourceStats, by SortBy, order SortOrder) {
	less := func(a, b model.SourceStats) bool {
		switch by {
		case SortByArticles:
			if a.ArticleCount != b.ArticleCount {
				return a.ArticleCount < b.ArticleCount
			}
		case SortByRecent:
			if !a.LastAnalysisAt.Equal(b.LastAnalysisAt) {
				return a.LastAnalysisAt.Before(b.LastAnalysisAt)
			}
		default:
			if a.NumericScore != b.NumericScore {
				return a.NumericScore < b.NumericScore
			}
		}
		return a.Publication < b.Publication
	}

	sort.Slice(sources, func(i, j int) bool {
		if order == OrderAsc {
			return less(sources[i], sources[j])
		}
		return less(sources[j], sources[i])
	})
}
