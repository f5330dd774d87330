// Package store is the engine's only I/O boundary: query capabilities over
// the per-article analysis history. The engine depends on the AnalysisStore
// interface; SQL and in-memory implementations live here.
package store

import (
	"context"
	"time"

	"github.com/ppiankov/veridex/internal/model"
)

// Filter narrows an analysis query. Zero values mean "no constraint".
type Filter struct {
	// ArticleType restricts to one upstream article type
	ArticleType string

	// Since excludes analyses created before this instant
	Since time.Time
}

// Matches reports whether a record satisfies the filter
func (f Filter) Matches(rec model.AnalysisRecord) bool {
	if f.ArticleType != "" && rec.ArticleType != f.ArticleType {
		return false
	}
	if !f.Since.IsZero() && rec.CreatedAt.Before(f.Since) {
		return false
	}
	return true
}

// AnalysisStore is the read boundary the credibility engine consumes, plus
// the ingest path the CLI uses to populate it.
type AnalysisStore interface {
	// AnalysesBySource returns matching analyses grouped by publication
	AnalysesBySource(ctx context.Context, f Filter) (map[string][]model.AnalysisRecord, error)

	// SourceAnalyses returns one publication's matching analyses
	SourceAnalyses(ctx context.Context, publication string, f Filter) ([]model.AnalysisRecord, error)

	// AllTruthScores returns every truth score system-wide, for the global prior
	AllTruthScores(ctx context.Context) ([]float64, error)

	// SaveArticles ingests normalized article records
	SaveArticles(ctx context.Context, articles []model.ArticleRecord) error

	Close() error
}
