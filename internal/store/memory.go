package store

import (
	"context"
	"sync"

	"github.com/ppiankov/veridex/internal/model"
)

// MemoryStore is an in-memory AnalysisStore, used in tests and for
// file-backed demo data
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]model.AnalysisRecord
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]model.AnalysisRecord)}
}

// Add appends already-normalized records, grouping by publication
func (s *MemoryStore) Add(records ...model.AnalysisRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range records {
		s.records[rec.Publication] = append(s.records[rec.Publication], rec)
	}
}

// AnalysesBySource returns matching analyses grouped by publication
func (s *MemoryStore) AnalysesBySource(_ context.Context, f Filter) (map[string][]model.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]model.AnalysisRecord)
	for pub, recs := range s.records {
		for _, rec := range recs {
			if f.Matches(rec) {
				out[pub] = append(out[pub], rec)
			}
		}
	}
	return out, nil
}

// SourceAnalyses returns one publication's matching analyses
func (s *MemoryStore) SourceAnalyses(_ context.Context, publication string, f Filter) ([]model.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.AnalysisRecord
	for _, rec := range s.records[publication] {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// AllTruthScores returns every truth score system-wide
func (s *MemoryStore) AllTruthScores(_ context.Context) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var scores []float64
	for _, recs := range s.records {
		for _, rec := range recs {
			scores = append(scores, rec.TruthScore)
		}
	}
	return scores, nil
}

// SaveArticles ingests article records after normalization
func (s *MemoryStore) SaveArticles(_ context.Context, articles []model.ArticleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, art := range articles {
		for _, rec := range art.Records() {
			s.records[rec.Publication] = append(s.records[rec.Publication], rec)
		}
	}
	return nil
}

// Close is a no-op for the in-memory store
func (s *MemoryStore) Close() error { return nil }
