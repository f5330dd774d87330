package store

import (
	"context"
	"testing"
	"time"

	"github.com/ppiankov/veridex/internal/model"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	s, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SaveArticles(ctx, []model.ArticleRecord{
		{
			Publication: "alpha",
			ArticleType: "news",
			Analyses: []model.RawAnalysis{
				{
					TruthScore: 72.0,
					CreatedAt:  "2026-01-10T08:00:00Z",
					Breakdown:  model.RawBreakdown{EvidenceQuality: 30.0, MethodologyRigor: 18.0},
					Fallacies:  []model.FallacyInstance{{Type: "strawman", Severity: model.SeverityHigh}},
					FactChecks: []model.FactCheckResult{{Claim: "x", Verification: model.VerifiedTrue}},
				},
				{TruthScore: 65.0, CreatedAt: "2026-01-01T08:00:00Z"},
			},
		},
		{
			Publication: "beta",
			Analyses: []model.RawAnalysis{
				{TruthScore: 40.0, CreatedAt: "2026-02-01T08:00:00Z"},
			},
		},
	})
	if err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}

	records, err := s.SourceAnalyses(ctx, "alpha", Filter{})
	if err != nil {
		t.Fatalf("SourceAnalyses: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records for alpha, want 2", len(records))
	}
	// Rows come back ordered by creation time
	if !records[0].CreatedAt.Before(records[1].CreatedAt) {
		t.Errorf("records not in chronological order: %v, %v", records[0].CreatedAt, records[1].CreatedAt)
	}

	got := records[1]
	if got.TruthScore != 72 || got.ArticleType != "news" {
		t.Errorf("record = %+v, want truth score 72 and type news", got)
	}
	if !got.CreatedAt.Equal(time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v, want 2026-01-10T08:00:00Z", got.CreatedAt)
	}
	if got.Breakdown.EvidenceQuality != 30 || got.Breakdown.MethodologyRigor != 18 {
		t.Errorf("Breakdown = %+v, want evidence 30 and rigor 18", got.Breakdown)
	}
	if len(got.Fallacies) != 1 || got.Fallacies[0].Severity != model.SeverityHigh {
		t.Errorf("Fallacies = %+v, want the strawman back", got.Fallacies)
	}
	if len(got.FactChecks) != 1 || got.FactChecks[0].Verification != model.VerifiedTrue {
		t.Errorf("FactChecks = %+v, want the verified claim back", got.FactChecks)
	}
}

func TestSQLStoreGroupingAndFilters(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SaveArticles(ctx, []model.ArticleRecord{
		{Publication: "alpha", ArticleType: "news", Analyses: []model.RawAnalysis{
			{TruthScore: 70.0, CreatedAt: "2026-01-01T00:00:00Z"},
			{TruthScore: 75.0, CreatedAt: "2026-03-01T00:00:00Z"},
		}},
		{Publication: "beta", ArticleType: "opinion", Analyses: []model.RawAnalysis{
			{TruthScore: 55.0, CreatedAt: "2026-02-01T00:00:00Z"},
		}},
	})
	if err != nil {
		t.Fatalf("SaveArticles: %v", err)
	}

	grouped, err := s.AnalysesBySource(ctx, Filter{})
	if err != nil {
		t.Fatalf("AnalysesBySource: %v", err)
	}
	if len(grouped) != 2 || len(grouped["alpha"]) != 2 {
		t.Errorf("grouped = %d pubs, alpha %d records; want 2 and 2", len(grouped), len(grouped["alpha"]))
	}

	newsOnly, err := s.AnalysesBySource(ctx, Filter{ArticleType: "news"})
	if err != nil {
		t.Fatalf("AnalysesBySource: %v", err)
	}
	if len(newsOnly) != 1 || len(newsOnly["alpha"]) != 2 {
		t.Errorf("news filter = %v pubs, want only alpha", len(newsOnly))
	}

	recent, err := s.AnalysesBySource(ctx, Filter{Since: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)})
	if err != nil {
		t.Fatalf("AnalysesBySource: %v", err)
	}
	// Inclusive cutoff: beta's 2026-02-01 record and alpha's March record
	if len(recent["alpha"]) != 1 || len(recent["beta"]) != 1 {
		t.Errorf("since filter = alpha:%d beta:%d, want 1 and 1", len(recent["alpha"]), len(recent["beta"]))
	}

	scores, err := s.AllTruthScores(ctx)
	if err != nil {
		t.Fatalf("AllTruthScores: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("got %d truth scores, want 3", len(scores))
	}
}

func TestSQLStoreSaveNothing(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveArticles(context.Background(), nil); err != nil {
		t.Errorf("SaveArticles(nil) = %v, want nil", err)
	}
	if err := s.SaveArticles(context.Background(), []model.ArticleRecord{{Publication: "empty"}}); err != nil {
		t.Errorf("SaveArticles with no analyses = %v, want nil", err)
	}
}
