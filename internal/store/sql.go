package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // embedded sqlite driver

	"github.com/ppiankov/veridex/internal/model"
)

// schema is portable across postgres and sqlite: timestamps as epoch
// milliseconds, instance lists as JSON text.
const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	publication          TEXT NOT NULL,
	article_type         TEXT NOT NULL DEFAULT '',
	truth_score          DOUBLE PRECISION NOT NULL,
	created_at_ms        BIGINT NOT NULL,
	evidence_quality     DOUBLE PRECISION NOT NULL,
	methodology_rigor    DOUBLE PRECISION NOT NULL,
	logical_structure    DOUBLE PRECISION NOT NULL,
	manipulation_absence DOUBLE PRECISION NOT NULL,
	primary_source_ratio DOUBLE PRECISION NOT NULL,
	deceptions           TEXT NOT NULL DEFAULT '[]',
	fallacies            TEXT NOT NULL DEFAULT '[]',
	fact_checks          TEXT NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS idx_analyses_publication ON analyses (publication);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses (created_at_ms);
`

// SQLStore is an AnalysisStore backed by postgres or embedded sqlite
type SQLStore struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
}

// Open connects to the database, bootstraps the schema, and returns the
// store. Supported drivers: "postgres", "sqlite".
func Open(driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == "postgres" {
		placeholder = sq.Dollar
	}

	return &SQLStore{
		db:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}, nil
}

// analysisRow is the flat row shape; JSON columns decode into the model slices
type analysisRow struct {
	Publication         string  `db:"publication"`
	ArticleType         string  `db:"article_type"`
	TruthScore          float64 `db:"truth_score"`
	CreatedAtMs         int64   `db:"created_at_ms"`
	EvidenceQuality     float64 `db:"evidence_quality"`
	MethodologyRigor    float64 `db:"methodology_rigor"`
	LogicalStructure    float64 `db:"logical_structure"`
	ManipulationAbsence float64 `db:"manipulation_absence"`
	PrimarySourceRatio  float64 `db:"primary_source_ratio"`
	Deceptions          []byte  `db:"deceptions"`
	Fallacies           []byte  `db:"fallacies"`
	FactChecks          []byte  `db:"fact_checks"`
}

func (r analysisRow) toRecord() model.AnalysisRecord {
	rec := model.AnalysisRecord{
		Publication: r.Publication,
		ArticleType: r.ArticleType,
		TruthScore:  r.TruthScore,
		CreatedAt:   time.UnixMilli(r.CreatedAtMs).UTC(),
		Breakdown: model.ScoreBreakdown{
			EvidenceQuality:     r.EvidenceQuality,
			MethodologyRigor:    r.MethodologyRigor,
			LogicalStructure:    r.LogicalStructure,
			ManipulationAbsence: r.ManipulationAbsence,
		},
		PrimarySourceRatio: r.PrimarySourceRatio,
	}
	// Malformed instance JSON degrades to empty lists, per the defensive
	// defaulting convention.
	_ = json.Unmarshal(r.Deceptions, &rec.Deceptions)
	_ = json.Unmarshal(r.Fallacies, &rec.Fallacies)
	_ = json.Unmarshal(r.FactChecks, &rec.FactChecks)
	return rec
}

var rowColumns = []string{
	"publication", "article_type", "truth_score", "created_at_ms",
	"evidence_quality", "methodology_rigor", "logical_structure",
	"manipulation_absence", "primary_source_ratio",
	"deceptions", "fallacies", "fact_checks",
}

func (s *SQLStore) selectAnalyses(ctx context.Context, f Filter, publication string) ([]analysisRow, error) {
	q := s.builder.Select(rowColumns...).From("analyses").OrderBy("created_at_ms ASC")
	if publication != "" {
		q = q.Where(sq.Eq{"publication": publication})
	}
	if f.ArticleType != "" {
		q = q.Where(sq.Eq{"article_type": f.ArticleType})
	}
	if !f.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"created_at_ms": f.Since.UnixMilli()})
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []analysisRow
	if err := s.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("select analyses: %w", err)
	}
	return rows, nil
}

// AnalysesBySource returns matching analyses grouped by publication
func (s *SQLStore) AnalysesBySource(ctx context.Context, f Filter) (map[string][]model.AnalysisRecord, error) {
	rows, err := s.selectAnalyses(ctx, f, "")
	if err != nil {
		return nil, err
	}
	out := make(map[string][]model.AnalysisRecord)
	for _, row := range rows {
		out[row.Publication] = append(out[row.Publication], row.toRecord())
	}
	return out, nil
}

// SourceAnalyses returns one publication's matching analyses
func (s *SQLStore) SourceAnalyses(ctx context.Context, publication string, f Filter) ([]model.AnalysisRecord, error) {
	rows, err := s.selectAnalyses(ctx, f, publication)
	if err != nil {
		return nil, err
	}
	records := make([]model.AnalysisRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// AllTruthScores returns every truth score system-wide
func (s *SQLStore) AllTruthScores(ctx context.Context) ([]float64, error) {
	sqlStr, args, err := s.builder.Select("truth_score").From("analyses").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var scores []float64
	if err := s.db.SelectContext(ctx, &scores, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("select truth scores: %w", err)
	}
	return scores, nil
}

// SaveArticles normalizes and inserts article records
func (s *SQLStore) SaveArticles(ctx context.Context, articles []model.ArticleRecord) error {
	q := s.builder.Insert("analyses").Columns(rowColumns...)

	inserted := 0
	for _, art := range articles {
		for _, rec := range art.Records() {
			deceptions, err := json.Marshal(rec.Deceptions)
			if err != nil {
				return fmt.Errorf("marshal deceptions: %w", err)
			}
			fallacies, err := json.Marshal(rec.Fallacies)
			if err != nil {
				return fmt.Errorf("marshal fallacies: %w", err)
			}
			factChecks, err := json.Marshal(rec.FactChecks)
			if err != nil {
				return fmt.Errorf("marshal fact checks: %w", err)
			}
			q = q.Values(
				rec.Publication, rec.ArticleType, rec.TruthScore, rec.CreatedAt.UnixMilli(),
				rec.Breakdown.EvidenceQuality, rec.Breakdown.MethodologyRigor,
				rec.Breakdown.LogicalStructure, rec.Breakdown.ManipulationAbsence,
				rec.PrimarySourceRatio,
				string(deceptions), string(fallacies), string(factChecks),
			)
			inserted++
		}
	}
	if inserted == 0 {
		return nil
	}

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert analyses: %w", err)
	}
	return nil
}

// Close releases the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}
