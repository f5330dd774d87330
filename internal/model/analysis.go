package model

import "time"

// VerificationOutcome classifies the result of a single fact-check
type VerificationOutcome string

const (
	VerifiedTrue      VerificationOutcome = "verified_true"
	VerifiedFalse     VerificationOutcome = "verified_false"
	PartiallyVerified VerificationOutcome = "partially_verified"
	Unverifiable      VerificationOutcome = "unverifiable"
)

// FallacySeverity indicates how damaging a logical fallacy is
type FallacySeverity string

const (
	SeverityLow    FallacySeverity = "low"
	SeverityMedium FallacySeverity = "medium"
	SeverityHigh   FallacySeverity = "high"
)

// ScoreBreakdown holds the per-article component sub-scores produced upstream.
// Each field has a fixed range enforced at the coercion boundary.
type ScoreBreakdown struct {
	EvidenceQuality     float64 `json:"evidence_quality" yaml:"evidence_quality"`         // 0-40
	MethodologyRigor    float64 `json:"methodology_rigor" yaml:"methodology_rigor"`       // 0-25
	LogicalStructure    float64 `json:"logical_structure" yaml:"logical_structure"`       // 0-20
	ManipulationAbsence float64 `json:"manipulation_absence" yaml:"manipulation_absence"` // 0-15
}

// DeceptionInstance records one manipulation technique detected in an article
type DeceptionInstance struct {
	Category string `json:"category" yaml:"category"`
}

// FallacyInstance records one logical fallacy detected in an article
type FallacyInstance struct {
	Type     string          `json:"type" yaml:"type"`
	Severity FallacySeverity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// FactCheckResult records the outcome of checking one claim in an article
type FactCheckResult struct {
	Claim        string              `json:"claim,omitempty" yaml:"claim,omitempty"`
	Verification VerificationOutcome `json:"verification" yaml:"verification"`
}

// AnalysisRecord is one per-article truth-score analysis, fully typed and
// range-checked. Records are produced upstream, normalized once at the
// boundary (see RawAnalysis) and never mutated by the engine.
type AnalysisRecord struct {
	Publication        string              `json:"publication" yaml:"publication"`
	ArticleType        string              `json:"article_type,omitempty" yaml:"article_type,omitempty"`
	TruthScore         float64             `json:"truth_score" yaml:"truth_score"` // 0-100
	CreatedAt          time.Time           `json:"created_at" yaml:"created_at"`
	Breakdown          ScoreBreakdown      `json:"score_breakdown" yaml:"score_breakdown"`
	PrimarySourceRatio float64             `json:"primary_source_ratio" yaml:"primary_source_ratio"` // 0-1
	Deceptions         []DeceptionInstance `json:"deception_instances,omitempty" yaml:"deception_instances,omitempty"`
	Fallacies          []FallacyInstance   `json:"fallacy_instances,omitempty" yaml:"fallacy_instances,omitempty"`
	FactChecks         []FactCheckResult   `json:"fact_check_results,omitempty" yaml:"fact_check_results,omitempty"`
}

// ArticleRecord groups raw analyses under one publication, as received from
// upstream ingest files. Analyses are loosely typed until normalized.
type ArticleRecord struct {
	Publication string        `json:"publication" yaml:"publication"`
	ArticleType string        `json:"article_type,omitempty" yaml:"article_type,omitempty"`
	Analyses    []RawAnalysis `json:"analyses" yaml:"analyses"`
}

// Records normalizes every raw analysis in the article, stamping each with
// the article's publication and type.
func (a ArticleRecord) Records() []AnalysisRecord {
	records := make([]AnalysisRecord, 0, len(a.Analyses))
	for _, raw := range a.Analyses {
		rec := raw.Normalize()
		rec.Publication = a.Publication
		rec.ArticleType = a.ArticleType
		records = append(records, rec)
	}
	return records
}
