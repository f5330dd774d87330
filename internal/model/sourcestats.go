package model

import "time"

// GlobalPrior is the system-wide belief about an unknown source before any
// of its articles have been analyzed: the mean and variance of every truth
// score in the system.
type GlobalPrior struct {
	Mean     float64 `json:"mean"`
	Variance float64 `json:"variance"`
}

// DefaultGlobalPrior is the prior used when no analyses exist yet
func DefaultGlobalPrior() GlobalPrior {
	return GlobalPrior{Mean: 50, Variance: 225}
}

// GradeConfidence qualifies how much evidence backs a grade
type GradeConfidence string

const (
	ConfidenceHigh         GradeConfidence = "HIGH"
	ConfidenceMedium       GradeConfidence = "MEDIUM"
	ConfidenceLow          GradeConfidence = "LOW"
	ConfidenceInsufficient GradeConfidence = "INSUFFICIENT"
)

// CredibleInterval is the Bayesian uncertainty band around a shrunk score
type CredibleInterval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// BayesianSourceScore is the shrinkage estimate for one source. Recomputed
// on every query, never cached.
type BayesianSourceScore struct {
	RawMean             float64          `json:"raw_mean"`
	RawVariance         float64          `json:"raw_variance"`
	SampleSize          int              `json:"sample_size"`
	ShrunkScore         float64          `json:"shrunk_score"`
	CredibleInterval    CredibleInterval `json:"credible_interval"`
	EffectiveSampleSize float64          `json:"effective_sample_size"`
	GradeConfidence     GradeConfidence  `json:"grade_confidence"`
}

// TrendDirection summarizes recent score movement
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// Trend holds 30/90-day score deltas and a sparkline of recent scores.
// Deltas are nil when a comparison window has no data.
type Trend struct {
	Direction    TrendDirection `json:"direction"`
	Change30Days *float64       `json:"change_30_days"`
	Change90Days *float64       `json:"change_90_days"`
	Sparkline    []float64      `json:"sparkline_data"`
}

// ComponentScores are the five weighted inputs to the composite grade,
// each on a 0-100 scale
type ComponentScores struct {
	LogicalStructure    float64 `json:"logical_structure"`
	MethodologyRigor    float64 `json:"methodology_rigor"`
	FactualReliability  float64 `json:"factual_reliability"`
	ManipulationAbsence float64 `json:"manipulation_absence"`
	Consistency         float64 `json:"consistency"`
}

// Penalty is the small-sample deduction applied to the composite score
type Penalty struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

// TypeCount is a category with its occurrence count
type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// FactCheckSummary aggregates fact-check outcomes across a source's articles
type FactCheckSummary struct {
	Total             int     `json:"total"`
	VerifiedTrue      int     `json:"verified_true"`
	VerifiedFalse     int     `json:"verified_false"`
	PartiallyVerified int     `json:"partially_verified"`
	Unverifiable      int     `json:"unverifiable"`
	AccuracyRate      float64 `json:"accuracy_rate"` // percentage, partial checks count half
}

// SourceStats is the engine's per-publication output: fully recomputed per
// query, returned, discarded.
type SourceStats struct {
	Publication             string              `json:"publication"`
	ArticleCount            int                 `json:"article_count"`
	Bayesian                BayesianSourceScore `json:"bayesian_score"`
	Grade                   string              `json:"grade"`
	GradeDisplay            string              `json:"grade_display"`
	NumericScore            float64             `json:"numeric_score"`
	Components              ComponentScores     `json:"components"`
	Penalty                 Penalty             `json:"penalty"`
	CredibilityDistribution map[string]int      `json:"credibility_distribution"`
	ArticleTypeDistribution map[string]int      `json:"article_type_distribution"`
	TopDeceptionTypes       []TypeCount         `json:"top_deception_types"`
	TopFallacyTypes         []TypeCount         `json:"top_fallacy_types"`
	FactChecks              FactCheckSummary    `json:"fact_check_summary"`
	Trend                   Trend               `json:"trend"`
	FirstAnalysisAt         time.Time           `json:"first_analysis_at"`
	LastAnalysisAt          time.Time           `json:"last_analysis_at"`
}
