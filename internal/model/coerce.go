package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Default values for missing upstream fields. Midpoints rather than zeros,
// so sources with incomplete legacy data are not punished unfairly.
const (
	DefaultTruthScore          = 50.0
	DefaultEvidenceQuality     = 20.0
	DefaultMethodologyRigor    = 12.5
	DefaultLogicalStructure    = 10.0
	DefaultManipulationAbsence = 7.5
	DefaultPrimarySourceRatio  = 0.5
	DefaultVerifiedClaimRate   = 0.5
)

// RawAnalysis mirrors AnalysisRecord with loosely typed fields, as analysis
// records arrive from upstream: numbers may be string-encoded, timestamps may
// be epoch values or ISO strings, and breakdown fields may be absent. All
// coercion happens here, once; the scoring code only ever sees AnalysisRecord.
type RawAnalysis struct {
	TruthScore         any                 `json:"truth_score" yaml:"truth_score"`
	CreatedAt          any                 `json:"created_at" yaml:"created_at"`
	Breakdown          RawBreakdown        `json:"score_breakdown" yaml:"score_breakdown"`
	PrimarySourceRatio any                 `json:"primary_source_ratio" yaml:"primary_source_ratio"`
	Deceptions         []DeceptionInstance `json:"deception_instances" yaml:"deception_instances"`
	Fallacies          []FallacyInstance   `json:"fallacy_instances" yaml:"fallacy_instances"`
	FactChecks         []FactCheckResult   `json:"fact_check_results" yaml:"fact_check_results"`
}

// RawBreakdown is the loosely typed counterpart of ScoreBreakdown
type RawBreakdown struct {
	EvidenceQuality     any `json:"evidence_quality" yaml:"evidence_quality"`
	MethodologyRigor    any `json:"methodology_rigor" yaml:"methodology_rigor"`
	LogicalStructure    any `json:"logical_structure" yaml:"logical_structure"`
	ManipulationAbsence any `json:"manipulation_absence" yaml:"manipulation_absence"`
}

// Normalize coerces every field to its typed, range-clamped form,
// substituting midpoint defaults for anything missing or malformed.
func (r RawAnalysis) Normalize() AnalysisRecord {
	return AnalysisRecord{
		TruthScore: coerceFloat(r.TruthScore, DefaultTruthScore, 0, 100),
		CreatedAt:  coerceTime(r.CreatedAt),
		Breakdown: ScoreBreakdown{
			EvidenceQuality:     coerceFloat(r.Breakdown.EvidenceQuality, DefaultEvidenceQuality, 0, 40),
			MethodologyRigor:    coerceFloat(r.Breakdown.MethodologyRigor, DefaultMethodologyRigor, 0, 25),
			LogicalStructure:    coerceFloat(r.Breakdown.LogicalStructure, DefaultLogicalStructure, 0, 20),
			ManipulationAbsence: coerceFloat(r.Breakdown.ManipulationAbsence, DefaultManipulationAbsence, 0, 15),
		},
		PrimarySourceRatio: coerceFloat(r.PrimarySourceRatio, DefaultPrimarySourceRatio, 0, 1),
		Deceptions:         r.Deceptions,
		Fallacies:          r.Fallacies,
		FactChecks:         r.FactChecks,
	}
}

// coerceFloat accepts float64, int, json.Number or a numeric string and
// clamps the result to [min, max]. Anything else yields the default.
func coerceFloat(v any, def, min, max float64) float64 {
	f, ok := toFloat(v)
	if !ok {
		f = def
	}
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// coerceTime accepts time.Time, epoch seconds or milliseconds (numeric or
// string-encoded) and common ISO date layouts. Unparseable input yields the
// zero time; the engine sorts records, so zero times simply order first.
func coerceTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x.UTC()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range []string{
			time.RFC3339Nano,
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
		} {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return epochToTime(f)
		}
	default:
		if f, ok := toFloat(v); ok {
			return epochToTime(f)
		}
	}
	return time.Time{}
}

// epochToTime treats values above 1e12 as milliseconds, otherwise seconds
func epochToTime(f float64) time.Time {
	if f <= 0 {
		return time.Time{}
	}
	if f > 1e12 {
		return time.UnixMilli(int64(f)).UTC()
	}
	return time.Unix(int64(f), 0).UTC()
}
