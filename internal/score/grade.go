package score

import (
	"fmt"
	"math"

	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/stats"
)

// Component weights of the composite score
const (
	weightLogicalStructure    = 0.30
	weightMethodologyRigor    = 0.20
	weightFactualReliability  = 0.25
	weightManipulationAbsence = 0.15
	weightConsistency         = 0.10
)

// fullSampleSize is the history length at which the small-sample penalty
// reaches zero
const fullSampleSize = 20

// Composite is the graded result of combining the five components
type Composite struct {
	BaseScore  float64
	FinalScore float64
	Penalty    model.Penalty
	Grade      string
	Display    string
}

// gradeThreshold maps an inclusive lower bound to a letter grade,
// checked in descending order
type gradeThreshold struct {
	min   float64
	grade string
}

var gradeThresholds = []gradeThreshold{
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{63, "D"},
	{60, "D-"},
}

// Compose combines the weighted components, applies the small-sample
// penalty, and maps the result to a confidence-qualified letter grade.
func Compose(c model.ComponentScores, sampleSize int, confidence model.GradeConfidence) Composite {
	base := weightLogicalStructure*c.LogicalStructure +
		weightMethodologyRigor*c.MethodologyRigor +
		weightFactualReliability*c.FactualReliability +
		weightManipulationAbsence*c.ManipulationAbsence +
		weightConsistency*c.Consistency

	penalty := SmallSamplePenalty(sampleSize)
	final := stats.Round1(math.Max(0, base-penalty.Amount))
	grade := ToGrade(final)

	return Composite{
		BaseScore:  stats.Round1(base),
		FinalScore: final,
		Penalty:    penalty,
		Grade:      grade,
		Display:    Display(grade, confidence),
	}
}

// SmallSamplePenalty is 10*(1 - n/20) for n < 20, zero otherwise
func SmallSamplePenalty(sampleSize int) model.Penalty {
	if sampleSize >= fullSampleSize {
		return model.Penalty{}
	}
	amount := 10 * (1 - float64(sampleSize)/fullSampleSize)
	return model.Penalty{
		Amount: stats.Round1(amount),
		Reason: fmt.Sprintf("fewer than %d analyses (n=%d)", fullSampleSize, sampleSize),
	}
}

// ToGrade maps a 0-100 score to its letter grade
func ToGrade(score float64) string {
	for _, t := range gradeThresholds {
		if score >= t.min {
			return t.grade
		}
	}
	return "F"
}

// Display qualifies a grade with its confidence tier: HIGH shows the bare
// grade, MEDIUM appends " ±", LOW prefixes "~", and INSUFFICIENT renders as
// the non-ratable marker regardless of the computed letter.
func Display(grade string, confidence model.GradeConfidence) string {
	switch confidence {
	case model.ConfidenceHigh:
		return grade
	case model.ConfidenceMedium:
		return grade + " ±"
	case model.ConfidenceLow:
		return "~" + grade
	default:
		return "N/R"
	}
}
