package score

import (
	"testing"

	"github.com/ppiankov/veridex/internal/model"
)

func TestToGrade(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{93, "A"},
		{92.9, "A-"},
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
		{59.9, "F"},
		{0, "F"},
	}
	for _, c := range cases {
		if got := ToGrade(c.score); got != c.want {
			t.Errorf("ToGrade(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestSmallSamplePenalty(t *testing.T) {
	for n := 0; n < 20; n++ {
		p := SmallSamplePenalty(n)
		if p.Amount <= 0 {
			t.Errorf("n=%d: penalty %v, want strictly positive", n, p.Amount)
		}
		if p.Reason == "" {
			t.Errorf("n=%d: penalty without a reason", n)
		}
	}
	if p := SmallSamplePenalty(20); p.Amount != 0 {
		t.Errorf("n=20: penalty %v, want 0", p.Amount)
	}
	if p := SmallSamplePenalty(100); p.Amount != 0 {
		t.Errorf("n=100: penalty %v, want 0", p.Amount)
	}

	// 10*(1 - 10/20) = 5
	if p := SmallSamplePenalty(10); p.Amount != 5 {
		t.Errorf("n=10: penalty %v, want 5", p.Amount)
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		confidence model.GradeConfidence
		want       string
	}{
		{model.ConfidenceHigh, "B+"},
		{model.ConfidenceMedium, "B+ ±"},
		{model.ConfidenceLow, "~B+"},
		{model.ConfidenceInsufficient, "N/R"},
	}
	for _, c := range cases {
		if got := Display("B+", c.confidence); got != c.want {
			t.Errorf("Display(B+, %v) = %q, want %q", c.confidence, got, c.want)
		}
	}
}

func TestCompose(t *testing.T) {
	components := model.ComponentScores{
		LogicalStructure:    90,
		MethodologyRigor:    80,
		FactualReliability:  85,
		ManipulationAbsence: 95,
		Consistency:         70,
	}
	// 0.30*90 + 0.20*80 + 0.25*85 + 0.15*95 + 0.10*70 = 85.5
	got := Compose(components, 25, model.ConfidenceHigh)

	if got.BaseScore != 85.5 {
		t.Errorf("BaseScore = %v, want 85.5", got.BaseScore)
	}
	if got.Penalty.Amount != 0 {
		t.Errorf("Penalty = %v, want 0 for n=25", got.Penalty.Amount)
	}
	if got.FinalScore != 85.5 {
		t.Errorf("FinalScore = %v, want 85.5", got.FinalScore)
	}
	if got.Grade != "B" {
		t.Errorf("Grade = %q, want B", got.Grade)
	}
	if got.Display != "B" {
		t.Errorf("Display = %q, want bare grade at HIGH confidence", got.Display)
	}
}

func TestComposeAppliesPenalty(t *testing.T) {
	components := model.ComponentScores{
		LogicalStructure:    90,
		MethodologyRigor:    80,
		FactualReliability:  85,
		ManipulationAbsence: 95,
		Consistency:         70,
	}
	// Same 85.5 base, n=10 penalty of 5 -> 80.5 -> B-
	got := Compose(components, 10, model.ConfidenceLow)

	if got.FinalScore != 80.5 {
		t.Errorf("FinalScore = %v, want 80.5", got.FinalScore)
	}
	if got.Grade != "B-" {
		t.Errorf("Grade = %q, want B-", got.Grade)
	}
	if got.Display != "~B-" {
		t.Errorf("Display = %q, want ~B-", got.Display)
	}
}

func TestComposeFloorsAtZero(t *testing.T) {
	got := Compose(model.ComponentScores{}, 0, model.ConfidenceInsufficient)
	if got.FinalScore != 0 {
		t.Errorf("FinalScore = %v, want 0", got.FinalScore)
	}
	if got.Grade != "F" {
		t.Errorf("Grade = %q, want F", got.Grade)
	}
	if got.Display != "N/R" {
		t.Errorf("Display = %q, want N/R regardless of letter", got.Display)
	}
}
