// Package llm generates optional natural-language summaries of computed
// source reports. Summaries are produced after grading and can never affect
// a score: the provider only ever sees the finished SourceStats.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/veridex/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a summary of a computed source report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Stats is the finished source report to summarize
	Stats model.SourceStats

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the summary output
type SummarizeResponse struct {
	// Summary is the generated markdown text
	Summary string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// BuildPrompt renders a source report into the default summarization prompt.
// The prompt forbids the model from inventing numbers: every figure it may
// mention is stated here.
func BuildPrompt(s model.SourceStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are summarizing a source-credibility report for the publication %q.
The report was computed statistically; do NOT invent, adjust, or re-derive any number.
Use only the figures below. Keep the summary under 200 words of plain markdown.

`, s.Publication)

	fmt.Fprintf(&b, "Grade: %s (displayed as %q, confidence %s)\n", s.Grade, s.GradeDisplay, s.Bayesian.GradeConfidence)
	fmt.Fprintf(&b, "Composite score: %.1f/100 (penalty %.1f)\n", s.NumericScore, s.Penalty.Amount)
	fmt.Fprintf(&b, "Analyses: %d (effective sample size %.1f)\n", s.ArticleCount, s.Bayesian.EffectiveSampleSize)
	fmt.Fprintf(&b, "Shrunk truth score: %.1f, credible interval [%.1f, %.1f]\n",
		s.Bayesian.ShrunkScore, s.Bayesian.CredibleInterval.Lower, s.Bayesian.CredibleInterval.Upper)
	fmt.Fprintf(&b, "Components: logic %.1f, methodology %.1f, factual %.1f, manipulation-absence %.1f, consistency %.1f\n",
		s.Components.LogicalStructure, s.Components.MethodologyRigor, s.Components.FactualReliability,
		s.Components.ManipulationAbsence, s.Components.Consistency)
	fmt.Fprintf(&b, "Trend: %s", s.Trend.Direction)
	if s.Trend.Change30Days != nil {
		fmt.Fprintf(&b, " (30-day change %+.1f)", *s.Trend.Change30Days)
	}
	b.WriteString("\n")

	if len(s.TopFallacyTypes) > 0 {
		b.WriteString("Most common fallacies:")
		for _, t := range s.TopFallacyTypes {
			fmt.Fprintf(&b, " %s (%d)", t.Type, t.Count)
		}
		b.WriteString("\n")
	}
	if len(s.TopDeceptionTypes) > 0 {
		b.WriteString("Most common deception techniques:")
		for _, t := range s.TopDeceptionTypes {
			fmt.Fprintf(&b, " %s (%d)", t.Type, t.Count)
		}
		b.WriteString("\n")
	}
	if s.FactChecks.Total > 0 {
		fmt.Fprintf(&b, "Fact checks: %d total, accuracy rate %.1f%%\n", s.FactChecks.Total, s.FactChecks.AccuracyRate)
	}

	return b.String()
}
