// Package render formats engine output for the CLI: a ranking table for
// source lists and a markdown report for a single source.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ppiankov/veridex/internal/engine"
	"github.com/ppiankov/veridex/internal/model"
)

// Table writes the ranked source list as an aligned text table
func Table(w io.Writer, res *engine.Result) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "PUBLICATION\tGRADE\tSCORE\tARTICLES\tCONFIDENCE\tTREND\tLAST ANALYSIS")
	for _, s := range res.Sources {
		fmt.Fprintf(tw, "%s\t%s\t%.1f\t%d\t%s\t%s\t%s\n",
			s.Publication,
			s.GradeDisplay,
			s.NumericScore,
			s.ArticleCount,
			s.Bayesian.GradeConfidence,
			s.Trend.Direction,
			s.LastAnalysisAt.Format("2006-01-02"),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d of %d sources shown, global mean truth score %.1f\n",
		len(res.Sources), res.Total, res.GlobalMean)
	return nil
}

// Markdown renders one source's full report
func Markdown(s *model.SourceStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Publication)
	fmt.Fprintf(&b, "**Grade: %s** (%.1f/100, confidence %s)\n\n", s.GradeDisplay, s.NumericScore, s.Bayesian.GradeConfidence)

	fmt.Fprintf(&b, "- Analyses: %d (%s to %s)\n",
		s.ArticleCount, formatDate(s.FirstAnalysisAt), formatDate(s.LastAnalysisAt))
	fmt.Fprintf(&b, "- Truth score: raw mean %.1f, shrunk %.1f, 95%% credible interval [%.1f, %.1f]\n",
		s.Bayesian.RawMean, s.Bayesian.ShrunkScore, s.Bayesian.CredibleInterval.Lower, s.Bayesian.CredibleInterval.Upper)
	fmt.Fprintf(&b, "- Effective sample size: %.1f of %d\n", s.Bayesian.EffectiveSampleSize, s.Bayesian.SampleSize)
	if s.Penalty.Amount > 0 {
		fmt.Fprintf(&b, "- Penalty: %.1f (%s)\n", s.Penalty.Amount, s.Penalty.Reason)
	}
	fmt.Fprintf(&b, "- Trend: %s", s.Trend.Direction)
	if s.Trend.Change30Days != nil {
		fmt.Fprintf(&b, ", 30-day change %+.1f", *s.Trend.Change30Days)
	}
	if s.Trend.Change90Days != nil {
		fmt.Fprintf(&b, ", 90-day change %+.1f", *s.Trend.Change90Days)
	}
	b.WriteString("\n\n")

	b.WriteString("## Components\n\n")
	fmt.Fprintf(&b, "| Component | Score |\n|---|---|\n")
	fmt.Fprintf(&b, "| Logical structure | %.1f |\n", s.Components.LogicalStructure)
	fmt.Fprintf(&b, "| Methodology rigor | %.1f |\n", s.Components.MethodologyRigor)
	fmt.Fprintf(&b, "| Factual reliability | %.1f |\n", s.Components.FactualReliability)
	fmt.Fprintf(&b, "| Manipulation absence | %.1f |\n", s.Components.ManipulationAbsence)
	fmt.Fprintf(&b, "| Consistency | %.1f |\n", s.Components.Consistency)

	if len(s.TopFallacyTypes) > 0 || len(s.TopDeceptionTypes) > 0 {
		b.WriteString("\n## Recurring problems\n\n")
		for _, t := range s.TopFallacyTypes {
			fmt.Fprintf(&b, "- Fallacy: %s (%d)\n", t.Type, t.Count)
		}
		for _, t := range s.TopDeceptionTypes {
			fmt.Fprintf(&b, "- Deception: %s (%d)\n", t.Type, t.Count)
		}
	}

	if s.FactChecks.Total > 0 {
		b.WriteString("\n## Fact checks\n\n")
		fmt.Fprintf(&b, "%d checked: %d true, %d false, %d partial, %d unverifiable (accuracy %.1f%%)\n",
			s.FactChecks.Total, s.FactChecks.VerifiedTrue, s.FactChecks.VerifiedFalse,
			s.FactChecks.PartiallyVerified, s.FactChecks.Unverifiable, s.FactChecks.AccuracyRate)
	}

	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02")
}
