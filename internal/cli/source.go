package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridex/internal/llm"
	"github.com/ppiankov/veridex/internal/render"
)

var (
	sourceJSON    bool
	llmEnabled    bool
	llmModel      string
	sourceTimeout time.Duration
)

// sourceCmd represents the source command
var sourceCmd = &cobra.Command{
	Use:   "source <publication>",
	Short: "Show one publication's full credibility report",
	Long: `Source computes the complete credibility report for a single
publication: Bayesian score, components, penalty, distributions, recurring
fallacies and deception techniques, fact-check performance, and trend.

With --llm, a natural-language summary is generated AFTER grading; the
summary can never change a score.

Example:
  veridex source "The Daily Ledger"
  veridex source example.com --json
  veridex source example.com --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runSource,
}

func init() {
	rootCmd.AddCommand(sourceCmd)

	sourceCmd.Flags().BoolVar(&sourceJSON, "json", false, "emit JSON instead of markdown")
	sourceCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM-generated summary")
	sourceCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	sourceCmd.Flags().DurationVar(&sourceTimeout, "timeout", 60*time.Second, "overall timeout")
}

func runSource(cmd *cobra.Command, args []string) error {
	publication := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), sourceTimeout)
	defer cancel()

	cfg := loadConfig()
	if llmEnabled {
		if cfg.LLM.Provider == "" {
			cfg.LLM.Provider = "openai"
		}
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		if cfg.LLM.APIKey == "" && cfg.LLM.BaseURL == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stats, err := newEngine(cfg, st).SourceStatsByPublication(ctx, publication)
	if err != nil {
		return fmt.Errorf("compute source stats: %w", err)
	}
	if stats == nil {
		return fmt.Errorf("no analyses found for publication %q", publication)
	}

	if sourceJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Println(render.Markdown(stats))

	if llmEnabled {
		summarizer, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			return err
		}
		resp, err := summarizer.GenerateSummary(ctx, *stats)
		if err != nil {
			// The report above is already complete; a failed summary is a
			// warning, not a failure.
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
			return nil
		}
		fmt.Printf("## Summary\n\n")
		fmt.Println(resp.Summary)
		if verbose {
			fmt.Fprintf(os.Stderr, "Summary model: %s, tokens: %d\n", resp.Model, resp.TokensUsed)
		}
	}
	return nil
}
