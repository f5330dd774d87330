package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/ppiankov/veridex/internal/model"
)

// Summarizer wraps a provider with rate limiting
type Summarizer struct {
	provider Provider
	limiter  *rate.Limiter
	config   model.LLMConfig
}

// NewSummarizer creates a summarizer from the configuration. Only the
// "openai" provider (and OpenAI-compatible endpoints via BaseURL) is
// supported.
func NewSummarizer(config model.LLMConfig) (*Summarizer, error) {
	if config.Provider != "openai" {
		return nil, fmt.Errorf("unsupported LLM provider: %q", config.Provider)
	}

	provider, err := NewOpenAIProvider(config)
	if err != nil {
		return nil, err
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 20
	}

	return &Summarizer{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rpm/60), 1),
		config:   config,
	}, nil
}

// GenerateSummary produces a markdown summary of a finished source report.
// Called after grading; the result is presented beside the numeric fields,
// never merged into them.
func (s *Summarizer) GenerateSummary(ctx context.Context, stats model.SourceStats) (*SummarizeResponse, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Stats:     stats,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s summarize: %w", s.provider.Name(), err)
	}
	return resp, nil
}
