package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/time/rate"

	"github.com/ppiankov/veridex/internal/model"
)

func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name     string
	response *SummarizeResponse
	err      error
	lastReq  SummarizeRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

func TestNewSummarizerUnsupportedProvider(t *testing.T) {
	for _, provider := range []string{"", "anthropic", "bedrock"} {
		if _, err := NewSummarizer(model.LLMConfig{Provider: provider}); err == nil {
			t.Errorf("NewSummarizer(provider=%q) succeeded, want error", provider)
		}
	}
}

func TestNewSummarizerRequiresCredentials(t *testing.T) {
	if _, err := NewSummarizer(model.LLMConfig{Provider: "openai"}); err == nil {
		t.Error("NewSummarizer without API key or base URL succeeded, want error")
	}

	// A base URL alone is enough for OpenAI-compatible local endpoints
	s, err := NewSummarizer(model.LLMConfig{Provider: "openai", BaseURL: "http://localhost:11434/v1"})
	if err != nil {
		t.Fatalf("NewSummarizer with base URL: %v", err)
	}
	if s.provider.Name() != "openai" {
		t.Errorf("provider name = %q, want openai", s.provider.Name())
	}
}

func TestGenerateSummaryPassesConfig(t *testing.T) {
	mock := &MockProvider{
		name:     "mock",
		response: &SummarizeResponse{Summary: "fine", Model: "m", TokensUsed: 10},
	}
	s := &Summarizer{
		provider: mock,
		limiter:  newTestLimiter(),
		config:   model.LLMConfig{Model: "gpt-4o-mini", MaxTokens: 250},
	}

	resp, err := s.GenerateSummary(context.Background(), model.SourceStats{Publication: "alpha"})
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if resp.Summary != "fine" {
		t.Errorf("Summary = %q, want fine", resp.Summary)
	}
	if mock.lastReq.Model != "gpt-4o-mini" || mock.lastReq.MaxTokens != 250 {
		t.Errorf("request = model %q, max tokens %d; want configured values", mock.lastReq.Model, mock.lastReq.MaxTokens)
	}
	if mock.lastReq.Stats.Publication != "alpha" {
		t.Errorf("request stats publication = %q, want alpha", mock.lastReq.Stats.Publication)
	}
}

func TestGenerateSummaryWrapsProviderError(t *testing.T) {
	mock := &MockProvider{name: "mock", err: errors.New("boom")}
	s := &Summarizer{
		provider: mock,
		limiter:  newTestLimiter(),
	}

	_, err := s.GenerateSummary(context.Background(), model.SourceStats{})
	if err == nil {
		t.Fatal("GenerateSummary returned nil error")
	}
	if !strings.Contains(err.Error(), "mock") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want provider name and cause", err)
	}
}

func TestBuildPromptContainsReportFigures(t *testing.T) {
	change := 4.2
	stats := model.SourceStats{
		Publication:  "The Daily Ledger",
		ArticleCount: 12,
		Grade:        "B+",
		GradeDisplay: "B+ ±",
		NumericScore: 87.3,
		Bayesian: model.BayesianSourceScore{
			ShrunkScore:         84.1,
			EffectiveSampleSize: 9.4,
			CredibleInterval:    model.CredibleInterval{Lower: 71.2, Upper: 97.0},
			GradeConfidence:     model.ConfidenceMedium,
		},
		Trend:           model.Trend{Direction: model.TrendImproving, Change30Days: &change},
		TopFallacyTypes: []model.TypeCount{{Type: "strawman", Count: 3}},
		FactChecks:      model.FactCheckSummary{Total: 8, AccuracyRate: 87.5},
	}

	prompt := BuildPrompt(stats)
	for _, want := range []string{
		"The Daily Ledger",
		"B+ ±",
		"87.3",
		"84.1",
		"9.4",
		"71.2",
		"97.0",
		"improving",
		"+4.2",
		"strawman (3)",
		"87.5%",
		"do NOT invent",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
