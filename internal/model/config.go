package model

import "time"

// Config is the complete veridex configuration
type Config struct {
	Store       StoreConfig       `yaml:"store"`
	Prior       PriorConfig       `yaml:"prior"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	LLM         LLMConfig         `yaml:"llm"`
	Output      OutputConfig      `yaml:"output"`
}

// StoreConfig selects the analysis store backend
type StoreConfig struct {
	// Driver: "sqlite" (embedded) or "postgres"
	Driver string `yaml:"driver"`

	// DSN: connection string; for sqlite, a file path
	// (default: ~/.veridex/veridex.db)
	DSN string `yaml:"dsn"`
}

// PriorConfig controls the cached global prior
type PriorConfig struct {
	// TTL bounds how stale the cached prior may be
	TTL time.Duration `yaml:"ttl"`

	// Mean and Variance are the fallback prior when no analyses exist
	Mean     float64 `yaml:"mean"`
	Variance float64 `yaml:"variance"`
}

// ConcurrencyConfig bounds the per-source fan-out
type ConcurrencyConfig struct {
	SourceWorkers int `yaml:"source_workers"`
}

// LLMConfig configures the optional report summarizer.
// Summaries are generated after scoring and never affect any score.
type LLMConfig struct {
	// Provider: "openai" or "" (disabled)
	Provider string `yaml:"provider"`

	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"` // from environment only, never persisted
	BaseURL string `yaml:"base_url"`

	// Timeout for API requests, seconds
	Timeout int `yaml:"timeout"`

	MaxTokens int `yaml:"max_tokens"`

	// RequestsPerMinute rate-limits summary calls
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
}

// OutputConfig controls CLI output
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	prior := DefaultGlobalPrior()
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
		},
		Prior: PriorConfig{
			TTL:      time.Hour,
			Mean:     prior.Mean,
			Variance: prior.Variance,
		},
		Concurrency: ConcurrencyConfig{
			SourceWorkers: 4,
		},
		LLM: LLMConfig{
			Provider:          "", // disabled by default
			Timeout:           30,
			MaxTokens:         1000,
			RequestsPerMinute: 20,
		},
	}
}
