package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/veridex/internal/engine"
	"github.com/ppiankov/veridex/internal/model"
	"github.com/ppiankov/veridex/internal/store"
)

// loadConfig merges file/env settings over the defaults
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("store.driver"); v != "" {
		cfg.Store.Driver = v
	}
	if v := viper.GetString("store.dsn"); v != "" {
		cfg.Store.DSN = v
	}
	if v := viper.GetDuration("prior.ttl"); v > 0 {
		cfg.Prior.TTL = v
	}
	if viper.IsSet("prior.mean") {
		cfg.Prior.Mean = viper.GetFloat64("prior.mean")
	}
	if viper.IsSet("prior.variance") {
		cfg.Prior.Variance = viper.GetFloat64("prior.variance")
	}
	if v := viper.GetInt("concurrency.source_workers"); v > 0 {
		cfg.Concurrency.SourceWorkers = v
	}
	if v := viper.GetString("llm.provider"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("llm.base_url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("llm.timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if v := viper.GetInt("llm.max_tokens"); v > 0 {
		cfg.LLM.MaxTokens = v
	}
	if v := viper.GetFloat64("llm.requests_per_minute"); v > 0 {
		cfg.LLM.RequestsPerMinute = v
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Output.Verbose = verbose

	return cfg
}

// openStore opens the configured analysis store. The default is an embedded
// sqlite database under ~/.veridex.
func openStore(cfg *model.Config) (store.AnalysisStore, error) {
	driver := cfg.Store.Driver
	dsn := cfg.Store.DSN

	switch driver {
	case "sqlite", "":
		driver = "sqlite"
		if dsn == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("find home directory: %w", err)
			}
			dir := filepath.Join(home, ".veridex")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
			dsn = filepath.Join(dir, "veridex.db")
		}
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", driver)
	}

	st, err := store.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Store: %s (%s)\n", driver, dsn)
	}
	return st, nil
}

// newEngine builds the engine from configuration
func newEngine(cfg *model.Config, st store.AnalysisStore) *engine.Engine {
	ttl := cfg.Prior.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return engine.New(st,
		engine.WithPriorTTL(ttl),
		engine.WithDefaultPrior(model.GlobalPrior{Mean: cfg.Prior.Mean, Variance: cfg.Prior.Variance}),
		engine.WithWorkers(cfg.Concurrency.SourceWorkers),
	)
}
