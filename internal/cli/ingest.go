package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/veridex/internal/model"
)

var ingestTimeout time.Duration

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Load article analysis records into the store",
	Long: `Ingest reads a JSON or YAML file of article records (analyses grouped
by publication) and stores them. Loosely typed upstream fields - string-encoded
numbers, epoch or ISO timestamps, missing breakdown fields - are normalized
once at this boundary; missing sub-scores default to their range midpoints.

Example:
  veridex ingest analyses.json
  veridex ingest backfill.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 60*time.Second, "overall ingest timeout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), ingestTimeout)
	defer cancel()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var articles []model.ArticleRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &articles); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &articles); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if len(articles) == 0 {
		return fmt.Errorf("%s contains no article records", path)
	}

	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.SaveArticles(ctx, articles); err != nil {
		return fmt.Errorf("save articles: %w", err)
	}

	analyses := 0
	for _, a := range articles {
		analyses += len(a.Analyses)
	}
	fmt.Printf("Ingested %d analyses across %d articles\n", analyses, len(articles))
	return nil
}
