package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veridex/internal/engine"
	"github.com/ppiankov/veridex/internal/render"
)

var (
	minArticles  int
	timeRange    string
	articleType  string
	sortBy       string
	sortOrder    string
	limit        int
	offset       int
	sourcesJSON  bool
	queryTimeout time.Duration
)

// sourcesCmd represents the sources command
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Rank publications by credibility grade",
	Long: `Sources computes credibility statistics for every publication in the
store and returns a ranked, filterable list.

Example:
  veridex sources
  veridex sources --min-articles 5 --range 90d --sort articles
  veridex sources --type opinion --json`,
	RunE: runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)

	sourcesCmd.Flags().IntVar(&minArticles, "min-articles", 1, "exclude publications with fewer analyses")
	sourcesCmd.Flags().StringVar(&timeRange, "range", "all", "time range: all, 30d, 90d, 1y")
	sourcesCmd.Flags().StringVar(&articleType, "type", "", "restrict to one article type")
	sourcesCmd.Flags().StringVar(&sortBy, "sort", "grade", "sort key: grade, articles, recent")
	sourcesCmd.Flags().StringVar(&sortOrder, "order", "desc", "sort order: asc, desc")
	sourcesCmd.Flags().IntVar(&limit, "limit", 50, "page size")
	sourcesCmd.Flags().IntVar(&offset, "offset", 0, "page offset")
	sourcesCmd.Flags().BoolVar(&sourcesJSON, "json", false, "emit JSON instead of a table")
	sourcesCmd.Flags().DurationVar(&queryTimeout, "timeout", 30*time.Second, "overall query timeout")
}

func runSources(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	cfg := loadConfig()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	result, err := newEngine(cfg, st).SourceStats(ctx, engine.Query{
		MinArticles: minArticles,
		TimeRange:   engine.TimeRange(timeRange),
		ArticleType: articleType,
		SortBy:      engine.SortBy(sortBy),
		SortOrder:   engine.SortOrder(sortOrder),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return fmt.Errorf("compute source stats: %w", err)
	}

	if sourcesJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return render.Table(os.Stdout, result)
}
