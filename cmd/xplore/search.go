package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"xplore/pkg/logger"
	"xplore/pkg/ratelimit"
	"xplore/pkg/search"
	"xplore/pkg/tabular"
	"xplore/pkg/twitter"
)

var (
	searchOutput      string
	searchMaxPages    int
	searchMaxResults  int
	searchPageSize    int
	searchPartial     bool
	searchBearerToken string
	searchAccount     string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Collect recent tweets matching a keyword query",
	Long: `Search tweets from the last 7 days matching a query and export them
to CSV. The search paginates automatically until the API runs out of
results or a configured cap is hit.

A bearer token is required, through one of:
  - Stored credentials (use 'xplore auth login' to store)
  - The XPLORE_BEARER_TOKEN environment variable
  - The configuration file`,
	Example: `  # Collect tweets for a keyword
  xplore search "climate change"

  # Stop after two pages and write to a specific directory
  xplore search golang --max-pages 2 --output ./data

  # Keep what was collected if a later page fails
  xplore search golang --partial`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "output directory (default from config)")
	searchCmd.Flags().IntVar(&searchMaxPages, "max-pages", 0, "maximum number of pages to fetch")
	searchCmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "stop after collecting at least this many tweets")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "results per page (10-100)")
	searchCmd.Flags().BoolVar(&searchPartial, "partial", false, "keep collected pages when a later page fails")
	searchCmd.Flags().StringVar(&searchBearerToken, "bearer-token", "", "bearer token (overrides stored credentials)")
	searchCmd.Flags().StringVarP(&searchAccount, "account", "a", "", "use a specific stored credential")
}

func runSearch(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(args[0])

	flags := make(map[string]interface{})
	if searchOutput != "" {
		flags["output"] = searchOutput
	}
	if searchMaxPages > 0 {
		flags["max-pages"] = searchMaxPages
	}
	if searchMaxResults > 0 {
		flags["max-results"] = searchMaxResults
	}
	if searchPageSize > 0 {
		flags["page-size"] = searchPageSize
	}
	if searchPartial {
		flags["partial"] = true
	}
	if searchBearerToken != "" {
		flags["bearer-token"] = searchBearerToken
	}

	cfg, err := loadConfig(flags)
	exitOnError(err)
	exitOnError(resolveBearerToken(cfg, searchAccount))

	client, err := twitter.NewClientFromConfig(cfg, logger.GetLogger())
	exitOnError(err)

	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
	searcher := search.NewSearcher(client, limiter, logger.GetLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, runErr := searcher.Run(ctx, query, search.OptionsFromConfig(cfg))
	if runErr != nil && result == nil {
		exitOnError(runErr)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: run ended early, keeping %d tweets from %d pages: %v\n",
			len(result.Tweets), result.Pages, runErr)
	}

	outPath := filepath.Join(cfg.Output.Directory, exportFileName(query))
	records := tabular.TweetRecords(result.Tweets, result.Users, query)
	exitOnError(tabular.WriteCSV(outPath, records))

	fmt.Printf("Collected %d tweets from %d unique authors across %d pages\n",
		len(result.Tweets), len(result.Users), result.Pages)
	fmt.Println("Saved to", outPath)
}

// exportFileName derives a filesystem-safe CSV name from the query
func exportFileName(query string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, query)
	if len(safe) > 40 {
		safe = safe[:40]
	}
	return safe + "_tweets.csv"
}
