package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xplore/pkg/config"
	"xplore/pkg/logger"
	"xplore/pkg/ratelimit"
	"xplore/pkg/search"
	"xplore/pkg/tabular"
	"xplore/pkg/twitter"
)

// Legacy single-shot entry point. The cobra CLI under cmd/xplore is the
// full interface; this one runs a search with plain flags for scripts
// that predate it.
var (
	configFile  = flag.String("config", "", "Path to configuration file")
	bearerToken = flag.String("bearer-token", "", "X API bearer token")
	outputDir   = flag.String("output", "", "Output directory for the CSV export")
	maxPages    = flag.Int("max-pages", 0, "Maximum number of pages to fetch")
	maxResults  = flag.Int("max-results", 0, "Stop after collecting this many tweets")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: xplore [flags] <query>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	query := strings.TrimSpace(args[0])

	flags := make(map[string]interface{})
	if *bearerToken != "" {
		flags["bearer-token"] = *bearerToken
	}
	if *outputDir != "" {
		flags["output"] = *outputDir
	}
	if *maxPages > 0 {
		flags["max-pages"] = *maxPages
	}
	if *maxResults > 0 {
		flags["max-results"] = *maxResults
	}

	cfg, err := config.Load(*configFile, flags)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}

	if cfg.Twitter.BearerToken == "" {
		logger.Error("Missing bearer token")
		fmt.Fprintln(os.Stderr, "Missing bearer token: provide via --bearer-token flag or XPLORE_BEARER_TOKEN env var")
		os.Exit(1)
	}

	client, err := twitter.NewClientFromConfig(cfg, logger.GetLogger())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize client:", err)
		os.Exit(1)
	}

	limiter := ratelimit.NewSlidingWindow(cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window)
	searcher := search.NewSearcher(client, limiter, logger.GetLogger())

	logger.WithField("query", query).Info("Starting search")

	result, err := searcher.Run(context.Background(), query, search.OptionsFromConfig(cfg))
	if err != nil {
		logger.WithError(err).WithField("query", query).Error("Search failed")
		fmt.Fprintln(os.Stderr, "Search failed:", err)
		os.Exit(1)
	}

	outPath := filepath.Join(cfg.Output.Directory, "tweets.csv")
	records := tabular.TweetRecords(result.Tweets, result.Users, query)
	if err := tabular.WriteCSV(outPath, records); err != nil {
		logger.WithError(err).Error("Export failed")
		fmt.Fprintln(os.Stderr, "Export failed:", err)
		os.Exit(1)
	}

	logger.WithFields(map[string]interface{}{
		"tweets": len(result.Tweets),
		"pages":  result.Pages,
		"path":   outPath,
	}).Info("Search completed successfully")
	fmt.Printf("Collected %d tweets across %d pages, saved to %s\n",
		len(result.Tweets), result.Pages, outPath)
}
