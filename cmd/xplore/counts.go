package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"xplore/pkg/analysis"
	"xplore/pkg/logger"
	"xplore/pkg/twitter"
)

var (
	countsGranularity string
	countsStart       string
	countsEnd         string
	countsChart       string
	countsBearerToken string
	countsAccount     string
)

// countsCmd represents the counts command
var countsCmd = &cobra.Command{
	Use:   "counts <query>",
	Short: "Fetch bucketed tweet volumes for a query",
	Long: `Fetch how many tweets matched a query per time bucket over the last
7 days. Buckets are a day or an hour wide; the table is printed to
stdout and can optionally be rendered as a bar chart.`,
	Example: `  # Daily volumes for a keyword
  xplore counts golang

  # Hourly volumes in an explicit window, rendered as a chart
  xplore counts golang --granularity hour \
    --start 2024-01-01T00:00:00Z --end 2024-01-02T00:00:00Z \
    --chart volume.png`,
	Args: cobra.ExactArgs(1),
	Run:  runCounts,
}

func init() {
	rootCmd.AddCommand(countsCmd)

	countsCmd.Flags().StringVarP(&countsGranularity, "granularity", "g", "day", "bucket width (day or hour)")
	countsCmd.Flags().StringVar(&countsStart, "start", "", "ISO-8601 start of the window")
	countsCmd.Flags().StringVar(&countsEnd, "end", "", "ISO-8601 end of the window")
	countsCmd.Flags().StringVar(&countsChart, "chart", "", "write a PNG bar chart to this path")
	countsCmd.Flags().StringVar(&countsBearerToken, "bearer-token", "", "bearer token (overrides stored credentials)")
	countsCmd.Flags().StringVarP(&countsAccount, "account", "a", "", "use a specific stored credential")
}

func runCounts(cmd *cobra.Command, args []string) {
	query := strings.TrimSpace(args[0])

	granularity, err := twitter.ParseGranularity(countsGranularity)
	exitOnError(err)

	flags := make(map[string]interface{})
	if countsBearerToken != "" {
		flags["bearer-token"] = countsBearerToken
	}

	cfg, err := loadConfig(flags)
	exitOnError(err)
	exitOnError(resolveBearerToken(cfg, countsAccount))

	client, err := twitter.NewClientFromConfig(cfg, logger.GetLogger())
	exitOnError(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	response, err := client.TweetCounts(ctx, query, granularity, countsStart, countsEnd)
	exitOnError(err)

	for _, bucket := range response.Data {
		fmt.Printf("%s  %d\n", bucket.Start, bucket.TweetCount)
	}
	if response.Meta != nil {
		fmt.Printf("Total: %d tweets\n", response.Meta.TotalTweetCount)
	}

	if countsChart != "" {
		title := fmt.Sprintf("Tweet volume for %q per %s", query, granularity)
		exitOnError(analysis.PlotTweetCounts(response.Data, granularity, countsChart, title))
		fmt.Println("Chart saved to", countsChart)
	}
}
