package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"xplore/pkg/analysis"
	"xplore/pkg/logger"
	"xplore/pkg/tabular"
)

var (
	analyzeColumn   string
	analyzeSplitDir string
	analyzeChart    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Classify an exported dataset by language",
	Long: `Classify every row of a previously exported CSV or XLSX file by the
language of its text column. Works entirely offline. The per-language
counts are printed to stdout; the dataset can optionally be split into
one file per language and the distribution rendered as a bar chart.`,
	Example: `  # Language distribution of an exported search run
  xplore analyze golang_tweets.csv

  # Split into per-language files and render a chart
  xplore analyze golang_tweets.csv --split-dir ./by-language --chart languages.png`,
	Args: cobra.ExactArgs(1),
	Run:  runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeColumn, "column", tabular.ColTweetContent, "text column to classify")
	analyzeCmd.Flags().StringVar(&analyzeSplitDir, "split-dir", "", "write one CSV per language into this directory")
	analyzeCmd.Flags().StringVar(&analyzeChart, "chart", "", "write a PNG bar chart to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	_, err := loadConfig(nil)
	exitOnError(err)

	counts, err := analysis.SplitByLanguage(args[0], analyzeColumn, analysis.Options{
		OutputDir: analyzeSplitDir,
		ChartPath: analyzeChart,
		Logger:    logger.GetLogger(),
	})
	exitOnError(err)

	total := 0
	for _, c := range counts {
		total += c.Count
	}

	fmt.Printf("Classified %d rows into %d languages:\n", total, len(counts))
	for _, c := range counts {
		fmt.Printf("  %-4s %d\n", c.Language, c.Count)
	}
	if analyzeSplitDir != "" {
		fmt.Println("Per-language files written to", analyzeSplitDir)
	}
	if analyzeChart != "" {
		fmt.Println("Chart saved to", analyzeChart)
	}
}
