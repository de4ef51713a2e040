package analysis

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	errs "xplore/pkg/errors"
	"xplore/pkg/twitter"
)

// Chart palette
var (
	chartBackground = drawing.ColorFromHex("191A19")
	chartBarFill    = drawing.ColorFromHex("FFCC00")
	chartText       = drawing.ColorFromHex("FFFFFF")
)

// RenderLanguageChart renders per-language counts as a PNG bar chart.
func RenderLanguageChart(counts []LanguageCount, path, title string) error {
	if len(counts) == 0 {
		return errs.New(errs.ErrorTypeInvalidParameter, "no data to chart")
	}

	bars := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: c.Language,
			Value: float64(c.Count),
			Style: chart.Style{FillColor: chartBarFill, StrokeColor: chartBarFill},
		})
	}

	return renderBars(bars, path, title)
}

// PlotTweetCounts renders bucketed tweet volumes as a PNG bar chart. The
// bucket labels are shortened to the date for day granularity and to the
// clock time for hour granularity.
func PlotTweetCounts(buckets []twitter.CountBucket, granularity twitter.Granularity, path, title string) error {
	if len(buckets) == 0 {
		return errs.New(errs.ErrorTypeInvalidParameter, "no data to chart")
	}

	bars := make([]chart.Value, 0, len(buckets))
	for _, bucket := range buckets {
		bars = append(bars, chart.Value{
			Label: bucketLabel(bucket.Start, granularity),
			Value: float64(bucket.TweetCount),
			Style: chart.Style{FillColor: chartBarFill, StrokeColor: chartBarFill},
		})
	}

	return renderBars(bars, path, title)
}

// bucketLabel shortens an ISO-8601 bucket start to something readable on
// an axis: "2024-01-02" for days, "13:00" for hours.
func bucketLabel(start string, granularity twitter.Granularity) string {
	switch {
	case granularity == twitter.GranularityHour && len(start) >= 16:
		return start[11:16]
	case granularity == twitter.GranularityDay && len(start) >= 10:
		return start[:10]
	default:
		return start
	}
}

func renderBars(bars []chart.Value, path, title string) error {
	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontColor: chartText,
		},
		Background: chart.Style{
			FillColor: chartBackground,
		},
		Canvas: chart.Style{
			FillColor: chartBackground,
		},
		XAxis: chart.Style{
			FontColor: chartText,
		},
		YAxis: chart.YAxis{
			Style: chart.Style{
				FontColor: chartText,
			},
		},
		Width:    1024,
		Height:   512,
		BarWidth: 48,
		Bars:     bars,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return file.Close()
}
