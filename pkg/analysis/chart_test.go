package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "xplore/pkg/errors"
	"xplore/pkg/twitter"
)

func TestBucketLabel(t *testing.T) {
	tests := []struct {
		start       string
		granularity twitter.Granularity
		want        string
	}{
		{"2024-01-02T13:00:00.000Z", twitter.GranularityHour, "13:00"},
		{"2024-01-02T13:00:00.000Z", twitter.GranularityDay, "2024-01-02"},
		{"short", twitter.GranularityHour, "short"},
		{"short", twitter.GranularityDay, "short"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketLabel(tt.start, tt.granularity))
	}
}

func TestRenderLanguageChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "langs.png")

	counts := []LanguageCount{
		{Language: "en", Count: 40},
		{Language: "ko", Count: 12},
		{Language: "el", Count: 3},
	}
	require.NoError(t, RenderLanguageChart(counts, path, "Tweets per language"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderLanguageChartEmpty(t *testing.T) {
	err := RenderLanguageChart(nil, filepath.Join(t.TempDir(), "empty.png"), "nothing")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
}

func TestPlotTweetCounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume.png")

	buckets := []twitter.CountBucket{
		{Start: "2024-01-01T00:00:00.000Z", End: "2024-01-02T00:00:00.000Z", TweetCount: 120},
		{Start: "2024-01-02T00:00:00.000Z", End: "2024-01-03T00:00:00.000Z", TweetCount: 95},
		{Start: "2024-01-03T00:00:00.000Z", End: "2024-01-04T00:00:00.000Z", TweetCount: 203},
	}
	require.NoError(t, PlotTweetCounts(buckets, twitter.GranularityDay, path, "Tweet volume"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestPlotTweetCountsEmpty(t *testing.T) {
	err := PlotTweetCounts(nil, twitter.GranularityDay, filepath.Join(t.TempDir(), "empty.png"), "nothing")
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
}
