package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/tabular"
)

// Scripts with a unique alphabet classify unambiguously, which keeps
// these tests stable across detector versions.
const (
	koreanText = "오늘 서울 날씨가 정말 좋네요. 산책하기 딱 좋은 하루입니다."
	greekText  = "Η Αθήνα είναι μια όμορφη πόλη με μεγάλη ιστορία και πολιτισμό."
)

func TestDetectLanguage(t *testing.T) {
	code, ok := DetectLanguage(koreanText)
	require.True(t, ok)
	assert.Equal(t, "ko", code)

	code, ok = DetectLanguage(greekText)
	require.True(t, ok)
	assert.Equal(t, "el", code)
}

func TestDetectLanguageEmpty(t *testing.T) {
	_, ok := DetectLanguage("")
	assert.False(t, ok)

	_, ok = DetectLanguage("   \t ")
	assert.False(t, ok)
}

func writeFixture(t *testing.T, dir string) string {
	t.Helper()

	records := []*tabular.Record{
		tabular.NewRecord().Set("tweet_Id", "1").Set("Tweet_Content", koreanText),
		tabular.NewRecord().Set("tweet_Id", "2").Set("Tweet_Content", greekText),
		tabular.NewRecord().Set("tweet_Id", "3").Set("Tweet_Content", koreanText),
		tabular.NewRecord().Set("tweet_Id", "4").Set("Tweet_Content", ""),
	}

	path := filepath.Join(dir, "tweets.csv")
	require.NoError(t, tabular.WriteCSV(path, records))
	return path
}

func TestSplitByLanguageCountsAndOrder(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)

	counts, err := SplitByLanguage(path, "Tweet_Content", Options{Logger: logger.NewTestLogger()})
	require.NoError(t, err)

	// Two Korean rows, one Greek row, one skipped empty row
	require.Len(t, counts, 2)
	assert.Equal(t, LanguageCount{Language: "ko", Count: 2}, counts[0])
	assert.Equal(t, LanguageCount{Language: "el", Count: 1}, counts[1])
}

func TestSplitByLanguageWritesPerLanguageFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)
	outDir := filepath.Join(dir, "split")

	_, err := SplitByLanguage(path, "Tweet_Content", Options{
		OutputDir: outDir,
		Logger:    logger.NewTestLogger(),
	})
	require.NoError(t, err)

	korean, err := tabular.ReadTable(filepath.Join(outDir, "tweets_ko.csv"))
	require.NoError(t, err)
	assert.Len(t, korean.Rows, 2)

	greek, err := tabular.ReadTable(filepath.Join(outDir, "tweets_el.csv"))
	require.NoError(t, err)
	assert.Len(t, greek.Rows, 1)

	id, _ := greek.Rows[0].Get("tweet_Id")
	assert.Equal(t, "2", id, "rows keep their original cells")
}

func TestSplitByLanguageMissingColumn(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)

	_, err := SplitByLanguage(path, "No_Such_Column", Options{Logger: logger.NewTestLogger()})
	require.Error(t, err)
	assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
}

func TestSplitByLanguageRendersChart(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir)
	chartPath := filepath.Join(dir, "languages.png")

	_, err := SplitByLanguage(path, "Tweet_Content", Options{
		ChartPath: chartPath,
		Logger:    logger.NewTestLogger(),
	})
	require.NoError(t, err)

	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
