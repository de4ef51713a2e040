package analysis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abadojack/whatlanggo"
	"xplore/pkg/logger"
	"xplore/pkg/tabular"
)

// LanguageCount is the number of rows classified into one language
type LanguageCount struct {
	// Language is the ISO 639-1 code, such as "en" or "ko"
	Language string
	Count    int
}

// Options controls what a language split produces besides the counts.
type Options struct {
	// OutputDir, when set, receives one CSV per detected language
	OutputDir string
	// ChartPath, when set, receives a rendered bar chart of the counts
	ChartPath string
	// Logger for per-row classification decisions
	Logger logger.Logger
}

// DetectLanguage classifies a text and returns its ISO 639-1 code. ok is
// false when the text is empty or the language has no two-letter code.
func DetectLanguage(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	return code, code != ""
}

// SplitByLanguage reads a previously exported table, classifies every row
// by the language of textColumn, and returns per-language counts sorted
// by descending count (ties break alphabetically). Rows with an empty or
// unclassifiable text cell are skipped, not treated as errors.
func SplitByLanguage(path, textColumn string, opts Options) ([]LanguageCount, error) {
	log := opts.Logger
	if log == nil {
		log = logger.GetLogger()
	}

	table, err := tabular.ReadTable(path)
	if err != nil {
		return nil, err
	}

	texts, err := table.Column(textColumn)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]*tabular.Record)
	skipped := 0
	for i, text := range texts {
		code, ok := DetectLanguage(text)
		if !ok {
			skipped++
			log.DebugWithFields("skipping unclassifiable row", map[string]interface{}{
				"row": i + 1,
			})
			continue
		}
		groups[code] = append(groups[code], table.Rows[i])
	}

	counts := make([]LanguageCount, 0, len(groups))
	for code, rows := range groups {
		counts = append(counts, LanguageCount{Language: code, Count: len(rows)})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Language < counts[j].Language
	})

	log.InfoWithFields("language split complete", map[string]interface{}{
		"source":    path,
		"languages": len(counts),
		"skipped":   skipped,
	})

	if opts.OutputDir != "" {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for code, rows := range groups {
			out := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_%s.csv", base, code))
			if err := tabular.WriteCSV(out, rows); err != nil {
				return nil, err
			}
		}
	}

	if opts.ChartPath != "" {
		if err := RenderLanguageChart(counts, opts.ChartPath, "Tweets per language"); err != nil {
			return nil, err
		}
	}

	return counts, nil
}
