package search

import (
	"context"
	"strings"

	"xplore/pkg/config"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/ratelimit"
	"xplore/pkg/twitter"
)

// Client is the transport surface the searcher needs. *twitter.Client
// satisfies it.
type Client interface {
	SearchRecent(ctx context.Context, query string, maxResults int, nextToken string) (*twitter.SearchResponse, error)
}

// Options controls how far a search run paginates.
type Options struct {
	// MaxResultsPerPage is the per-request page size (clamped to API bounds)
	MaxResultsPerPage int
	// MaxPages caps the number of requests in one run
	MaxPages int
	// MaxTotalResults stops pagination once at least this many tweets have
	// been collected (0 means unbounded). The final page is kept whole, so
	// the run may finish slightly over this cap.
	MaxTotalResults int
	// PartialOnError returns the pages collected so far alongside the
	// error when a mid-run request fails. Off by default: a failed run
	// yields no results.
	PartialOnError bool
}

// OptionsFromConfig builds run options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxResultsPerPage: cfg.Search.MaxResultsPerPage,
		MaxPages:          cfg.Search.MaxPages,
		MaxTotalResults:   cfg.Search.MaxTotalResults,
		PartialOnError:    cfg.Search.PartialOnError,
	}
}

// Result is the aggregate of one search run.
type Result struct {
	// Tweets in API return order across pages
	Tweets []twitter.Tweet
	// Users side-loaded via the author_id expansion, keyed by user ID.
	// When the same ID appears on several pages the last page wins.
	Users map[string]twitter.User
	// Pages is the number of requests performed
	Pages int
}

// Searcher drives the paginated recent-search loop against a Client.
type Searcher struct {
	client  Client
	limiter ratelimit.Limiter
	logger  logger.Logger
}

// NewSearcher creates a searcher. limiter may be nil to disable local
// throttling.
func NewSearcher(client Client, limiter ratelimit.Limiter, log logger.Logger) *Searcher {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Searcher{
		client:  client,
		limiter: limiter,
		logger:  log,
	}
}

// Run paginates the recent search for query until the API stops handing
// out a next_token, the page cap is hit, or enough tweets have been
// collected. Parameter validation happens before the first request.
func (s *Searcher) Run(ctx context.Context, query string, opts Options) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errs.New(errs.ErrorTypeInvalidParameter, "search query must not be empty")
	}
	if opts.MaxPages <= 0 {
		return nil, errs.New(errs.ErrorTypeInvalidParameter, "max pages must be at least 1")
	}
	if opts.MaxTotalResults < 0 {
		return nil, errs.New(errs.ErrorTypeInvalidParameter, "max total results must not be negative")
	}

	result := &Result{
		Users: make(map[string]twitter.User),
	}

	s.logger.InfoWithFields("starting search run", map[string]interface{}{
		"query":     query,
		"max_pages": opts.MaxPages,
		"max_total": opts.MaxTotalResults,
	})

	nextToken := ""
	for {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return s.finish(result, err, opts)
			}
		}

		page, err := s.client.SearchRecent(ctx, query, opts.MaxResultsPerPage, nextToken)
		if err != nil {
			s.logger.ErrorWithFields("search page failed", map[string]interface{}{
				"query": query,
				"page":  result.Pages + 1,
				"error": err.Error(),
			})
			return s.finish(result, err, opts)
		}

		result.Pages++
		result.Tweets = append(result.Tweets, page.Data...)
		if page.Includes != nil {
			for _, user := range page.Includes.Users {
				result.Users[user.ID] = user
			}
		}

		s.logger.DebugWithFields("search page collected", map[string]interface{}{
			"page":     result.Pages,
			"tweets":   len(page.Data),
			"total":    len(result.Tweets),
			"has_next": page.NextToken() != "",
		})

		nextToken = page.NextToken()
		if nextToken == "" {
			break
		}
		if result.Pages >= opts.MaxPages {
			s.logger.Info("page cap reached, stopping pagination")
			break
		}
		if opts.MaxTotalResults > 0 && len(result.Tweets) >= opts.MaxTotalResults {
			s.logger.Info("result cap reached, stopping pagination")
			break
		}
	}

	s.logger.InfoWithFields("search run complete", map[string]interface{}{
		"query":  query,
		"pages":  result.Pages,
		"tweets": len(result.Tweets),
		"users":  len(result.Users),
	})

	return result, nil
}

// finish applies the partial-results policy after a mid-run failure.
func (s *Searcher) finish(result *Result, err error, opts Options) (*Result, error) {
	if opts.PartialOnError && result.Pages > 0 {
		s.logger.WarnWithFields("returning partial results after failure", map[string]interface{}{
			"pages":  result.Pages,
			"tweets": len(result.Tweets),
		})
		return result, err
	}
	return nil, err
}
