package search

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/twitter"
)

// fakeClient replays a scripted sequence of pages or errors
type fakeClient struct {
	pages    []pageOrErr
	requests int
	tokens   []string
}

type pageOrErr struct {
	page *twitter.SearchResponse
	err  error
}

func (f *fakeClient) SearchRecent(ctx context.Context, query string, maxResults int, nextToken string) (*twitter.SearchResponse, error) {
	f.tokens = append(f.tokens, nextToken)
	if f.requests >= len(f.pages) {
		return nil, fmt.Errorf("unexpected request %d", f.requests+1)
	}
	step := f.pages[f.requests]
	f.requests++
	return step.page, step.err
}

func page(tweetIDs []string, users []twitter.User, next string) *twitter.SearchResponse {
	resp := &twitter.SearchResponse{Meta: &twitter.Meta{ResultCount: len(tweetIDs)}}
	for _, id := range tweetIDs {
		resp.Data = append(resp.Data, twitter.Tweet{
			ID:       id,
			AuthorID: "author-" + id,
			Text:     "tweet " + id,
		})
	}
	if len(users) > 0 {
		resp.Includes = &twitter.Includes{Users: users}
	}
	if next != "" {
		resp.Meta.NextToken = &next
	}
	return resp
}

func ids(from, to int) []string {
	var out []string
	for i := from; i <= to; i++ {
		out = append(out, fmt.Sprintf("%d", i))
	}
	return out
}

func newTestSearcher(client Client) *Searcher {
	return NewSearcher(client, nil, logger.NewTestLogger())
}

func defaultOptions() Options {
	return Options{MaxResultsPerPage: 100, MaxPages: 100}
}

func TestRunAggregatesPagesInOrder(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 5), []twitter.User{{ID: "u1", Username: "alice"}}, "tok-1")},
		{page: page(ids(6, 8), []twitter.User{{ID: "u2", Username: "bob"}}, "")},
	}}

	result, err := newTestSearcher(client).Run(context.Background(), "golang", defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, client.requests)
	assert.Equal(t, 2, result.Pages)
	require.Len(t, result.Tweets, 8)
	assert.Equal(t, "1", result.Tweets[0].ID)
	assert.Equal(t, "8", result.Tweets[7].ID)
	assert.Len(t, result.Users, 2)

	// First request carries no token, second carries the token from page one
	assert.Equal(t, []string{"", "tok-1"}, client.tokens)
}

func TestRunEmptyPageWithTokenContinues(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 3), nil, "tok-1")},
		{page: page(nil, nil, "tok-2")},
		{page: page(ids(4, 5), nil, "")},
	}}

	result, err := newTestSearcher(client).Run(context.Background(), "golang", defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, client.requests, "an empty page with a token must not end the run")
	assert.Equal(t, 3, result.Pages)
	assert.Len(t, result.Tweets, 5)
}

func TestRunStopsAtPageCap(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 5), nil, "tok-1")},
	}}

	opts := defaultOptions()
	opts.MaxPages = 1

	result, err := newTestSearcher(client).Run(context.Background(), "golang", opts)
	require.NoError(t, err)

	assert.Equal(t, 1, client.requests, "a page cap of one means exactly one request")
	assert.Len(t, result.Tweets, 5)
}

func TestRunKeepsFullFinalPageAtResultCap(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 5), nil, "tok-1")},
		{page: page(ids(6, 10), nil, "tok-2")},
	}}

	opts := defaultOptions()
	opts.MaxTotalResults = 8

	result, err := newTestSearcher(client).Run(context.Background(), "golang", opts)
	require.NoError(t, err)

	assert.Equal(t, 2, client.requests)
	assert.Len(t, result.Tweets, 10, "the final page is kept whole")
}

func TestRunDeduplicatesUsersLastPageWins(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 2), []twitter.User{{ID: "u1", Username: "alice", Name: "Alice"}}, "tok-1")},
		{page: page(ids(3, 4), []twitter.User{{ID: "u1", Username: "alice", Name: "Alice Cooper"}}, "")},
	}}

	result, err := newTestSearcher(client).Run(context.Background(), "golang", defaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Users, 1)
	assert.Equal(t, "Alice Cooper", result.Users["u1"].Name)
}

func TestRunMidLoopFailureDiscardsResults(t *testing.T) {
	transportErr := errs.NewRequestFailed(503, "unavailable")
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 5), nil, "tok-1")},
		{err: transportErr},
	}}

	result, err := newTestSearcher(client).Run(context.Background(), "golang", defaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, transportErr)
	assert.Nil(t, result, "a failed run yields no results by default")
	assert.Equal(t, 2, client.requests)
}

func TestRunPartialOnErrorReturnsCollectedPages(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 5), []twitter.User{{ID: "u1"}}, "tok-1")},
		{err: errs.NewRequestFailed(503, "unavailable")},
	}}

	opts := defaultOptions()
	opts.PartialOnError = true

	result, err := newTestSearcher(client).Run(context.Background(), "golang", opts)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tweets, 5)
	assert.Len(t, result.Users, 1)
	assert.Equal(t, 1, result.Pages)
}

func TestRunFirstPageFailureNeverReturnsPartial(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{err: errs.NewRequestFailed(500, "boom")},
	}}

	opts := defaultOptions()
	opts.PartialOnError = true

	result, err := newTestSearcher(client).Run(context.Background(), "golang", opts)
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRunValidatesBeforeAnyRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		opts  Options
	}{
		{"empty query", "  ", defaultOptions()},
		{"zero page cap", "golang", Options{MaxResultsPerPage: 100}},
		{"negative total", "golang", Options{MaxResultsPerPage: 100, MaxPages: 1, MaxTotalResults: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			_, err := newTestSearcher(client).Run(context.Background(), tt.query, tt.opts)
			require.Error(t, err)
			assert.True(t, errs.IsType(err, errs.ErrorTypeInvalidParameter))
			assert.Zero(t, client.requests)
		})
	}
}

// countingLimiter records how often the loop throttles itself
type countingLimiter struct {
	waits int
}

func (c *countingLimiter) Allow() bool                    { return true }
func (c *countingLimiter) Wait(ctx context.Context) error { c.waits++; return nil }
func (c *countingLimiter) Reset()                         {}

func TestRunWaitsOnLimiterPerRequest(t *testing.T) {
	client := &fakeClient{pages: []pageOrErr{
		{page: page(ids(1, 2), nil, "tok-1")},
		{page: page(ids(3, 4), nil, "")},
	}}
	limiter := &countingLimiter{}

	_, err := NewSearcher(client, limiter, logger.NewTestLogger()).Run(context.Background(), "golang", defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, limiter.waits)
}
