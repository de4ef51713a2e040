package twitter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	errs "xplore/pkg/errors"
)

const (
	// BaseURL is the default base URL for the X API
	BaseURL = "https://api.twitter.com"

	// SearchEndpoint serves keyword search over tweets from the last 7 days
	SearchEndpoint = "/2/tweets/search/recent"

	// CountsEndpoint serves bucketed tweet counts for a query
	CountsEndpoint = "/2/tweets/counts/recent"

	// UsersByEndpoint serves batched user lookup by ID
	UsersByEndpoint = "/2/users/by"

	// DefaultUserAgent identifies this client to the API
	DefaultUserAgent = "xplore/1.0"

	// MinPageSize and MaxPageSize bound the max_results search parameter
	MinPageSize = 10
	MaxPageSize = 100

	// UserLookupBatchSize is the maximum number of IDs per lookup request
	UserLookupBatchSize = 100
)

// Field selections requested from the API. The side-loaded user list comes
// from the author_id expansion.
const (
	tweetFields = "created_at,author_id,text,source,public_metrics"
	expansions  = "author_id"
	userFields  = "username,name,location,created_at,verified,description,public_metrics"
)

// Granularity is the time-bucket width for tweet count requests
type Granularity string

const (
	GranularityDay  Granularity = "day"
	GranularityHour Granularity = "hour"
)

// ParseGranularity validates a granularity string
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(s)) {
	case GranularityDay:
		return GranularityDay, nil
	case GranularityHour:
		return GranularityHour, nil
	default:
		return "", errs.Newf(errs.ErrorTypeInvalidParameter, "unrecognized granularity %q (want day or hour)", s)
	}
}

// NewHeaders builds the request header map for a bearer credential. An
// empty credential is a configuration error, reported before any I/O.
func NewHeaders(bearerToken string) (map[string]string, error) {
	if bearerToken == "" {
		return nil, errs.New(errs.ErrorTypeConfiguration, "bearer token is missing")
	}
	return map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", bearerToken),
		"User-Agent":    DefaultUserAgent,
	}, nil
}

// SearchURL constructs the recent-search URL for a keyword. nextToken is
// omitted on the first page.
func SearchURL(baseURL, query string, maxResults int, nextToken string) string {
	if maxResults < MinPageSize {
		maxResults = MinPageSize
	} else if maxResults > MaxPageSize {
		maxResults = MaxPageSize
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(maxResults))
	params.Set("tweet.fields", tweetFields)
	params.Set("expansions", expansions)
	params.Set("user.fields", userFields)
	if nextToken != "" {
		params.Set("next_token", nextToken)
	}

	return fmt.Sprintf("%s%s?%s", baseURL, SearchEndpoint, params.Encode())
}

// CountsURL constructs the tweet counts URL for a query and time range.
// The granularity must be one of the recognized values; timestamps are
// ISO-8601 strings passed through verbatim (the API rejects an inverted
// range itself).
func CountsURL(baseURL, query string, granularity Granularity, startTime, endTime string) (string, error) {
	switch granularity {
	case GranularityDay, GranularityHour:
	default:
		return "", errs.Newf(errs.ErrorTypeInvalidParameter, "unrecognized granularity %q (want day or hour)", string(granularity))
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("granularity", string(granularity))
	params.Set("start_time", startTime)
	params.Set("end_time", endTime)

	return fmt.Sprintf("%s%s?%s", baseURL, CountsEndpoint, params.Encode()), nil
}

// UsersByURL constructs the batched user lookup URL for a list of IDs
func UsersByURL(baseURL string, ids []string) string {
	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("user.fields", userFields)

	return fmt.Sprintf("%s%s?%s", baseURL, UsersByEndpoint, params.Encode())
}
