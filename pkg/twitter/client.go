package twitter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"xplore/pkg/config"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/retry"
)

// Client is the HTTP transport for the X API. It performs single
// synchronous GETs, decodes JSON once at this boundary, and surfaces
// non-success statuses as typed errors carrying the status code and body.
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	baseURL    string
	logger     logger.Logger
	retrier    *retry.Retrier
}

// NewClient creates a client for the given bearer token. An empty token is
// a configuration error and no request will ever be attempted.
func NewClient(bearerToken string, timeout time.Duration, log logger.Logger) (*Client, error) {
	headers, err := NewHeaders(bearerToken)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.GetLogger()
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		headers:    headers,
		baseURL:    BaseURL,
		logger:     log,
	}, nil
}

// NewClientFromConfig creates a client from the loaded configuration,
// wiring in the opt-in bounded retry policy when enabled. Retries do not
// change the error contract: the caller still sees the transport error
// once attempts are exhausted.
func NewClientFromConfig(cfg *config.Config, log logger.Logger) (*Client, error) {
	client, err := NewClient(cfg.Twitter.BearerToken, cfg.Twitter.Timeout, log)
	if err != nil {
		return nil, err
	}

	if cfg.Twitter.BaseURL != "" {
		client.baseURL = cfg.Twitter.BaseURL
	}
	if cfg.Twitter.UserAgent != "" {
		client.headers["User-Agent"] = cfg.Twitter.UserAgent
	}

	if cfg.Retry.Enabled {
		client.retrier = retry.NewBoundedRetrier(
			cfg.Retry.MaxAttempts,
			cfg.Retry.BaseDelay,
			cfg.Retry.MaxDelay,
			client.logger,
		)
	}

	return client, nil
}

// SetHeader sets a custom header for the client
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetBaseURL overrides the API base URL (used against test servers)
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// BaseURL returns the API base URL in use
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetJSON performs a single GET and decodes the JSON response into target.
// A non-2xx status yields a request_failed (or rate_limit) error carrying
// the status code and response body.
func (c *Client) GetJSON(ctx context.Context, url string, target interface{}) error {
	if c.retrier == nil {
		return c.getJSON(ctx, url, target)
	}
	return c.retrier.WithContext(ctx).Do(func() error {
		return c.getJSON(ctx, url, target)
	})
}

func (c *Client) getJSON(ctx context.Context, url string, target interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errs.Newf(errs.ErrorTypeUnknown, "failed to create request: %v", err)
	}

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})

	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logger.ErrorWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL.String(),
			"error":    err.Error(),
			"duration": duration,
		})
		return errs.Newf(errs.ErrorTypeNetwork, "network error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: "failed to read response body: " + err.Error(),
			Code:    resp.StatusCode,
		}
	}

	c.logger.DebugWithFields("HTTP request completed", map[string]interface{}{
		"method":   req.Method,
		"url":      req.URL.String(),
		"status":   resp.StatusCode,
		"duration": duration,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.logger.WarnWithFields("rate limit exceeded", map[string]interface{}{
				"status": resp.StatusCode,
				"url":    req.URL.String(),
			})
		}
		return errs.NewRequestFailed(resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, target); err != nil {
		bodyPreview := string(body)
		if len(bodyPreview) > 200 {
			bodyPreview = bodyPreview[:200] + "..."
		}
		c.logger.ErrorWithFields("failed to parse JSON response", map[string]interface{}{
			"url":          url,
			"status":       resp.StatusCode,
			"error":        err.Error(),
			"body_preview": bodyPreview,
		})
		return &errs.Error{
			Type:    errs.ErrorTypeParsing,
			Message: "failed to parse JSON: " + err.Error(),
			Code:    resp.StatusCode,
		}
	}

	return nil
}

// SearchRecent fetches one page of keyword search results from the last
// 7 days. nextToken is empty on the first page.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int, nextToken string) (*SearchResponse, error) {
	url := SearchURL(c.baseURL, query, maxResults, nextToken)

	var response SearchResponse
	if err := c.GetJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("failed to fetch search page", map[string]interface{}{
			"query":      query,
			"next_token": nextToken,
			"error":      err.Error(),
		})
		return nil, err
	}

	return &response, nil
}

// TweetCounts fetches bucketed tweet volumes for a query within a time
// range. The granularity must be day or hour.
func (c *Client) TweetCounts(ctx context.Context, query string, granularity Granularity, startTime, endTime string) (*CountsResponse, error) {
	url, err := CountsURL(c.baseURL, query, granularity, startTime, endTime)
	if err != nil {
		return nil, err
	}

	var response CountsResponse
	if err := c.GetJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("failed to fetch tweet counts", map[string]interface{}{
			"query": query,
			"error": err.Error(),
		})
		return nil, err
	}

	return &response, nil
}

// UsersBy fetches user profiles for a batch of IDs. Callers are expected
// to respect UserLookupBatchSize.
func (c *Client) UsersBy(ctx context.Context, ids []string) (*UsersResponse, error) {
	url := UsersByURL(c.baseURL, ids)

	var response UsersResponse
	if err := c.GetJSON(ctx, url, &response); err != nil {
		c.logger.ErrorWithFields("failed to fetch users", map[string]interface{}{
			"id_count": len(ids),
			"error":    err.Error(),
		})
		return nil, err
	}

	return &response, nil
}
