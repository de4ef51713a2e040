package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"xplore/pkg/twitter"
)

// MockAPIServer simulates the X API v2 endpoints with realistic
// pagination behavior and configurable failures.
type MockAPIServer struct {
	server         *httptest.Server
	tweets         []twitter.Tweet
	users          map[string]twitter.User
	requestCount   int32
	errorResponses map[string]int // endpoint path to status code
	failAfterPage  int            // 0 disables, otherwise page N+1 fails
	mu             sync.RWMutex
}

// NewMockAPIServer creates a mock API preloaded with a tweet corpus.
func NewMockAPIServer(tweets []twitter.Tweet, users map[string]twitter.User) *MockAPIServer {
	m := &MockAPIServer{
		tweets:         tweets,
		users:          users,
		errorResponses: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(twitter.SearchEndpoint, m.handleSearch)
	mux.HandleFunc(twitter.CountsEndpoint, m.handleCounts)
	mux.HandleFunc(twitter.UsersByEndpoint, m.handleUsersBy)

	m.server = httptest.NewServer(mux)
	return m
}

// URL returns the base URL of the mock server
func (m *MockAPIServer) URL() string {
	return m.server.URL
}

// Close shuts the server down
func (m *MockAPIServer) Close() {
	m.server.Close()
}

// RequestCount returns the number of requests served so far
func (m *MockAPIServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// SetErrorResponse makes an endpoint return a fixed error status
func (m *MockAPIServer) SetErrorResponse(endpoint string, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorResponses[endpoint] = status
}

// FailAfterPage makes the search endpoint fail once the given number of
// pages has been served.
func (m *MockAPIServer) FailAfterPage(pages int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failAfterPage = pages
}

func (m *MockAPIServer) configuredError(endpoint string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.errorResponses[endpoint]
}

func (m *MockAPIServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if !m.authorized(w, r) {
		return
	}
	if status := m.configuredError(twitter.SearchEndpoint); status > 0 {
		m.sendError(w, status)
		return
	}

	pageSize, err := strconv.Atoi(r.URL.Query().Get("max_results"))
	if err != nil || pageSize <= 0 {
		m.sendError(w, http.StatusBadRequest)
		return
	}

	// The next_token encodes the offset into the corpus
	offset := 0
	if token := r.URL.Query().Get("next_token"); token != "" {
		offset, err = strconv.Atoi(strings.TrimPrefix(token, "page-"))
		if err != nil {
			m.sendError(w, http.StatusBadRequest)
			return
		}
	}

	m.mu.RLock()
	failAfter := m.failAfterPage
	m.mu.RUnlock()
	if failAfter > 0 && offset >= failAfter*pageSize {
		m.sendError(w, http.StatusServiceUnavailable)
		return
	}

	end := offset + pageSize
	if end > len(m.tweets) {
		end = len(m.tweets)
	}
	page := m.tweets[offset:end]

	response := twitter.SearchResponse{
		Data: page,
		Meta: &twitter.Meta{ResultCount: len(page)},
	}

	// Side-load the authors referenced by this page
	seen := make(map[string]bool)
	for _, tweet := range page {
		if user, ok := m.users[tweet.AuthorID]; ok && !seen[tweet.AuthorID] {
			seen[tweet.AuthorID] = true
			if response.Includes == nil {
				response.Includes = &twitter.Includes{}
			}
			response.Includes.Users = append(response.Includes.Users, user)
		}
	}

	if end < len(m.tweets) {
		token := fmt.Sprintf("page-%d", end)
		response.Meta.NextToken = &token
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (m *MockAPIServer) handleCounts(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if !m.authorized(w, r) {
		return
	}
	if status := m.configuredError(twitter.CountsEndpoint); status > 0 {
		m.sendError(w, status)
		return
	}

	response := twitter.CountsResponse{
		Data: []twitter.CountBucket{
			{Start: "2024-01-01T00:00:00.000Z", End: "2024-01-02T00:00:00.000Z", TweetCount: 42},
			{Start: "2024-01-02T00:00:00.000Z", End: "2024-01-03T00:00:00.000Z", TweetCount: 17},
		},
		Meta: &twitter.CountsMeta{TotalTweetCount: 59},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (m *MockAPIServer) handleUsersBy(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	if !m.authorized(w, r) {
		return
	}
	if status := m.configuredError(twitter.UsersByEndpoint); status > 0 {
		m.sendError(w, status)
		return
	}

	response := twitter.UsersResponse{}
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if user, ok := m.users[id]; ok {
			response.Data = append(response.Data, user)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (m *MockAPIServer) authorized(w http.ResponseWriter, r *http.Request) bool {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		m.sendError(w, http.StatusUnauthorized)
		return false
	}
	return true
}

func (m *MockAPIServer) sendError(w http.ResponseWriter, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"title":  http.StatusText(status),
		"status": status,
	})
}
