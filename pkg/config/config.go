package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the xplore toolkit
type Config struct {
	// Twitter API access
	Twitter TwitterConfig `yaml:"twitter" json:"twitter"`

	// Keyword search pagination bounds
	Search SearchConfig `yaml:"search" json:"search"`

	// Rate limiting configuration
	RateLimit RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`

	// Retry behavior for transport failures (disabled by default)
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TwitterConfig holds API endpoint and credential configuration
type TwitterConfig struct {
	BearerToken string        `yaml:"bearer_token" json:"bearer_token"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// SearchConfig bounds the recent-search pagination loop. These are explicit
// parameters with documented defaults, not ambient globals.
type SearchConfig struct {
	// MaxResultsPerPage is the page size requested from the API (10-100)
	MaxResultsPerPage int `yaml:"max_results_per_page" json:"max_results_per_page"`
	// MaxPages caps the number of page fetches per search
	MaxPages int `yaml:"max_pages" json:"max_pages"`
	// MaxTotalResults stops pagination once at least this many tweets have
	// accumulated; 0 means MaxPages * MaxResultsPerPage
	MaxTotalResults int `yaml:"max_total_results" json:"max_total_results"`
	// PartialOnError returns accumulated pages alongside the error when a
	// later page fetch fails. Off by default: a mid-loop failure discards
	// everything.
	PartialOnError bool `yaml:"partial_on_error" json:"partial_on_error"`
}

// RateLimitConfig holds request pacing configuration
type RateLimitConfig struct {
	RequestsPerWindow int           `yaml:"requests_per_window" json:"requests_per_window"`
	Window            time.Duration `yaml:"window" json:"window"`
}

// RetryConfig holds bounded-retry configuration for the HTTP transport.
// Retries are an explicit opt-in; the default contract is a single attempt.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled" json:"enabled"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
}

// OutputConfig holds output file configuration
type OutputConfig struct {
	Directory string `yaml:"directory" json:"directory"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Twitter: TwitterConfig{
			BaseURL:   "https://api.twitter.com",
			UserAgent: "xplore/1.0",
			Timeout:   30 * time.Second,
		},
		Search: SearchConfig{
			MaxResultsPerPage: 100,
			MaxPages:          100,
			MaxTotalResults:   0,
			PartialOnError:    false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerWindow: 180,
			Window:            15 * time.Minute,
		},
		Retry: RetryConfig{
			Enabled:     false,
			MaxAttempts: 3,
			BaseDelay:   time.Second,
			MaxDelay:    time.Minute,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if token := os.Getenv("XPLORE_BEARER_TOKEN"); token != "" {
		c.Twitter.BearerToken = token
	}
	if baseURL := os.Getenv("XPLORE_BASE_URL"); baseURL != "" {
		c.Twitter.BaseURL = baseURL
	}

	if maxPages := os.Getenv("XPLORE_MAX_PAGES"); maxPages != "" {
		var val int
		fmt.Sscanf(maxPages, "%d", &val)
		if val > 0 {
			c.Search.MaxPages = val
		}
	}
	if maxResults := os.Getenv("XPLORE_MAX_RESULTS"); maxResults != "" {
		var val int
		fmt.Sscanf(maxResults, "%d", &val)
		if val > 0 {
			c.Search.MaxTotalResults = val
		}
	}

	if outputDir := os.Getenv("XPLORE_OUTPUT_DIR"); outputDir != "" {
		c.Output.Directory = outputDir
	}

	if logLevel := os.Getenv("XPLORE_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".xplore.yaml",
		".xplore.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "xplore", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "xplore", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".xplore.yaml"),
		filepath.Join(os.Getenv("HOME"), ".xplore.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. The bearer token is not
// validated here: analysis commands work entirely offline, so credential
// presence is checked at the transport boundary instead.
func (c *Config) Validate() error {
	var errs []error

	if c.Twitter.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.Twitter.Timeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Search.MaxResultsPerPage < 10 || c.Search.MaxResultsPerPage > 100 {
		errs = append(errs, errors.New("max results per page must be between 10 and 100"))
	}
	if c.Search.MaxPages <= 0 {
		errs = append(errs, errors.New("max pages must be positive"))
	}
	if c.Search.MaxTotalResults < 0 {
		errs = append(errs, errors.New("max total results cannot be negative"))
	}

	if c.RateLimit.RequestsPerWindow <= 0 {
		errs = append(errs, errors.New("requests per window must be positive"))
	}
	if c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("rate limit window must be positive"))
	}

	if c.Retry.Enabled && c.Retry.MaxAttempts <= 0 {
		errs = append(errs, errors.New("max retry attempts must be positive when retries are enabled"))
	}

	if c.Output.Directory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["bearer-token"].(string); ok && token != "" {
		c.Twitter.BearerToken = token
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.Directory = outputDir
	}
	if maxPages, ok := flags["max-pages"].(int); ok && maxPages > 0 {
		c.Search.MaxPages = maxPages
	}
	if maxResults, ok := flags["max-results"].(int); ok && maxResults > 0 {
		c.Search.MaxTotalResults = maxResults
	}
	if pageSize, ok := flags["page-size"].(int); ok && pageSize > 0 {
		c.Search.MaxResultsPerPage = pageSize
	}
	if partial, ok := flags["partial"].(bool); ok {
		c.Search.PartialOnError = partial
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".xplore.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
