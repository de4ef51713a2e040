package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"xplore/pkg/auth"
	"xplore/pkg/config"
	"xplore/pkg/logger"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xplore",
	Short: "Collect and analyze tweets through the X API v2",
	Long: `xplore is a command-line toolkit for collecting tweets through the
X API v2 and analyzing the result offline.

Features:
  - Paginated keyword search over the last 7 days
  - Bucketed tweet-volume counts with bar charts
  - Batched user profile lookup and CSV export
  - Per-row language classification of exported datasets
  - Secure bearer token storage using the system keychain`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.xplore.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.SetVersionTemplate(`xplore {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig loads configuration with the global flags applied and
// initializes the logger from the result.
func loadConfig(flags map[string]interface{}) (*config.Config, error) {
	if flags == nil {
		flags = make(map[string]interface{})
	}
	if logLevel != "" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveBearerToken fills in the bearer token from stored credentials
// when neither flags, environment, nor config carried one.
func resolveBearerToken(cfg *config.Config, label string) error {
	if cfg.Twitter.BearerToken != "" && label == "" {
		return nil
	}

	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("initializing credential manager: %w", err)
	}

	var cred *auth.Credential
	if label != "" {
		cred, err = manager.Retrieve(label)
	} else {
		cred, err = manager.RetrieveDefault()
	}
	if err != nil {
		return fmt.Errorf("no bearer token available: set XPLORE_BEARER_TOKEN or run 'xplore auth login'")
	}

	cfg.Twitter.BearerToken = cred.BearerToken
	if label != "" {
		logger.WithField("label", cred.Label).Info("using stored credential")
	}
	return nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
