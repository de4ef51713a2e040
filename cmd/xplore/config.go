package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"xplore/pkg/config"
)

// configCmd represents the config command group
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and initialize configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging defaults, the config file,
environment variables, and flags. The bearer token is masked.`,
	Args: cobra.NoArgs,
	Run:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with default values",
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(nil)
	exitOnError(err)

	// Never print the raw token
	if cfg.Twitter.BearerToken != "" {
		cfg.Twitter.BearerToken = "********"
	}

	data, err := yaml.Marshal(cfg)
	exitOnError(err)
	fmt.Print(string(data))
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		home, err := os.UserHomeDir()
		exitOnError(err)
		path = filepath.Join(home, ".xplore.yaml")
	}

	if _, err := os.Stat(path); err == nil {
		exitOnError(fmt.Errorf("%s already exists, refusing to overwrite", path))
	}

	exitOnError(config.DefaultConfig().Save(path))
	fmt.Println("Wrote", path)
	fmt.Println("Set your bearer token with 'xplore auth login' or XPLORE_BEARER_TOKEN.")
}
