package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
	"xplore/pkg/twitter"
	"xplore/pkg/users"
)

var (
	usersIDs         string
	usersFromFile    string
	usersColumn      string
	usersOutput      string
	usersBearerToken string
	usersAccount     string
)

// usersCmd represents the users command
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Look up user profiles by ID and export them to CSV",
	Long: `Resolve user IDs to full profiles through the batched lookup endpoint.
IDs come either from a comma-separated flag or from a column of a
previously exported CSV or XLSX file.`,
	Example: `  # Look up two specific accounts
  xplore users --ids 783214,6253282 --output users.csv

  # Resolve every author of an exported search run
  xplore users --from-file golang_tweets.csv --column Author_id --output authors.csv`,
	Args: cobra.NoArgs,
	Run:  runUsers,
}

func init() {
	rootCmd.AddCommand(usersCmd)

	usersCmd.Flags().StringVar(&usersIDs, "ids", "", "comma-separated user IDs")
	usersCmd.Flags().StringVar(&usersFromFile, "from-file", "", "read IDs from this CSV or XLSX file")
	usersCmd.Flags().StringVar(&usersColumn, "column", "Author_id", "ID column name when reading from a file")
	usersCmd.Flags().StringVarP(&usersOutput, "output", "o", "users.csv", "output CSV path")
	usersCmd.Flags().StringVar(&usersBearerToken, "bearer-token", "", "bearer token (overrides stored credentials)")
	usersCmd.Flags().StringVarP(&usersAccount, "account", "a", "", "use a specific stored credential")
}

func runUsers(cmd *cobra.Command, args []string) {
	var ids []string
	var err error

	switch {
	case usersIDs != "" && usersFromFile != "":
		exitOnError(errs.New(errs.ErrorTypeInvalidParameter, "--ids and --from-file are mutually exclusive"))
	case usersIDs != "":
		ids = strings.Split(usersIDs, ",")
	case usersFromFile != "":
		ids, err = users.IDsFromTable(usersFromFile, usersColumn)
		exitOnError(err)
	default:
		exitOnError(errs.New(errs.ErrorTypeInvalidParameter, "provide IDs with --ids or --from-file"))
	}

	flags := make(map[string]interface{})
	if usersBearerToken != "" {
		flags["bearer-token"] = usersBearerToken
	}

	cfg, err := loadConfig(flags)
	exitOnError(err)
	exitOnError(resolveBearerToken(cfg, usersAccount))

	client, err := twitter.NewClientFromConfig(cfg, logger.GetLogger())
	exitOnError(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	profiles, err := users.Lookup(ctx, client, ids, logger.GetLogger())
	exitOnError(err)

	exitOnError(users.ExportCSV(usersOutput, profiles))

	fmt.Printf("Resolved %d of %d IDs\n", len(profiles), len(ids))
	fmt.Println("Saved to", usersOutput)
	if len(profiles) < len(ids) {
		fmt.Fprintln(os.Stderr, "Note: some IDs did not resolve (deleted or suspended accounts)")
	}
}
