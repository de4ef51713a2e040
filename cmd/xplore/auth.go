package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"xplore/pkg/auth"
)

// authCmd represents the auth command group
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored API credentials",
	Long: `Manage X API bearer tokens.

Tokens are stored in the system keychain when available, with an
encrypted file in the user config directory as fallback. The
XPLORE_BEARER_TOKEN environment variable always works as a last
resort for scripted use.`,
}

var loginCmd = &cobra.Command{
	Use:   "login [label]",
	Short: "Store a bearer token",
	Args:  cobra.MaximumNArgs(1),
	Run:   runAuthLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout <label>",
	Short: "Remove a stored bearer token",
	Args:  cobra.ExactArgs(1),
	Run:   runAuthLogout,
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored credentials",
	Args:  cobra.NoArgs,
	Run:   runAuthList,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(authListCmd)
}

func runAuthLogin(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	exitOnError(err)

	reader := bufio.NewReader(os.Stdin)

	label := ""
	if len(args) > 0 {
		label = args[0]
	}
	if label == "" {
		fmt.Print("Credential label (e.g. research): ")
		input, err := reader.ReadString('\n')
		exitOnError(err)
		label = strings.TrimSpace(input)
	}
	if label == "" {
		exitOnError(fmt.Errorf("a label is required"))
	}

	if manager.Exists(label) {
		fmt.Printf("Credential %q already exists. Overwrite? (y/N): ", label)
		confirm, _ := reader.ReadString('\n')
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(confirm)), "y") {
			return
		}
	}

	fmt.Print("Bearer token (input hidden): ")
	token, err := readSecret()
	exitOnError(err)
	fmt.Println()

	if len(token) < 20 {
		exitOnError(fmt.Errorf("that does not look like a bearer token (too short)"))
	}

	exitOnError(manager.Store(&auth.Credential{
		Label:       label,
		BearerToken: token,
	}))

	fmt.Printf("Stored credential %q\n", label)
}

func runAuthLogout(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	exitOnError(err)

	exitOnError(manager.Delete(args[0]))
	fmt.Printf("Removed credential %q\n", args[0])
}

func runAuthList(cmd *cobra.Command, args []string) {
	manager, err := auth.NewManager()
	exitOnError(err)

	creds, err := manager.List()
	exitOnError(err)

	if len(creds) == 0 {
		fmt.Println("No stored credentials. Run 'xplore auth login' to add one.")
		return
	}

	fmt.Println("Stored credentials:")
	for _, cred := range creds {
		sanitized := auth.Sanitize(cred)
		fmt.Printf("  %-20s %s  (modified %s)\n",
			sanitized.Label, sanitized.BearerToken,
			sanitized.LastModified.Format(time.RFC3339))
	}
}

// readSecret reads a line without echoing when stdin is a terminal
func readSecret() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		secret, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(secret)), nil
	}

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
