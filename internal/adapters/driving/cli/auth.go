package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/fetcha-cli/internal/core/domain"
)

const authTokenKey = "auth.token"

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the GitHub API token",
	Long: `Store, inspect, or remove the GitHub API token used for search and
download requests.

The token is resolved from GITHUB_TOKEN, then GH_TOKEN, then the
config file. 'auth set' writes the config-file fallback; environment
variables always win over it.

Examples:
  fetcha auth set            # prompts without echo
  fetcha auth show
  fetcha auth clear`,
}

var authSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store a token in the config file",
	Long: `Stores a GitHub token in the config file. With no argument the token
is read from stdin, without echo when stdin is a terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthSet,
}

var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved token, masked",
	RunE:  runAuthShow,
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the token from the config file",
	RunE:  runAuthClear,
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authShowCmd)
	authCmd.AddCommand(authClearCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	var token string
	if len(args) == 1 {
		token = args[0]
	} else {
		cmd.Print("Enter token: ")
		token = readToken()
		cmd.Println()
	}
	if token == "" {
		return errors.New("no token provided")
	}

	if err := configStore.Set(authTokenKey, token); err != nil {
		return err
	}
	cmd.Println("Token stored.")
	return nil
}

func runAuthShow(cmd *cobra.Command, _ []string) error {
	if tokenProvider == nil {
		return errors.New("token provider not configured")
	}

	token, err := tokenProvider.GetToken(cmd.Context())
	if errors.Is(err, domain.ErrNoCredential) {
		cmd.Println("No token configured.")
		cmd.Println("Set one with 'fetcha auth set' or export GITHUB_TOKEN.")
		return nil
	}
	if err != nil {
		return err
	}

	cmd.Printf("Token: %s (from %s)\n", maskToken(token), tokenProvider.Source())
	return nil
}

func runAuthClear(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Delete(authTokenKey); err != nil {
		return err
	}
	cmd.Println("Token removed from config file.")

	for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if os.Getenv(name) != "" {
			cmd.Printf("Note: %s is still set in the environment.\n", name)
		}
	}
	return nil
}

// readToken reads a token from stdin, without echo when stdin is a
// terminal.
func readToken() string {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		token, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(token))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
