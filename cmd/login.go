// ABOUTME: Login command for the bookshelf CLI
// ABOUTME: Authenticates against the Book API and persists the session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jdalton/bookshelf-cli/internal/client"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the Book API",
	Long: `Authenticate with email and password and persist the session.

The password is prompted interactively unless --password is given
(intended for scripting; prefer the prompt on shared machines).`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password (prompted if omitted)")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	c, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	email := strings.TrimSpace(loginEmail)
	if email == "" {
		fmt.Fprintf(w, "Error: --email is required\n")
		return 2
	}

	password := loginPassword
	if password == "" {
		password, err = promptPassword(w, "Password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	auth, err := c.Login(ctx, client.LoginInput{Email: email, Password: password})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := store.SetCredentials(auth.AccessToken, auth.UserID); err != nil {
		fmt.Fprintf(w, "Error: logged in but failed to persist session: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"userId": auth.UserID}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Logged in as %s\n", email)
	}
	return 0
}

// promptPassword reads a password without echoing it to the terminal
func promptPassword(w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(bytePassword), nil
}
