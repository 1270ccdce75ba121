// ABOUTME: Register command for the bookshelf CLI
// ABOUTME: Creates a new account and persists the resulting session

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

	"github.com/jdalton/bookshelf-cli/internal/client"
)

var (
	registerName     string
	registerEmail    string
	registerPassword string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a Book API account",
	Long:  `Register a new account and log in with the returned session.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Account password (prompted if omitted)")
}

// runRegister executes the registration flow and returns exit code
func runRegister(ctx context.Context, w io.Writer) int {
	c, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	name := strings.TrimSpace(registerName)
	email := strings.TrimSpace(registerEmail)
	if name == "" || email == "" {
		fmt.Fprintf(w, "Error: --name and --email are required\n")
		return 2
	}

	password := registerPassword
	if password == "" {
		password, err = promptPassword(w, "Password: ")
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	auth, err := c.Register(ctx, client.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := store.SetCredentials(auth.AccessToken, auth.UserID); err != nil {
		fmt.Fprintf(w, "Error: registered but failed to persist session: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"userId": auth.UserID}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Registered and logged in as %s\n", email)
	}
	return 0
}
