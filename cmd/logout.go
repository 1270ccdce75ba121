// ABOUTME: Logout command for the bookshelf CLI
// ABOUTME: Clears the persisted session; no server call is involved

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Long:  `Drop the stored token and user ID. The token is not revoked server-side.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runLogout(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout clears the session and returns exit code
func runLogout(w io.Writer) int {
	store := newSessionStore()
	wasLoggedIn := store.Current().Authenticated()
	if wasLoggedIn {
		if err := store.Clear(); err != nil {
			fmt.Fprintf(w, "Error: failed to clear session: %v\n", err)
			return 2
		}
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]bool{"loggedOut": wasLoggedIn}, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if !wasLoggedIn {
		fmt.Fprintln(w, "Not logged in.")
		return 0
	}
	fmt.Fprintln(w, "Logged out.")
	return 0
}
