// ABOUTME: Whoami command for the bookshelf CLI
// ABOUTME: Shows the persisted session state without a network call

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Long: `Print the user ID of the persisted session.

This reads local state only; an expired token still shows as logged in
until the next API call rejects it.`,
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami prints session state and returns exit code
func runWhoami(w io.Writer) int {
	s := newSessionStore().Current()

	if IsJSONOutput() {
		out := map[string]interface{}{
			"authenticated": s.Authenticated(),
			"userId":        s.UserID,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
		if !s.Authenticated() {
			return 1
		}
		return 0
	}

	if !s.Authenticated() {
		fmt.Fprintln(w, "Not logged in.")
		return 1
	}
	fmt.Fprintf(w, "Logged in as user %s\n", s.UserID)
	return 0
}
