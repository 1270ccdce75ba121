// ABOUTME: Root command for the bookshelf CLI
// ABOUTME: Handles global flags and shared client/session construction

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/config"
	"github.com/jdalton/bookshelf-cli/internal/session"
)

var (
	apiURL     string
	jsonOutput bool

	// configDir is overridable in tests
	configDir = session.DefaultConfigDir()
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Admin client for the Book API",
	Long: `bookshelf is a terminal admin client for a Book API catalog.

It manages login sessions and lets you list, inspect, create, update
and delete books, including cover image and book file uploads.

Environment Variables:
  BOOKSHELF_API_URL    Book API base URL (default: http://localhost:5501)
  BOOKSHELF_CACHE_TTL  Book list cache TTL in seconds (default: 10)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Book API base URL (overrides BOOKSHELF_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// loadConfig resolves configuration for the current invocation
func loadConfig() (*config.Config, error) {
	return config.Load(apiURL, configDir)
}

// newSessionStore opens the persisted session store
func newSessionStore() *session.Store {
	return session.New(configDir)
}

// newClient builds the API client wired to the persisted session.
// Returned alongside the store so auth commands can mutate the session.
func newClient() (*client.Client, *session.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	store := newSessionStore()
	return client.New(cfg.APIURL, store), store, nil
}

// requireSession returns the current session or an error when no one
// is logged in. Commands that mutate the catalog call this first so
// users get a clear message instead of a server 401.
func requireSession(store *session.Store) (session.Session, error) {
	s := store.Current()
	if !s.Authenticated() {
		return s, fmt.Errorf("not logged in; run 'bookshelf login' first")
	}
	return s, nil
}

// authHint maps a 401 to a re-login hint; other errors pass through.
// A server-expired token only surfaces here, at call time.
func authHint(err error) error {
	if client.IsUnauthorized(err) {
		return fmt.Errorf("%v (session expired or invalid; run 'bookshelf login')", err)
	}
	return err
}
