// ABOUTME: Dashboard command that launches the interactive TUI
// ABOUTME: Wires the API client, session store and query cache into the app

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jdalton/bookshelf-cli/internal/cache"
	"github.com/jdalton/bookshelf-cli/internal/debuglog"
	"github.com/jdalton/bookshelf-cli/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive catalog dashboard",
	Long: `Launch a full-screen terminal dashboard for the book catalog.

Starts on the login screen unless a persisted session exists. From the
book table you can open, create, edit and delete books; edits to books
you do not own are blocked up front, though the server enforces
ownership regardless.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		if err := debuglog.Init(cfg.ConfigDir); err != nil {
			// Debug logging is best-effort; the dashboard works without it
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: debug log unavailable: %v\n", err)
		}
		defer debuglog.Close()

		apiClient, store, err := newClient()
		if err != nil {
			return err
		}
		queryCache := cache.New(time.Duration(cfg.CacheTTL) * time.Second)

		debuglog.Log("dashboard starting, api=%s ttl=%ds", cfg.APIURL, cfg.CacheTTL)
		return tui.Run(apiClient, store, queryCache)
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
