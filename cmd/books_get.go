// ABOUTME: Books get subcommand
// ABOUTME: Fetches and prints a single book by ID

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jdalton/bookshelf-cli/internal/client"
)

var booksGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single book",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksGet(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksCmd.AddCommand(booksGetCmd)
}

// runBooksGet fetches one book and returns exit code
func runBooksGet(ctx context.Context, w io.Writer, id string) int {
	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	book, err := c.GetBook(ctx, id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", authHint(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintln(w, formatBook(book))
	return 0
}

// formatBook renders a single book for human readability
func formatBook(b *client.Book) string {
	return fmt.Sprintf(`Title:       %s
Genre:       %s
Author:      %s
Created:     %s
Cover image: %s
Book file:   %s

%s`, b.Title, b.Genre, b.Author.Name, b.CreatedAt, b.CoverImage, b.File, b.Description)
}
