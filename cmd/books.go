// ABOUTME: Books command group and list subcommand
// ABOUTME: Lists the catalog in tabular or JSON form

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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jdalton/bookshelf-cli/internal/client"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "Manage the book catalog",
	Long:  `List, inspect, create, update and delete books in the catalog.`,
}

var booksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(booksCmd)
	booksCmd.AddCommand(booksListCmd)
}

// runBooksList fetches and prints the catalog, returning exit code
func runBooksList(ctx context.Context, w io.Writer) int {
	c, _, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	books, err := c.ListBooks(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", authHint(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(books, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(books) == 0 {
		fmt.Fprintln(w, "No books in the catalog.")
		return 0
	}

	fmt.Fprintln(w, formatBooksTable(books))
	return 0
}

// formatBooksTable renders books as an aligned text table
func formatBooksTable(books []client.Book) string {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tGENRE\tAUTHOR\tCREATED")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", b.ID, b.Title, b.Genre, b.Author.Name, b.CreatedAt)
	}
	tw.Flush()
	return strings.TrimRight(sb.String(), "\n")
}
