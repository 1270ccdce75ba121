// ABOUTME: Books delete subcommand
// ABOUTME: Deletes a book after an ownership check and confirmation

package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	deleteYes   bool
	deleteForce bool
)

var booksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a book",
	Long: `Delete a book from the catalog. Asks for confirmation unless --yes
is given.

Books you did not author are refused locally unless --force is given.
The server enforces ownership either way; --force just skips the
client-side check.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksDelete(ctx, os.Stdin, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksCmd.AddCommand(booksDeleteCmd)
	booksDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "Skip the confirmation prompt")
	booksDeleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Skip the local author ownership check")
}

// runBooksDelete confirms and deletes a book, returning exit code
func runBooksDelete(ctx context.Context, in io.Reader, w io.Writer, id string) int {
	c, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	sess, err := requireSession(store)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if !deleteForce {
		current, err := c.GetBook(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", authHint(err))
			return 2
		}
		if current.Author.ID != sess.UserID {
			fmt.Fprintf(w, "Error: you are not the author of %q; the server will reject this delete\n", current.Title)
			return 1
		}
	}

	if !deleteYes {
		fmt.Fprintf(w, "Delete book %s? [y/N] ", id)
		line, _ := bufio.NewReader(in).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(w, "Aborted.")
			return 0
		}
	}

	if err := c.DeleteBook(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", authHint(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{"deleted": id}, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Deleted book %s\n", id)
	}
	return 0
}
