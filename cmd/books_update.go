// ABOUTME: Books update subcommand
// ABOUTME: Patches book fields; omitted flags leave server state untouched

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

var (
	updateTitle       string
	updateGenre       string
	updateDescription string
	updateCoverPath   string
	updateFilePath    string
	updateForce       bool
)

var booksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an existing book",
	Long: `Update book fields. Only the flags you pass are sent; the server
keeps everything else, including existing cover and file uploads.

Books you did not author are refused locally unless --force is given.
The server enforces ownership either way; --force just skips the
client-side check.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksUpdate(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksCmd.AddCommand(booksUpdateCmd)
	booksUpdateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	booksUpdateCmd.Flags().StringVar(&updateGenre, "genre", "", "New genre")
	booksUpdateCmd.Flags().StringVar(&updateDescription, "description", "", "New description")
	booksUpdateCmd.Flags().StringVar(&updateCoverPath, "cover", "", "Path to a replacement cover image")
	booksUpdateCmd.Flags().StringVar(&updateFilePath, "file", "", "Path to a replacement book file")
	booksUpdateCmd.Flags().BoolVar(&updateForce, "force", false, "Skip the local author ownership check")
}

// runBooksUpdate patches a book and returns exit code
func runBooksUpdate(ctx context.Context, w io.Writer, id string) int {
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

	if updateTitle == "" && updateGenre == "" && updateDescription == "" &&
		updateCoverPath == "" && updateFilePath == "" {
		fmt.Fprintf(w, "Error: nothing to update; pass at least one field flag\n")
		return 2
	}

	if !updateForce {
		current, err := c.GetBook(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", authHint(err))
			return 2
		}
		if current.Author.ID != sess.UserID {
			fmt.Fprintf(w, "Error: you are not the author of %q; the server will reject this update\n", current.Title)
			return 1
		}
	}

	input := client.BookInput{
		Title:       updateTitle,
		Genre:       updateGenre,
		Description: updateDescription,
	}

	if updateCoverPath != "" {
		cover, closer, err := client.UploadFromFile(updateCoverPath)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer closer.Close()
		input.CoverImage = cover
	}
	if updateFilePath != "" {
		file, closer, err := client.UploadFromFile(updateFilePath)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
		defer closer.Close()
		input.File = file
	}

	book, err := c.UpdateBook(ctx, id, input)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", authHint(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Updated book %s (%s)\n", book.Title, book.ID)
	}
	return 0
}
