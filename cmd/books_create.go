// ABOUTME: Books create subcommand
// ABOUTME: Uploads a new book with cover image and book file as multipart

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
	createTitle       string
	createGenre       string
	createDescription string
	createCoverPath   string
	createFilePath    string
)

var booksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new book",
	Long:  `Upload a new book. Title, genre, description, cover image and book file are all required.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runBooksCreate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	booksCmd.AddCommand(booksCreateCmd)
	booksCreateCmd.Flags().StringVar(&createTitle, "title", "", "Book title")
	booksCreateCmd.Flags().StringVar(&createGenre, "genre", "", "Book genre")
	booksCreateCmd.Flags().StringVar(&createDescription, "description", "", "Book description")
	booksCreateCmd.Flags().StringVar(&createCoverPath, "cover", "", "Path to the cover image")
	booksCreateCmd.Flags().StringVar(&createFilePath, "file", "", "Path to the book file")
}

// runBooksCreate validates input, uploads the book, returns exit code
func runBooksCreate(ctx context.Context, w io.Writer) int {
	c, store, err := newClient()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	if _, err := requireSession(store); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}

	if createTitle == "" || createGenre == "" || createDescription == "" {
		fmt.Fprintf(w, "Error: --title, --genre and --description are required\n")
		return 2
	}
	if createCoverPath == "" || createFilePath == "" {
		fmt.Fprintf(w, "Error: --cover and --file are required\n")
		return 2
	}

	cover, coverCloser, err := client.UploadFromFile(createCoverPath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer coverCloser.Close()

	file, fileCloser, err := client.UploadFromFile(createFilePath)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}
	defer fileCloser.Close()

	book, err := c.CreateBook(ctx, client.BookInput{
		Title:       createTitle,
		Genre:       createGenre,
		Description: createDescription,
		CoverImage:  cover,
		File:        file,
	})
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", authHint(err))
		return 2
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(book, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintf(w, "Created book %s (%s)\n", book.Title, book.ID)
	}
	return 0
}
