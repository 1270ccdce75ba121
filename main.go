// ABOUTME: Entry point for the bookshelf CLI
// ABOUTME: Terminal admin client for the Book API catalog

package main

import (
	"fmt"
	"os"

	"github.com/jdalton/bookshelf-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
