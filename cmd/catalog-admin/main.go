// Catalog-admin is an administration console for a product catalog REST API.
//
// It lists, filters, pages, creates, edits and deletes products through the
// catalog's /products endpoints, either interactively in the terminal, from a
// browser, or one command at a time for scripting.
//
// Usage:
//
//	catalog-admin [command] [flags]
//
// Running without arguments launches the terminal console.
// See 'catalog-admin --help' for available commands.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	err := newRootCmd(newApp()).Execute()
	if err == nil {
		return
	}
	// Errors already shown in an error box are not printed twice
	if !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
