// Package ui renders styled terminal output for the catalog-admin CLI.
//
// The one-shot subcommands (list, show, create, update, delete, scan,
// status) print through a Printer. It uses Lipgloss for boxes and tables and
// never takes over the terminal; the interactive console lives in package tui
// and reuses the colour palette defined here.
//
//	p := ui.NewPrinter(os.Stdout, "R$")
//	p.PrintProducts(products)
//	p.PrintSuccess("Product created", ui.Detail{Key: "ID", Value: "7"})
//	p.PrintError("Could not reach the catalog API", err)
//
// Error boxes include troubleshooting tips derived from the catalog error
// type (connection refused, DNS failure, timeout, ...).
//
// Logging is controlled via CATALOG_ADMIN_LOG_LEVEL. When it is unset zap is
// silent so log lines never interleave with the rendered output.
package ui
