// Package tui is the interactive terminal console of catalog-admin.
//
// The console is a Bubble Tea program that paints a view.Document. Key presses
// are turned into admin.Controller calls; calls that talk to the catalog API
// (load, edit, save, delete) run as tea commands so the screen stays
// responsive, and the document's change feed repaints the screen when they
// finish or when a banner expires.
//
// Components:
//   - bubbles/table: the product table, one page at a time
//   - bubbles/textinput: the name and id filters and the product form
//   - bubbles/spinner: the loading indicator
//   - bubbles/help: context-aware key help
//
// Keys on the table: "/" name filter, "i" id filter, "c" clear filters,
// left/right page, "n" new, "e" or enter edit, "d" delete, "r" reload,
// "?" help, "q" quit. In the form tab moves between fields, space toggles
// Active, enter saves and esc cancels. The price field is masked while typing
// (digits only, last two are cents).
//
// Logging goes to a file while the console runs so it does not corrupt the
// screen (see logging.InitializeWithOutput).
package tui
