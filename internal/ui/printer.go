package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/muurk/catalog-admin/internal/admin"
	"github.com/muurk/catalog-admin/internal/catalog"
	"github.com/muurk/catalog-admin/internal/discovery"
)

// Detail is one "Key: Value" line in a result box
type Detail struct {
	Key   string
	Value string
}

// Printer writes styled command output.
// All CLI subcommands print through a Printer so output can be captured in tests.
type Printer struct {
	out    io.Writer
	width  int
	symbol string
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer, currencySymbol string) *Printer {
	if w == nil {
		w = os.Stdout
	}
	if currencySymbol == "" {
		currencySymbol = catalog.DefaultCurrencySymbol
	}
	return &Printer{
		out:    w,
		width:  GetTerminalWidth(),
		symbol: currencySymbol,
	}
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) *Printer {
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	p.width = width
	return p
}

// Width returns the width used for boxes
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintProducts prints products as a table, or a notice when there are none
func (p *Printer) PrintProducts(products []catalog.Product) {
	if len(products) == 0 {
		p.Println(SubtleStyle.Render("No products found."))
		return
	}
	p.Println(RenderProductTable(products, p.symbol))
}

// PrintPageInfo prints "Page 2 of 5 (43 products)" under a table
func (p *Printer) PrintPageInfo(page, totalPages, count int) {
	if totalPages < 1 {
		totalPages = 1
	}
	p.Println(SubtleStyle.Render(fmt.Sprintf("Page %d of %d (%d %s)", page, totalPages, count, plural(count, "product"))))
}

// PrintPagination prints the pager the way the console shows it
func (p *Printer) PrintPagination(pg admin.Pagination) {
	if !pg.Visible() {
		return
	}
	parts := make([]string, 0, len(pg.Items))
	for _, item := range pg.Items {
		label := item.Label()
		if item.Active {
			label = TitleStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	p.Println(strings.Join(parts, " "))
}

// PrintProduct prints a single product as a detail box
func (p *Printer) PrintProduct(product catalog.Product) {
	details := []Detail{
		{"ID", strconv.Itoa(product.ID)},
		{"Name", product.Name},
		{"SKU", product.SKU},
		{"Price", catalog.FormatMoney(p.symbol, product.Price)},
		{"Status", catalog.StatusLabel(product.Active)},
	}

	lines := []string{"", TitleStyle.Render(product.Name), ""}
	lines = append(lines, renderDetails(details)...)
	lines = append(lines, "")

	p.Println(lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(p.width-2).
		Padding(0, 2).
		Render(strings.Join(lines, "\n")))
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(RenderSuccessBox(title, details, p.width))
}

// PrintError prints an error result box with troubleshooting tips for err
func (p *Printer) PrintError(title string, err error) {
	p.Println(RenderErrorBox(title, err, catalog.TroubleshootingHint(err), p.width))
}

// PrintWarning prints a warning line
func (p *Printer) PrintWarning(message string) {
	p.Println(WarningStyle.Render(WarningMarker + "  " + message))
}

// PrintEndpoints prints catalog APIs found by a network scan
func (p *Printer) PrintEndpoints(endpoints []*discovery.Endpoint) {
	if len(endpoints) == 0 {
		p.Println(SubtleStyle.Render("No catalog APIs found on the local network."))
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("#", "Instance", "Host", "URL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	for i, e := range endpoints {
		t.Row(strconv.Itoa(i+1), e.Instance, strings.TrimSuffix(e.Hostname, "."), e.URL())
	}
	p.Println(t.String())
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderProductTable renders products as a bordered table
func RenderProductTable(products []catalog.Product, symbol string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("ID", "Name", "SKU", "Price", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			style := TableCellStyle
			if col == 3 {
				style = style.Align(lipgloss.Right)
			}
			if col == 4 && row < len(products) {
				if products[row].Active {
					return style.Inherit(ActiveStyle)
				}
				return style.Inherit(InactiveStyle)
			}
			return style
		})

	for _, product := range products {
		t.Row(
			strconv.Itoa(product.ID),
			product.Name,
			product.SKU,
			catalog.FormatMoney(symbol, product.Price),
			catalog.StatusLabel(product.Active),
		)
	}
	return t.String()
}

// RenderSuccessBox renders a success result box
func RenderSuccessBox(title string, details []Detail, width int) string {
	lines := []string{"", SuccessTitleStyle.Render(SuccessMarker + "  " + title), ""}
	if len(details) > 0 {
		lines = append(lines, renderDetails(details)...)
		lines = append(lines, "")
	}
	return boxStyle(SuccessColor, width).Render(strings.Join(lines, "\n"))
}

// RenderErrorBox renders an error result box with troubleshooting
func RenderErrorBox(title string, err error, troubleshooting []string, width int) string {
	lines := []string{"", ErrorTitleStyle.Render(FailureMarker + "  " + title), ""}

	if err != nil {
		lines = append(lines, ErrorMessageStyle.Render("Error: "+catalog.ShortMessage(err)), "")
	}

	if len(troubleshooting) > 0 {
		lines = append(lines, TroubleshootingTitleStyle.Render("Troubleshooting:"))
		for _, tip := range troubleshooting {
			lines = append(lines, TroubleshootingItemStyle.Render("  • "+tip))
		}
		lines = append(lines, "")
	}

	return boxStyle(ErrorColor, width).Render(strings.Join(lines, "\n"))
}

func renderDetails(details []Detail) []string {
	lines := make([]string, 0, len(details))
	for _, d := range details {
		lines = append(lines, DetailKeyStyle.Render(d.Key+":")+" "+DetailValueStyle.Render(d.Value))
	}
	return lines
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
