package admin

import "strconv"

// PageSize is the number of products shown per page
const PageSize = 10

// pageWindow is how many page numbers are shown on each side of the current page
const pageWindow = 2

// TotalPages returns ceil(count / PageSize)
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// PageItemKind identifies one control of the pagination bar
type PageItemKind int

const (
	PageItemPrev PageItemKind = iota
	PageItemNumber
	PageItemEllipsis
	PageItemNext
)

// PageItem is one control of the pagination bar. Page is the page the
// control navigates to (zero for ellipsis).
type PageItem struct {
	Kind   PageItemKind
	Page   int
	Active bool
}

// Label returns the text shown for the control
func (it PageItem) Label() string {
	switch it.Kind {
	case PageItemPrev:
		return "← Previous"
	case PageItemNext:
		return "Next →"
	case PageItemEllipsis:
		return "..."
	default:
		return strconv.Itoa(it.Page)
	}
}

// Pagination describes the pagination bar for one render
type Pagination struct {
	Current int
	Total   int
	Items   []PageItem
}

// Visible reports whether any controls are shown (more than one page)
func (p Pagination) Visible() bool {
	return len(p.Items) > 0
}

// BuildPagination lays out the pagination bar: Previous unless on the first
// page, a window of current±2 with jumps to the first and last page (and an
// ellipsis when a gap remains), and Next unless on the last page.
// Nothing is produced for one page or less.
func BuildPagination(current, total int) Pagination {
	p := Pagination{Current: current, Total: total}
	if total <= 1 {
		return p
	}

	if current > 1 {
		p.Items = append(p.Items, PageItem{Kind: PageItemPrev, Page: current - 1})
	}

	start := max(1, current-pageWindow)
	end := min(total, current+pageWindow)

	if start > 1 {
		p.Items = append(p.Items, PageItem{Kind: PageItemNumber, Page: 1})
		if start > 2 {
			p.Items = append(p.Items, PageItem{Kind: PageItemEllipsis})
		}
	}

	for i := start; i <= end; i++ {
		p.Items = append(p.Items, PageItem{Kind: PageItemNumber, Page: i, Active: i == current})
	}

	if end < total {
		if end < total-1 {
			p.Items = append(p.Items, PageItem{Kind: PageItemEllipsis})
		}
		p.Items = append(p.Items, PageItem{Kind: PageItemNumber, Page: total})
	}

	if current < total {
		p.Items = append(p.Items, PageItem{Kind: PageItemNext, Page: current + 1})
	}

	return p
}
