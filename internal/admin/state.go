package admin

import (
	"strconv"
	"strings"

	"github.com/muurk/catalog-admin/internal/catalog"
)

// State is the application state owned by the Controller.
// FilteredProducts is always derived from AllProducts and the filters.
type State struct {
	AllProducts      []catalog.Product
	FilteredProducts []catalog.Product
	CurrentPage      int

	// EditingID is set only while the form modal targets an existing product
	EditingID *int

	// FilterName is lower-cased; empty matches every product
	FilterName string

	// FilterID, when set, must equal the product id
	FilterID *int

	// FilterIDInvalid is set when the id filter holds text that is not a
	// number. Nothing matches it.
	FilterIDInvalid bool
}

// NewState returns an empty state on page 1
func NewState() State {
	return State{
		AllProducts:      []catalog.Product{},
		FilteredProducts: []catalog.Product{},
		CurrentPage:      1,
	}
}

// Matches reports whether p satisfies the current filters.
// The read-only helpers take a value so they work on Snapshot().State.
func (s State) Matches(p catalog.Product) bool {
	if s.FilterIDInvalid {
		return false
	}
	if !strings.Contains(strings.ToLower(p.Name), s.FilterName) {
		return false
	}
	return s.FilterID == nil || p.ID == *s.FilterID
}

// ApplyFilters recomputes FilteredProducts from AllProducts, keeping order
func (s *State) ApplyFilters() {
	filtered := make([]catalog.Product, 0, len(s.AllProducts))
	for _, p := range s.AllProducts {
		if s.Matches(p) {
			filtered = append(filtered, p)
		}
	}
	s.FilteredProducts = filtered
}

// TotalPages returns the page count of the filtered list
func (s State) TotalPages() int {
	return TotalPages(len(s.FilteredProducts))
}

// ClampPage keeps CurrentPage within [1, TotalPages] after the list shrank
func (s *State) ClampPage() {
	if total := s.TotalPages(); s.CurrentPage > total {
		s.CurrentPage = total
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
}

// PageProducts returns FilteredProducts[(CurrentPage-1)*PageSize : CurrentPage*PageSize]
func (s State) PageProducts() []catalog.Product {
	start := (s.CurrentPage - 1) * PageSize
	if start < 0 || start >= len(s.FilteredProducts) {
		return []catalog.Product{}
	}
	end := min(start+PageSize, len(s.FilteredProducts))
	return s.FilteredProducts[start:end]
}

// clone returns a copy that shares no slices or pointers with s
func (s *State) clone() State {
	c := *s
	c.AllProducts = append([]catalog.Product(nil), s.AllProducts...)
	c.FilteredProducts = append([]catalog.Product(nil), s.FilteredProducts...)
	if s.EditingID != nil {
		id := *s.EditingID
		c.EditingID = &id
	}
	if s.FilterID != nil {
		id := *s.FilterID
		c.FilterID = &id
	}
	return c
}

// parseFilterID reads the id filter the way the search box always has:
// leading whitespace is skipped and the leading integer is used ("12abc" is 12).
// ok is false when no digits lead the text.
func parseFilterID(text string) (id int, ok bool) {
	text = strings.TrimSpace(text)
	end := 0
	for i, r := range text {
		if r >= '0' && r <= '9' {
			end = i + 1
			continue
		}
		if i == 0 && (r == '-' || r == '+') {
			continue
		}
		break
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(text[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
