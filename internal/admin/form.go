package admin

import (
	"strconv"
	"strings"

	"github.com/muurk/catalog-admin/internal/catalog"
)

// FormMode tells whether the product form creates or edits
type FormMode int

const (
	FormModeCreate FormMode = iota
	FormModeEdit
)

// Title returns the modal title for the mode
func (m FormMode) Title() string {
	if m == FormModeEdit {
		return "Edit Product"
	}
	return "New Product"
}

// Form holds the raw field values of the product modal.
// ID is the hidden id field; it is empty for a new product.
type Form struct {
	ID     string
	Name   string
	SKU    string
	Price  string
	Active bool
}

// NewForm returns the blank form shown for a new product
func NewForm() Form {
	return Form{Active: true}
}

// FormFromProduct fills the form from a fetched product
func FormFromProduct(p catalog.Product) Form {
	return Form{
		ID:     strconv.Itoa(p.ID),
		Name:   p.Name,
		SKU:    p.SKU,
		Price:  catalog.PriceInputValue(p.Price),
		Active: p.Active,
	}
}

// Mode derives the form mode from the hidden id field
func (f Form) Mode() FormMode {
	if strings.TrimSpace(f.ID) != "" {
		return FormModeEdit
	}
	return FormModeCreate
}

// FormData is the submission record extracted from the form
type FormData struct {
	Name   string
	SKU    string
	Price  float64
	Active bool
}

// Data extracts the submission record. An unreadable price becomes 0 so it
// fails validation instead of reaching the backend.
func (f Form) Data() FormData {
	price, err := catalog.ParsePrice(f.Price)
	if err != nil {
		price = 0
	}
	return FormData{
		Name:   f.Name,
		SKU:    f.SKU,
		Price:  price,
		Active: f.Active,
	}
}

// Input converts the record to an API request body
func (d FormData) Input() catalog.ProductInput {
	return catalog.ProductInput{
		Name:   d.Name,
		SKU:    d.SKU,
		Price:  d.Price,
		Active: d.Active,
	}
}
