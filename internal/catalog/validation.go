package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxNameLength is the longest product name the backend stores
	MaxNameLength = 120

	// MaxSKULength is the longest SKU the backend stores
	MaxSKULength = 50
)

// ValidateName validates a product name.
// Names must be non-empty and at most MaxNameLength characters. Whitespace is
// sent as typed; the backend accepts it.
func ValidateName(name string) error {
	if name == "" {
		return NewValidationError("name is required")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return NewValidationError(fmt.Sprintf("name too long (max %d chars): %d chars", MaxNameLength, n))
	}
	return nil
}

// ValidateSKU validates a product SKU.
// SKUs must be non-empty and at most MaxSKULength characters.
func ValidateSKU(sku string) error {
	if sku == "" {
		return NewValidationError("SKU is required")
	}
	if n := utf8.RuneCountInString(sku); n > MaxSKULength {
		return NewValidationError(fmt.Sprintf("SKU too long (max %d chars): %d chars", MaxSKULength, n))
	}
	return nil
}

// ValidatePrice validates a product price. Zero is rejected even though the
// backend model allows it.
func ValidatePrice(price float64) error {
	if !(price > 0) {
		return NewValidationError(fmt.Sprintf("price must be greater than zero, got %s", FormatPrice(price)))
	}
	return nil
}

// ValidateProductInput validates every field of a create/update body.
// Returns a slice of validation errors (empty if valid).
func ValidateProductInput(input ProductInput) []error {
	var errors []error

	if err := ValidateName(input.Name); err != nil {
		errors = append(errors, err)
	}
	if err := ValidateSKU(input.SKU); err != nil {
		errors = append(errors, err)
	}
	if err := ValidatePrice(input.Price); err != nil {
		errors = append(errors, err)
	}

	return errors
}

// FormatValidationErrors formats a slice of validation errors as a numbered list
func FormatValidationErrors(errors []error) string {
	if len(errors) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Product validation failed with %d error(s):\n", len(errors)))

	for i, err := range errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, validationText(err)))
	}

	return sb.String()
}

// JoinValidationErrors joins validation messages on one line for banners
func JoinValidationErrors(errors []error) string {
	parts := make([]string, 0, len(errors))
	for _, err := range errors {
		parts = append(parts, validationText(err))
	}
	return strings.Join(parts, "; ")
}

func validationText(err error) string {
	if apiErr, ok := asAPIError(err); ok && apiErr.Type == ErrTypeValidation {
		return apiErr.Message
	}
	return err.Error()
}
