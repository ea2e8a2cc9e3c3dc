package catalog

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "Mouse", false},
		{"empty", "", true},
		{"blank is sent as typed", "   ", false},
		{"max length", strings.Repeat("a", MaxNameLength), false},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
		{"multibyte counted as runes", strings.Repeat("é", MaxNameLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateName(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("expected validation error, got %T", err)
			}
		})
	}
}

func TestValidateSKU(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"KB-001", false},
		{"", true},
		{"  ", false},
		{strings.Repeat("x", MaxSKULength), false},
		{strings.Repeat("x", MaxSKULength+1), true},
	}

	for _, tt := range tests {
		if err := ValidateSKU(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("ValidateSKU(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestValidatePrice(t *testing.T) {
	tests := []struct {
		price   float64
		wantErr bool
	}{
		{0.01, false},
		{10, false},
		{0, true},
		{-5, true},
	}

	for _, tt := range tests {
		if err := ValidatePrice(tt.price); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePrice(%v) error = %v, wantErr %v", tt.price, err, tt.wantErr)
		}
	}
}

func TestValidateProductInput(t *testing.T) {
	errs := ValidateProductInput(ProductInput{Name: "Mouse", SKU: "M-1", Price: 10})
	if len(errs) != 0 {
		t.Errorf("valid input returned errors: %v", errs)
	}

	errs = ValidateProductInput(ProductInput{})
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3", len(errs))
	}

	joined := JoinValidationErrors(errs)
	if joined != "name is required; SKU is required; price must be greater than zero, got 0.00" {
		t.Errorf("JoinValidationErrors() = %q", joined)
	}

	formatted := FormatValidationErrors(errs)
	if !strings.Contains(formatted, "3 error(s)") || !strings.Contains(formatted, "  2. SKU is required") {
		t.Errorf("FormatValidationErrors() = %q", formatted)
	}

	if FormatValidationErrors(nil) != "No validation errors" {
		t.Error("empty list should report no errors")
	}
}
