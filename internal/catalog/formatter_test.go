package catalog

import (
	"strings"
	"testing"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{10, "10.00"},
		{10.5, "10.50"},
		{0.1 + 0.2, "0.30"},
		{1234.567, "1234.57"},
		{0, "0.00"},
	}

	for _, tt := range tests {
		if got := FormatPrice(tt.price); got != tt.want {
			t.Errorf("FormatPrice(%v) = %q, want %q", tt.price, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	if got := FormatMoney("R$", 20); got != "R$ 20.00" {
		t.Errorf("FormatMoney() = %q, want R$ 20.00", got)
	}
	if got := FormatMoney("", 20); got != "20.00" {
		t.Errorf("FormatMoney() without symbol = %q", got)
	}
}

func TestFormatCurrencyInput(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"abc", ""},
		{"5", "0,05"},
		{"150", "1,50"},
		{"123456", "1.234,56"},
		{"1.234,56", "1.234,56"},
		{"R$ 99", "0,99"},
		{"000123", "1,23"},
		{"123456789", "1.234.567,89"},
	}

	for _, tt := range tests {
		if got := FormatCurrencyInput(tt.raw); got != tt.want {
			t.Errorf("FormatCurrencyInput(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"10.5", 10.5, false},
		{"10,50", 10.5, false},
		{"R$ 1.234,56", 1234.56, false},
		{"$ 3.99", 3.99, false},
		{"", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePrice(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePrice(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCurrencyMaskRoundTrip(t *testing.T) {
	for _, price := range []float64{0.05, 1.5, 10, 1234.56, 99999.99} {
		masked := PriceInputValue(price)
		if got, err := ParsePrice(masked); err != nil || got != price {
			t.Errorf("ParsePrice(PriceInputValue(%v)) = %v, %v (masked %q)", price, got, err, masked)
		}
		if again := FormatCurrencyInput(masked); again != masked {
			t.Errorf("mask not stable for %q: got %q", masked, again)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if StatusLabel(true) != "Active" || StatusLabel(false) != "Inactive" {
		t.Error("unexpected status labels")
	}
}

func TestProductFormatting(t *testing.T) {
	p := Product{ID: 2, Name: "Keyboard", SKU: "K-1", Price: 20, Active: false}

	if got := p.Summary(); got != "#2 Keyboard [K-1] 20.00 (Inactive)" {
		t.Errorf("Summary() = %q", got)
	}

	detailed := FormatProductDetailed(p, "R$")
	for _, want := range []string{"=== Product #2 ===", "SKU:    K-1", "Price:  R$ 20.00", "Status: Inactive"} {
		if !strings.Contains(detailed, want) {
			t.Errorf("FormatProductDetailed() missing %q:\n%s", want, detailed)
		}
	}

	if p.Input() != (ProductInput{Name: "Keyboard", SKU: "K-1", Price: 20}) {
		t.Errorf("Input() = %+v", p.Input())
	}
}
