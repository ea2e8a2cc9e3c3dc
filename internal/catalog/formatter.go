package catalog

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrencySymbol prefixes prices in tables and banners
const DefaultCurrencySymbol = "R$"

// FormatPrice formats a price with exactly two decimals ("10" -> "10.00")
func FormatPrice(price float64) string {
	return decimal.NewFromFloat(price).StringFixed(2)
}

// FormatMoney formats a price with a currency symbol ("R$ 10.00")
func FormatMoney(symbol string, price float64) string {
	if symbol == "" {
		return FormatPrice(price)
	}
	return symbol + " " + FormatPrice(price)
}

// FormatCurrencyInput is the live mask of the price field: every digit typed
// is kept, the last two are cents, and the result is written in pt-BR style.
// "123456" -> "1.234,56", "5" -> "0,05", "" -> "".
func FormatCurrencyInput(raw string) string {
	digits := onlyDigits(raw)
	if digits == "" {
		return ""
	}

	value, err := decimal.NewFromString(digits)
	if err != nil {
		return ""
	}
	return formatBR(value.Shift(-2), 2)
}

// ParsePrice parses a price typed by a user or passed as a flag.
// Accepts "10.5", "10,50", "R$ 1.234,56" and "$ 3.99".
func ParsePrice(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "R$€£ ")
	if clean == "" {
		return 0, NewValidationError("price is required")
	}

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}

	value, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, NewValidationError(fmt.Sprintf("invalid price %q", s))
	}
	return value.InexactFloat64(), nil
}

// PriceInputValue renders a stored price in the form's pt-BR mask ("1234.5" -> "1.234,50").
// Prices with more than two decimals keep them so the value survives a round trip.
func PriceInputValue(price float64) string {
	value := decimal.NewFromFloat(price)
	places := int32(2)
	if exp := -value.Exponent(); exp > places {
		places = exp
	}
	return formatBR(value, places)
}

// StatusLabel returns the badge text for the active flag
func StatusLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// Summary returns a one-line summary of the product
func (p Product) Summary() string {
	return fmt.Sprintf("#%d %s [%s] %s (%s)", p.ID, p.Name, p.SKU, FormatPrice(p.Price), StatusLabel(p.Active))
}

// FormatProductDetailed returns a multi-line description of the product
func FormatProductDetailed(p Product, symbol string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Product #%d ===\n", p.ID))
	b.WriteString(fmt.Sprintf("Name:   %s\n", p.Name))
	b.WriteString(fmt.Sprintf("SKU:    %s\n", p.SKU))
	b.WriteString(fmt.Sprintf("Price:  %s\n", FormatMoney(symbol, p.Price)))
	b.WriteString(fmt.Sprintf("Status: %s\n", StatusLabel(p.Active)))

	return b.String()
}

// formatBR writes a value with '.' thousands and ',' decimal separators
func formatBR(value decimal.Decimal, places int32) string {
	fixed := value.StringFixed(places)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}

	out := grouped.String() + "," + fracPart
	if negative {
		out = "-" + out
	}
	return out
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
