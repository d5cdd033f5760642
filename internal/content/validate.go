package content

import (
	"strings"

	"github.com/kiranshivaraju/cardapio/internal/apperr"
	"github.com/shopspring/decimal"
)

const (
	maxNameLen = 200
	// maxPriceLen bounds the literal so huge coefficients never reach big.Int math.
	maxPriceLen = 32
	// maxIntDigits is the number of digits before the point NUMERIC(10,2) allows.
	maxIntDigits = 8
)

// maxPrice is the largest value NUMERIC(10,2) holds.
var maxPrice = decimal.RequireFromString("99999999.99")

func requireName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Invalid(field, "is required")
	}
	if len([]rune(name)) > maxNameLen {
		return "", apperr.Invalid(field, "must be at most 200 characters")
	}
	return name, nil
}

// ParsePrice accepts a decimal string such as "12.5", "0" or "1.5e1".
// Values are rounded to cents.
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperr.Invalid("price", "is required")
	}
	if len(s) > maxPriceLen {
		return decimal.Zero, apperr.Invalid("price", "must be a number")
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, apperr.Invalid("price", "must be a number")
	}
	if p.IsNegative() {
		return decimal.Zero, apperr.Invalid("price", "must not be negative")
	}
	if p.IsZero() {
		return decimal.Zero, nil
	}

	// Bound the magnitude from digits and exponent before Round rescales.
	magnitude := int64(p.NumDigits()) + int64(p.Exponent())
	if magnitude > maxIntDigits {
		return decimal.Zero, apperr.Invalid("price", "is too large")
	}
	if magnitude < -2 {
		// Below 0.001, so it rounds to zero.
		return decimal.Zero, nil
	}

	p = p.Round(2)
	if p.GreaterThan(maxPrice) {
		return decimal.Zero, apperr.Invalid("price", "is too large")
	}
	return p, nil
}

// optionalText trims s and maps blank strings to nil.
func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
