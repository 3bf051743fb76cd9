// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents. Parsing goes through shopspring/decimal
// so that user input never passes through a binary float.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ParseAmount converts a decimal string to cents with half-up rounding.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. A comma
// is never a thousands separator, so comma input with more than two decimals
// ("1,234") or mixed with a dot ("1,234.50") is rejected rather than read as
// a small amount. Zero is allowed here; callers that need a strictly positive
// amount check it through Transaction.Validate.
//
// Examples:
//
//	ParseAmount("12.345") -> 1235, nil (rounds half up)
//	ParseAmount("12,34")  -> 1234, nil
//	ParseAmount("1,234")  -> error (field "amount")
//	ParseAmount("-1")     -> error (field "amount")
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, NewValidationError("amount", "is required")
	}
	if whole, frac, ok := strings.Cut(s, ","); ok {
		if strings.Contains(whole, ".") || strings.ContainsAny(frac, ".,") || len(frac) > 2 {
			return Money{}, NewValidationError("amount", "comma is a decimal separator with at most two decimals")
		}
		s = whole + "." + frac
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, NewValidationError("amount", "must be a number")
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(hundred).Round(0)
	if !cents.IsInteger() || cents.GreaterThan(decimal.NewFromInt(math.MaxInt64/2)) {
		return Money{}, NewValidationError("amount", "out of range")
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MoneyFromFloat converts a float amount (as decoded from JSON numbers) to cents.
// NaN, infinities and negative values are rejected.
func MoneyFromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return Money{}, ErrInvalidAmount
	}
	return ParseAmount(decimal.NewFromFloat(f).String())
}

// Dollars returns the amount in currency units for display and ratio math.
// Sums are always computed in cents.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount as a plain decimal with two places.
func (m Money) String() string {
	return decimal.New(m.Cents, -2).StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number in currency units.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "null" {
		return NewValidationError("amount", "is required")
	}
	parsed, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
