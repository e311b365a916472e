// Package core provides the payout domain types and money handling.
//
// Money wraps an exact decimal so sums of many transaction amounts never
// drift the way float64 totals do.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an exact currency amount in pounds.
type Money struct {
	d decimal.Decimal
}

// MoneyFromPence builds an amount from an integer number of pence.
func MoneyFromPence(pence int64) Money {
	return Money{d: decimal.New(pence, -2)}
}

// ParseMoney parses an export amount cell.
//
// An empty cell is zero. A leading "£" and thousands separators are accepted,
// so both raw exports and re-saved spreadsheets parse the same way. Negative
// values are kept as-is (refunds and chargebacks appear that way).
//
// Examples:
//
//	ParseMoney("10.00")     -> 10.00
//	ParseMoney("£1,234.5")  -> 1234.50
//	ParseMoney("")          -> 0.00
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, nil
	}
	s = strings.TrimPrefix(s, "£")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	return Money{d: d}, nil
}

// Add returns m + o without rounding.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Equal compares amounts numerically, so 0.1 equals 0.10.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// Decimal exposes the underlying value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Float64 returns the amount as a float64 for display purposes only.
func (m Money) Float64() float64 {
	return m.d.InexactFloat64()
}

// String renders the amount with two decimals and no currency symbol.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts both numbers and quoted strings.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" {
		*m = Money{}
		return nil
	}
	v, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
