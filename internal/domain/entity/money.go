package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in paise (1/100 rupee)
type Money int64

// Rupees converts a whole-rupee amount to Money
func Rupees(r int64) Money {
	return Money(r * 100)
}

// ParseMoney parses a decimal rupee string such as "100" or "99.50".
// Negative or non-numeric input yields zero.
func ParseMoney(s string) Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return 0
	}
	return Money(d.Shift(2).Round(0).IntPart())
}

// Decimal returns the amount in rupees
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats with two decimal places, e.g. "80.00"
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Short drops the fraction when it is zero, e.g. "80" or "80.50"
func (m Money) Short() string {
	if m%100 == 0 {
		return m.Decimal().StringFixed(0)
	}
	return m.String()
}

// Plain formats without trailing zeros, e.g. "80" or "80.5"
func (m Money) Plain() string {
	return m.Decimal().String()
}

// MarshalJSON renders the amount as a JSON number in rupees
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a rupee amount as number or string
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	*m = Money(d.Shift(2).Round(0).IntPart())
	return nil
}
