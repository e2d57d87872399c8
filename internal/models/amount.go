package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value as written in a report.
// It serializes as a bare JSON number; integral values carry no fraction.
type Amount struct {
	d decimal.Decimal
}

// NewAmount creates an integral Amount
func NewAmount(v int64) Amount {
	return Amount{d: decimal.NewFromInt(v)}
}

// AmountFromDecimal wraps a decimal value
func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{d: d}
}

// ParseAmount parses a plain decimal string such as "1234" or "12.5"
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{d: d}, nil
}

// MustAmount is ParseAmount for constants in tests and layouts
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Decimal returns the underlying decimal
func (a Amount) Decimal() decimal.Decimal { return a.d }

// Add returns a + b
func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }

// Equal reports whether both amounts hold the same value
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }

// IsZero reports whether the amount is zero
func (a Amount) IsZero() bool { return a.d.IsZero() }

// IsInteger reports whether the amount has no fractional part
func (a Amount) IsInteger() bool { return a.d.IsInteger() }

func (a Amount) String() string { return a.d.String() }

// Ptr returns a pointer to a copy of a
func (a Amount) Ptr() *Amount { return &a }

// MarshalJSON writes the amount as a JSON number
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts both numbers and quoted numbers
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", data, err)
	}
	a.d = d
	return nil
}
