// Package types provides common type aliases and utilities.
package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// A comma decimal separator ("1,25") is accepted as well.
func NewMoneyFromString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// MulInt returns m * n without leaving decimal arithmetic.
func MulInt(m Money, n int) Money {
	return m.Mul(decimal.NewFromInt(int64(n)))
}

// Format prints m with at least two fraction digits and never rounds:
// 225 is "225.00", 1.124 stays "1.124".
func Format(m Money) string {
	places := int32(2)
	if exp := -m.Exponent(); exp > places {
		places = exp
	}
	return m.StringFixed(places)
}
