package b

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmountFormat = errors.New("invalid amount format")

// FromString parses an amount typed by a user.
func FromString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount: %w", ErrInvalidAmountFormat)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("could not parse amount %q: %w", s, ErrInvalidAmountFormat)
	}
	return d, nil
}

// MustFromString parses a constant and panics on failure. Only meant for
// package level values and tests.
func MustFromString(s string) decimal.Decimal {
	d, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
