package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point monetary amount stored as int64 minor units
// (cents). All ledger arithmetic happens on the integer representation;
// decimal.Decimal is only used at the parsing/presentation boundary.
type Money struct {
	units int64
}

// MoneyZero is the zero amount.
var MoneyZero = Money{}

// NewMoneyFromUnits builds a Money from raw minor units.
func NewMoneyFromUnits(units int64) Money {
	return Money{units: units}
}

// NewMoneyFromDecimal converts a decimal amount to Money. The amount must
// fit in two fractional digits exactly; sub-cent precision is rejected
// rather than rounded.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(2)
	if !shifted.Equal(shifted.Truncate(0)) {
		return Money{}, fmt.Errorf("%w: %s has sub-cent precision", ErrInvalidAmount, d.String())
	}
	if !shifted.BigInt().IsInt64() {
		return Money{}, fmt.Errorf("%w: %s", ErrAmountOutOfRange, d.String())
	}
	return Money{units: shifted.IntPart()}, nil
}

// NewMoneyFromString parses a decimal string ("1300.00") into Money.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return NewMoneyFromDecimal(d)
}

// MustMoney parses a decimal string and panics on failure. Test helper.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Units returns the raw minor units.
func (m Money) Units() int64 {
	return m.units
}

// Add returns m + other, failing on int64 overflow.
func (m Money) Add(other Money) (Money, error) {
	sum := m.units + other.units
	if (other.units > 0 && sum < m.units) || (other.units < 0 && sum > m.units) {
		return Money{}, ErrAmountOutOfRange
	}
	return Money{units: sum}, nil
}

// Sub returns m - other, failing on int64 overflow.
func (m Money) Sub(other Money) (Money, error) {
	if other.units == math.MinInt64 {
		return Money{}, ErrAmountOutOfRange
	}
	return m.Add(Money{units: -other.units})
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{units: -m.units}
}

// Cmp compares m to other: -1 if less, 0 if equal, 1 if greater.
func (m Money) Cmp(other Money) int {
	switch {
	case m.units < other.units:
		return -1
	case m.units > other.units:
		return 1
	default:
		return 0
	}
}

// Equal reports whether m == other.
func (m Money) Equal(other Money) bool {
	return m.units == other.units
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.units > other.units
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.units < other.units
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.units == 0
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.units > 0
}

// IsNegative reports whether m < 0.
func (m Money) IsNegative() bool {
	return m.units < 0
}

// Decimal returns the amount as a decimal with two fractional digits.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.units, -2)
}

// String formats the amount as a plain decimal ("1300.00").
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}
