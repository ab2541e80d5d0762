package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with full decimal precision. Rounding to cents
// happens only where a result is reported.
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a float64
func NewMoney(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds the amount to cents, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Gain is the amount earned over principal. Negative for a loss.
func (m Money) Gain(principal Money) Money {
	return Money{m.Decimal.Sub(principal.Decimal)}
}

// Tax applies a percent rate (15 for 15%) to the amount. A negative amount
// yields a negative tax; a non-positive rate yields zero.
func (m Money) Tax(ratePercent decimal.Decimal) Money {
	if !ratePercent.IsPositive() {
		return Zero()
	}
	return Money{m.Decimal.Mul(Fraction(ratePercent))}
}

// Grow multiplies the amount by a growth factor.
func (m Money) Grow(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}
