// Package money converts between wire decimals and stored minor units.
//
// Amounts are kept as int64 hundredths so that budget spend can be
// adjusted with integer arithmetic inside the database.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept.
const Scale = 2

// ErrInvalidAmount is returned for negative, malformed or out-of-range values.
var ErrInvalidAmount = errors.New("amount must be a non-negative number of at most 100000000000")

// Amount is a non-negative monetary value in minor units.
type Amount int64

// MaxAmount is the largest accepted value, 100 billion in major units.
// It leaves room for hundreds of thousands of maximal charges to be summed
// into one budget without leaving int64.
const MaxAmount Amount = 1e13

var maxMinor = decimal.NewFromInt(int64(MaxAmount))

// FromDecimal rounds d half-up to two places and converts it to minor units.
func FromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	minor := d.Round(Scale).Shift(Scale)
	if minor.GreaterThan(maxMinor) {
		return 0, ErrInvalidAmount
	}
	return Amount(minor.IntPart()), nil
}

// Decimal returns the amount in major units.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -Scale)
}

// String formats the amount with exactly two decimals.
func (a Amount) String() string {
	return a.Decimal().StringFixed(Scale)
}
