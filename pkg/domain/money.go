package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits kept for transaction amounts.
const AmountScale = 2

// maxAmount is the exclusive bound of a NUMERIC(12,2) column.
var maxAmount = decimal.New(1, 10)

// NormalizeAmount rounds amount to two fractional digits (half away from zero)
// and rejects values that do not fit NUMERIC(12,2).
func NormalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(AmountScale)
	if rounded.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Zero, fmt.Errorf("%w: amount %s out of range", ErrValidation, amount.String())
	}
	return rounded, nil
}

// AmountToCents converts a normalized amount to its integer cent representation.
func AmountToCents(amount decimal.Decimal) int64 {
	return amount.Shift(AmountScale).Round(0).IntPart()
}

// CentsToAmount converts stored cents back to a decimal amount.
func CentsToAmount(cents int64) decimal.Decimal {
	return decimal.New(cents, -AmountScale)
}
