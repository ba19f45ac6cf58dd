package actions

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultMaxAmount caps a single deposit or withdrawal when no limit is
// configured.
var DefaultMaxAmount = decimal.NewFromInt(10_000_000)

// Shape bounds enforced before any decimal comparison. Comparing two
// decimals rescales both to a common exponent, materializing one digit per
// exponent step, so a short input like "1e50000000" must be refused on its
// exponent and digit count alone; 18 integer digits and 8 fractional digits
// comfortably cover the storage column.
const (
	maxAmountIntegerDigits = 18
	minAmountExponent      = -8
)

func validateAmount(amount, max decimal.Decimal) error {
	if max.IsZero() {
		max = DefaultMaxAmount
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrInvalidAmount)
	}
	if amount.Exponent() < minAmountExponent ||
		int64(amount.NumDigits())+int64(amount.Exponent()) > maxAmountIntegerDigits {
		return fmt.Errorf("%w: amount is out of range", ErrInvalidAmount)
	}
	if amount.GreaterThan(max) {
		return fmt.Errorf("%w: amount exceeds the per-transaction limit of %s", ErrInvalidAmount, max)
	}
	return nil
}
