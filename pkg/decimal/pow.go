package decimal

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrNotFinite reports an exponentiation that left the finite range,
// e.g. a growth factor of zero raised to a negative power.
type ErrNotFinite struct {
	Base     decimal.Decimal
	Exponent decimal.Decimal
}

func (e *ErrNotFinite) Error() string {
	return fmt.Sprintf("non-finite result for %s^%s", e.Base, e.Exponent)
}

// Pow raises base to a possibly fractional exponent. shopspring exponentiation
// is exact only for integer powers, so fractional exponents go through float64;
// chained formulas keep full decimal precision everywhere else and round only
// at output assembly.
func Pow(base, exponent decimal.Decimal) (decimal.Decimal, error) {
	if exponent.IsInteger() {
		// Guard 0^-n before handing off to the decimal fast path.
		if !base.IsZero() || !exponent.IsNegative() {
			return base.Pow(exponent), nil
		}
		return decimal.Zero, &ErrNotFinite{Base: base, Exponent: exponent}
	}
	f := math.Pow(base.InexactFloat64(), exponent.InexactFloat64())
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &ErrNotFinite{Base: base, Exponent: exponent}
	}
	return decimal.NewFromFloat(f), nil
}

// GrowthFactor returns (1+rate)^periods, the compounding factor shared by the
// future-cost, corpus and SIP formulas.
func GrowthFactor(rate, periods decimal.Decimal) (decimal.Decimal, error) {
	return Pow(decimal.NewFromInt(1).Add(rate), periods)
}
