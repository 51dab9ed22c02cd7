// Package money holds currency rounding and summation helpers.
package money

import (
	"math"

	"github.com/shopspring/decimal"
)

// UnitTolerance is the accepted drift between displayed whole-unit values.
const UnitTolerance = 1.0

// Round rounds val to the given number of decimal places, half away from zero.
func Round(val float64, places int32) float64 {
	return decimal.NewFromFloat(val).Round(places).InexactFloat64()
}

// RoundUnits rounds to whole currency units.
func RoundUnits(val float64) float64 {
	return Round(val, 0)
}

// RoundCents rounds to two decimals, i.e. to represent real currency.
func RoundCents(val float64) float64 {
	return Round(val, 2)
}

// Sum adds values without accumulating binary floating point error.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}

// Sub returns a - b computed in decimal.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).InexactFloat64()
}

// Mul returns a * n computed in decimal.
func Mul(a float64, n int) float64 {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromInt(int64(n))).InexactFloat64()
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// NonNegative clamps negative values (including -0) to zero.
func NonNegative(val float64) float64 {
	if val <= 0 {
		return 0
	}
	return val
}
