package engine

import (
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// Precision is the number of significant digits in formatted results.
	Precision = 14

	// Values with a decimal exponent in [lowerExp, upperExp) are written in
	// fixed notation, all others in exponential notation.
	lowerExp = -3
	upperExp = 5
)

// Format renders v with Precision significant digits in auto notation,
// e.g. "0.33333333333333", "12", "1.23456e+5", "1e-7".
func Format(v Value) string {
	if v.IsZero() {
		return "0"
	}
	exp := exponent(v)
	v = v.Round(int32(Precision - 1 - exp))
	// Rounding may carry into a new digit (9.99… -> 10).
	exp = exponent(v)
	if exp >= lowerExp && exp < upperExp {
		return v.String()
	}
	mant := v.Shift(int32(-exp)).String()
	sign := "+"
	if exp < 0 {
		sign = "-"
		exp = -exp
	}
	return mant + "e" + sign + strconv.Itoa(exp)
}

// exponent returns the decimal exponent of the leading digit of v.
func exponent(v decimal.Decimal) int {
	digits := len(v.Coefficient().Text(10))
	if v.Sign() < 0 {
		digits-- // minus sign
	}
	return digits - 1 + int(v.Exponent())
}
