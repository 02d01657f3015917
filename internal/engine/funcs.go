package engine

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

var constants = map[string]Value{
	"pi": decimal.RequireFromString("3.1415926535897932384626433832795028841971693993751058209749445923"),
	"e":  decimal.RequireFromString("2.7182818284590452353602874713526624977572470936999595749669676277"),
}

func init() {
	constants["PI"] = constants["pi"]
	constants["E"] = constants["e"]
}

// maxExact bounds the integer arguments handled by exact loops.
const maxExact = 5000

// maxExactBits bounds the size of exact powers. Larger powers are computed
// in float64.
const maxExactBits = 1 << 16

var errTooLarge = errors.New("argument too large")

type function struct {
	minArgs, maxArgs int
	apply            func(unit AngleUnit, args []Value) (Value, error)
}

var functions = map[string]function{
	"sin":   trig(math.Sin),
	"cos":   trig(math.Cos),
	"tan":   trig(math.Tan),
	"asin":  arctrig(math.Asin),
	"acos":  arctrig(math.Acos),
	"atan":  arctrig(math.Atan),
	"sinh":  float1(math.Sinh),
	"cosh":  float1(math.Cosh),
	"tanh":  float1(math.Tanh),
	"exp":   float1(math.Exp),
	"sqrt":  float1(math.Sqrt),
	"log10": float1(math.Log10),
	"log2":  float1(math.Log2),
	"log":   {1, 2, logFn},

	"abs":    {1, 1, func(_ AngleUnit, a []Value) (Value, error) { return a[0].Abs(), nil }},
	"square": {1, 1, func(_ AngleUnit, a []Value) (Value, error) { return a[0].Mul(a[0]), nil }},
	"pow":    {2, 2, func(_ AngleUnit, a []Value) (Value, error) { return pow(a[0], a[1]) }},

	"factorial":    {1, 1, func(_ AngleUnit, a []Value) (Value, error) { return factorial(a[0]) }},
	"permutations": {1, 2, permutations},
	"combinations": {2, 2, combinations},
}

// checked converts a float64 result back, rejecting NaN and infinities.
func checked(f float64) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}, ErrDomain
	}
	return decimal.NewFromFloat(f), nil
}

func float1(f func(float64) float64) function {
	return function{1, 1, func(_ AngleUnit, a []Value) (Value, error) {
		return checked(f(a[0].InexactFloat64()))
	}}
}

func trig(f func(float64) float64) function {
	return function{1, 1, func(unit AngleUnit, a []Value) (Value, error) {
		x := a[0].InexactFloat64()
		if unit == Degree {
			x = x * math.Pi / 180
		}
		return checked(f(x))
	}}
}

func arctrig(f func(float64) float64) function {
	return function{1, 1, func(unit AngleUnit, a []Value) (Value, error) {
		x := f(a[0].InexactFloat64())
		if unit == Degree {
			x = x * 180 / math.Pi
		}
		return checked(x)
	}}
}

func logFn(_ AngleUnit, a []Value) (Value, error) {
	x := math.Log(a[0].InexactFloat64())
	if len(a) == 2 {
		x /= math.Log(a[1].InexactFloat64())
	}
	return checked(x)
}

// pow raises x to y. Integer exponents are computed exactly when the result
// is not too large.
func pow(x, y Value) (Value, error) {
	if !y.IsInteger() || y.Abs().GreaterThan(decimal.NewFromInt(maxExact)) {
		return checked(math.Pow(x.InexactFloat64(), y.InexactFloat64()))
	}
	n := y.IntPart()
	if bits := int64(x.Coefficient().BitLen()); bits*abs64(n) > maxExactBits {
		return checked(math.Pow(x.InexactFloat64(), y.InexactFloat64()))
	}
	neg := n < 0
	if neg {
		n = -n
	}
	result, base := decimal.NewFromInt(1), x
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		if n > 1 {
			base = base.Mul(base)
		}
	}
	if neg {
		if result.IsZero() {
			return Value{}, ErrDivideByZero
		}
		return decimal.NewFromInt(1).DivRound(result, divPlaces), nil
	}
	return result, nil
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

func factorial(x Value) (Value, error) {
	if x.Sign() < 0 {
		return Value{}, ErrDomain
	}
	if !x.IsInteger() {
		// Non-integers go through the gamma function.
		return checked(math.Gamma(x.InexactFloat64() + 1))
	}
	if x.GreaterThan(decimal.NewFromInt(maxExact)) {
		return Value{}, errTooLarge
	}
	result := decimal.NewFromInt(1)
	for i := int64(2); i <= x.IntPart(); i++ {
		result = result.Mul(decimal.NewFromInt(i))
	}
	return result, nil
}

// validPair reports whether n and k are integers with 0 <= k <= n.
func validPair(n, k Value) bool {
	return n.IsInteger() && k.IsInteger() && k.Sign() >= 0 && !k.GreaterThan(n)
}

// permutations counts ordered selections of k out of n. With one argument
// k defaults to n. Invalid arguments yield zero.
func permutations(_ AngleUnit, a []Value) (Value, error) {
	n, k := a[0], a[0]
	if len(a) == 2 {
		k = a[1]
	}
	if !validPair(n, k) {
		return decimal.Zero, nil
	}
	if k.GreaterThan(decimal.NewFromInt(maxExact)) {
		return Value{}, errTooLarge
	}
	result := decimal.NewFromInt(1)
	for i := int64(0); i < k.IntPart(); i++ {
		result = result.Mul(n.Sub(decimal.NewFromInt(i)))
	}
	return result, nil
}

// combinations counts unordered selections of k out of n. Invalid arguments
// yield zero.
func combinations(_ AngleUnit, a []Value) (Value, error) {
	n, k := a[0], a[1]
	if !validPair(n, k) {
		return decimal.Zero, nil
	}
	if k.Mul(decimal.NewFromInt(2)).GreaterThan(n) {
		k = n.Sub(k)
	}
	if k.GreaterThan(decimal.NewFromInt(maxExact)) {
		return Value{}, errTooLarge
	}
	// Each partial product is itself a binomial coefficient, so the
	// division stays exact.
	result := decimal.NewFromInt(1)
	for i := int64(1); i <= k.IntPart(); i++ {
		num := n.Sub(k).Add(decimal.NewFromInt(i))
		result = result.Mul(num).Div(decimal.NewFromInt(i))
	}
	return result, nil
}
