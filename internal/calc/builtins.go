package calc

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Function is a whitelisted callable. MaxArgs < 0 means variadic.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int
	Call    func(args []float64) (float64, error)
}

// Constants are the named values an expression may reference.
var Constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"tau": 2 * math.Pi,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

// Functions is the closed set of callables. Nothing outside this table and
// Constants can be referenced by an expression.
var Functions = map[string]Function{}

func init() {
	unary := map[string]func(float64) float64{
		"exp":     math.Exp,
		"exp2":    math.Exp2,
		"expm1":   math.Expm1,
		"cbrt":    math.Cbrt,
		"sin":     math.Sin,
		"cos":     math.Cos,
		"tan":     math.Tan,
		"atan":    math.Atan,
		"sinh":    math.Sinh,
		"cosh":    math.Cosh,
		"tanh":    math.Tanh,
		"asinh":   math.Asinh,
		"ceil":    math.Ceil,
		"floor":   math.Floor,
		"trunc":   math.Trunc,
		"fabs":    math.Abs,
		"abs":     math.Abs,
		"erf":     math.Erf,
		"erfc":    math.Erfc,
		"gamma":   math.Gamma,
		"degrees": func(x float64) float64 { return x * 180 / math.Pi },
		"radians": func(x float64) float64 { return x * math.Pi / 180 },
		"lgamma": func(x float64) float64 {
			v, _ := math.Lgamma(x)
			return v
		},
	}
	for name, fn := range unary {
		register(name, 1, 1, wrapUnary(fn))
	}

	// Functions with a restricted domain report a math error instead of
	// returning NaN.
	register("sqrt", 1, 1, domainUnary(math.Sqrt, func(x float64) bool { return x >= 0 }))
	register("log2", 1, 1, domainUnary(math.Log2, func(x float64) bool { return x > 0 }))
	register("log10", 1, 1, domainUnary(math.Log10, func(x float64) bool { return x > 0 }))
	register("log1p", 1, 1, domainUnary(math.Log1p, func(x float64) bool { return x > -1 }))
	register("asin", 1, 1, domainUnary(math.Asin, func(x float64) bool { return x >= -1 && x <= 1 }))
	register("acos", 1, 1, domainUnary(math.Acos, func(x float64) bool { return x >= -1 && x <= 1 }))
	register("acosh", 1, 1, domainUnary(math.Acosh, func(x float64) bool { return x >= 1 }))
	register("atanh", 1, 1, domainUnary(math.Atanh, func(x float64) bool { return x > -1 && x < 1 }))

	register("log", 1, 2, builtinLog)
	register("round", 1, 2, builtinRound)
	register("min", 2, -1, func(args []float64) (float64, error) { return lo.Min(args), nil })
	register("max", 2, -1, func(args []float64) (float64, error) { return lo.Max(args), nil })
	register("pow", 2, 2, func(args []float64) (float64, error) { return power(args[0], args[1]) })
	register("atan2", 2, 2, func(args []float64) (float64, error) { return math.Atan2(args[0], args[1]), nil })
	register("copysign", 2, 2, func(args []float64) (float64, error) { return math.Copysign(args[0], args[1]), nil })
	register("hypot", 1, -1, builtinHypot)
	register("fmod", 2, 2, func(args []float64) (float64, error) {
		if args[1] == 0 {
			return 0, newError(KindMath, 0, "fmod by zero")
		}
		return math.Mod(args[0], args[1]), nil
	})
	register("remainder", 2, 2, func(args []float64) (float64, error) {
		if args[1] == 0 {
			return 0, newError(KindMath, 0, "remainder by zero")
		}
		return math.Remainder(args[0], args[1]), nil
	})
	// Predicates yield 1 or 0 so they compose with arithmetic.
	register("isfinite", 1, 1, predicate(func(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }))
	register("isinf", 1, 1, predicate(func(x float64) bool { return math.IsInf(x, 0) }))
	register("isnan", 1, 1, predicate(math.IsNaN))
	register("ulp", 1, 1, wrapUnary(ulp))
	register("factorial", 1, 1, builtinFactorial)
	register("isqrt", 1, 1, builtinIsqrt)
	register("gcd", 1, -1, builtinGCD)
	register("lcm", 1, -1, builtinLCM)
}

func register(name string, minArgs, maxArgs int, fn func([]float64) (float64, error)) {
	Functions[name] = Function{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Call: fn}
}

// Names returns every constant and function name, sorted.
func Names() []string {
	names := append(lo.Keys(Constants), lo.Keys(Functions)...)
	sort.Strings(names)
	return names
}

func wrapUnary(fn func(float64) float64) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		return fn(args[0]), nil
	}
}

func predicate(fn func(float64) bool) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if fn(args[0]) {
			return 1, nil
		}
		return 0, nil
	}
}

// ulp is the gap between |x| and the next representable float away from zero.
func ulp(x float64) float64 {
	x = math.Abs(x)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	next := math.Nextafter(x, math.Inf(1))
	if math.IsInf(next, 0) {
		return x - math.Nextafter(x, 0)
	}
	return next - x
}

func domainUnary(fn func(float64) float64, ok func(float64) bool) func([]float64) (float64, error) {
	return func(args []float64) (float64, error) {
		if !math.IsNaN(args[0]) && !ok(args[0]) {
			return 0, newError(KindMath, 0, "math domain error")
		}
		return fn(args[0]), nil
	}
}

func builtinLog(args []float64) (float64, error) {
	x := args[0]
	if x <= 0 {
		return 0, newError(KindMath, 0, "math domain error")
	}
	if len(args) == 1 {
		return math.Log(x), nil
	}
	base := args[1]
	if base <= 0 {
		return 0, newError(KindMath, 0, "math domain error")
	}
	if base == 1 {
		return 0, newError(KindDivideByZero, 0, "log base 1")
	}
	return math.Log(x) / math.Log(base), nil
}

// builtinRound rounds half to even, with an optional number of decimal
// places.
func builtinRound(args []float64) (float64, error) {
	x := args[0]
	if len(args) == 1 {
		return math.RoundToEven(x), nil
	}
	digits := args[1]
	if digits != math.Trunc(digits) {
		return 0, newError(KindOperand, 0, "round digits must be an integer")
	}
	scale := math.Pow(10, digits)
	if math.IsInf(scale, 0) || scale == 0 {
		return x, nil
	}
	return math.RoundToEven(x*scale) / scale, nil
}

func builtinHypot(args []float64) (float64, error) {
	result := 0.0
	for _, a := range args {
		result = math.Hypot(result, a)
	}
	return result, nil
}

func builtinFactorial(args []float64) (float64, error) {
	n := args[0]
	if n != math.Trunc(n) {
		return 0, newError(KindOperand, 0, "factorial needs an integer")
	}
	if n < 0 {
		return 0, newError(KindMath, 0, "factorial of a negative number")
	}
	result := 1.0
	for i := 2.0; i <= n && !math.IsInf(result, 1); i++ {
		result *= i
	}
	return result, nil
}

func builtinIsqrt(args []float64) (float64, error) {
	n := args[0]
	if n != math.Trunc(n) {
		return 0, newError(KindOperand, 0, "isqrt needs an integer")
	}
	if n < 0 {
		return 0, newError(KindMath, 0, "isqrt of a negative number")
	}
	return math.Floor(math.Sqrt(n)), nil
}

func builtinGCD(args []float64) (float64, error) {
	if err := requireIntegers(args, "gcd"); err != nil {
		return 0, err
	}
	result := 0.0
	for _, a := range args {
		result = gcd(result, math.Abs(a))
	}
	return result, nil
}

func builtinLCM(args []float64) (float64, error) {
	if err := requireIntegers(args, "lcm"); err != nil {
		return 0, err
	}
	result := 1.0
	for _, a := range args {
		a = math.Abs(a)
		if a == 0 || result == 0 {
			result = 0
			continue
		}
		result = result / gcd(result, a) * a
	}
	return result, nil
}

func requireIntegers(args []float64, name string) error {
	for _, a := range args {
		if a != math.Trunc(a) {
			return newError(KindOperand, 0, "%s needs integers", name)
		}
	}
	return nil
}

func gcd(a, b float64) float64 {
	for b != 0 {
		a, b = b, math.Mod(a, b)
	}
	return a
}
