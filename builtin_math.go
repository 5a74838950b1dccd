// builtin_math.go — numeric built-ins and casts.
package phpjs

import "math"

func registerMathBuiltins(ip *Interpreter) {
	ip.RegisterNative("abs", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Abs(toNumber(args[0])))
	})

	ip.RegisterNative("floor", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Floor(toNumber(args[0])))
	})

	ip.RegisterNative("ceil", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Ceil(toNumber(args[0])))
	})

	// round(x) -> nearest integer, halves away from zero
	ip.RegisterNative("round", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Round(toNumber(args[0])))
	})

	ip.RegisterNative("sqrt", 1, func(_ *Interpreter, args []Value) Value {
		return Num(math.Sqrt(toNumber(args[0])))
	})

	ip.RegisterNative("pow", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Pow(toNumber(args[0]), toNumber(args[1])))
	})

	ip.RegisterNative("min", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Min(toNumber(args[0]), toNumber(args[1])))
	})

	ip.RegisterNative("max", 2, func(_ *Interpreter, args []Value) Value {
		return Num(math.Max(toNumber(args[0]), toNumber(args[1])))
	})

	// intval(x) -> numeric coercion truncated toward zero
	ip.RegisterNative("intval", 1, func(_ *Interpreter, args []Value) Value {
		f := toNumber(args[0])
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Num(0)
		}
		return Num(math.Trunc(f))
	})

	ip.RegisterNative("floatval", 1, func(_ *Interpreter, args []Value) Value {
		f := toNumber(args[0])
		if math.IsNaN(f) {
			return Num(0)
		}
		return Num(f)
	})

	ip.RegisterNative("strval", 1, func(_ *Interpreter, args []Value) Value {
		return Str(FormatValue(args[0]))
	})
}
