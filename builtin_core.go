// builtin_core.go — type predicates and structural helpers.
package phpjs

import (
	"math"
	"strconv"
	"strings"
)

func registerCoreBuiltins(ip *Interpreter) {
	// count(x) -> element count for arrays, 0 for everything else
	ip.RegisterNative("count", 1, func(_ *Interpreter, args []Value) Value {
		if args[0].Tag == VTArray {
			return Num(float64(len(args[0].Data.([]Value))))
		}
		return Num(0)
	})

	ip.RegisterNative("is_null", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(args[0].Tag == VTNull)
	})

	ip.RegisterNative("is_array", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(args[0].Tag == VTArray)
	})

	ip.RegisterNative("is_string", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(args[0].Tag == VTStr)
	})

	ip.RegisterNative("is_bool", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(args[0].Tag == VTBool)
	})

	ip.RegisterNative("is_callable", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(args[0].Tag == VTFun)
	})

	isInt := func(_ *Interpreter, args []Value) Value {
		v := args[0]
		if v.Tag != VTNum {
			return Bool(false)
		}
		f := v.Data.(float64)
		return Bool(!math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f))
	}
	ip.RegisterNative("is_int", 1, isInt)
	ip.RegisterNative("is_integer", 1, isInt)

	// is_float(x) -> true iff x is a number with a fractional part
	ip.RegisterNative("is_float", 1, func(_ *Interpreter, args []Value) Value {
		v := args[0]
		if v.Tag != VTNum {
			return Bool(false)
		}
		f := v.Data.(float64)
		return Bool(!math.IsInf(f, 0) && !math.IsNaN(f) && f != math.Trunc(f))
	})

	ip.RegisterNative("is_numeric", 1, func(_ *Interpreter, args []Value) Value {
		return Bool(isNumericValue(args[0]))
	})

	ip.RegisterNative("gettype", 1, func(_ *Interpreter, args []Value) Value {
		return Str(typeName(args[0]))
	})
}

// isNumericValue: finite numbers, and strings that parse as a finite number.
func isNumericValue(v Value) bool {
	switch v.Tag {
	case VTNum:
		f := v.Data.(float64)
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	case VTStr:
		s := strings.TrimSpace(v.Data.(string))
		if s == "" {
			return false
		}
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
	default:
		return false
	}
}
