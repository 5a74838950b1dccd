// builtin_strings.go — the string library.
//
// Every entry stringifies its subject first (FormatValue), so passing a
// number or array where a string is expected degrades gracefully instead of
// faulting — built-ins never raise.
package phpjs

import (
	"strings"
	"unicode/utf16"
)

func registerStringBuiltins(ip *Interpreter) {
	// strlen(s) -> length in UTF-16 code units, matching the host string model
	ip.RegisterNative("strlen", 1, func(_ *Interpreter, args []Value) Value {
		s := FormatValue(args[0])
		return Num(float64(len(utf16.Encode([]rune(s)))))
	})

	ip.RegisterNative("strtoupper", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.ToUpper(FormatValue(args[0])))
	})

	ip.RegisterNative("strtolower", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.ToLower(FormatValue(args[0])))
	})

	// trim(s) -> s without leading/trailing ASCII whitespace
	ip.RegisterNative("trim", 1, func(_ *Interpreter, args []Value) Value {
		return Str(strings.Trim(FormatValue(args[0]), " \t\n\r\v\f"))
	})

	// substr(s, i, j) -> half-open rune slice [i, j), indices clamped
	ip.RegisterNative("substr", 3, func(_ *Interpreter, args []Value) Value {
		r := []rune(FormatValue(args[0]))
		i := int(toNumber(args[1]))
		j := int(toNumber(args[2]))
		if i < 0 {
			i = 0
		}
		if j < i {
			j = i
		}
		if i > len(r) {
			i = len(r)
		}
		if j > len(r) {
			j = len(r)
		}
		return Str(string(r[i:j]))
	})

	ip.RegisterNative("str_repeat", 2, func(_ *Interpreter, args []Value) Value {
		n := int(toNumber(args[1]))
		if n < 0 {
			n = 0
		}
		return Str(strings.Repeat(FormatValue(args[0]), n))
	})

	ip.RegisterNative("strrev", 1, func(_ *Interpreter, args []Value) Value {
		r := []rune(FormatValue(args[0]))
		for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
			r[i], r[j] = r[j], r[i]
		}
		return Str(string(r))
	})

	ip.RegisterNative("str_replace", 3, func(_ *Interpreter, args []Value) Value {
		find := FormatValue(args[0])
		repl := FormatValue(args[1])
		subj := FormatValue(args[2])
		return Str(strings.ReplaceAll(subj, find, repl))
	})

	// strpos(haystack, needle) -> rune index of first occurrence, false if absent
	ip.RegisterNative("strpos", 2, func(_ *Interpreter, args []Value) Value {
		hay := FormatValue(args[0])
		needle := FormatValue(args[1])
		idx := strings.Index(hay, needle)
		if idx < 0 {
			return Bool(false)
		}
		return Num(float64(len([]rune(hay[:idx]))))
	})

	// implode(sep, arr) -> elements formatted and joined; non-arrays format whole
	ip.RegisterNative("implode", 2, func(_ *Interpreter, args []Value) Value {
		sep := FormatValue(args[0])
		if args[1].Tag != VTArray {
			return Str(FormatValue(args[1]))
		}
		xs := args[1].Data.([]Value)
		parts := make([]string, len(xs))
		for i := range xs {
			parts[i] = FormatValue(xs[i])
		}
		return Str(strings.Join(parts, sep))
	})
}
