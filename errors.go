// errors.go — user-facing diagnostic rendering.
//
// The core API never returns Go errors (runtime faults land in the output
// buffer, see interpreter.go), but hosts that surface parse
// diagnostics — the CLI and the REPL — want them readable. WrapErrorWithSource
// turns a *ParseError into a numbered snippet with a caret under the
// offending line. For the source "$x = 1;\necho $x\n$y = 2;":
//
//	PARSE ERROR at line 3: Expected ';' after echo value.
//
//	   2 | echo $x
//	   3 | $y = 2;
//	     | ^
//
// Tokens carry no column, so the caret sits under the line's first
// non-whitespace character. Any other error kind passes through unchanged.
package phpjs

import (
	"fmt"
	"strings"
)

// ParseError is a single parser diagnostic with a 1-based line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at line %d: %s", e.Line, e.Msg)
}

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is a *ParseError; other errors are returned
// unchanged.
func WrapErrorWithSource(err error, src string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	return fmt.Errorf("%s", prettyErrorString(src, pe.Line, pe.Error()))
}

func prettyErrorString(src string, line int, header string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line < 1 {
		line = 1
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", header)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	caretPad := len(lineTxt) - len(strings.TrimLeft(lineTxt, " \t"))
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", caretPad))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
