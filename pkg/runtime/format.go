package runtime

import (
	"math"
	"strconv"
	"strings"
)

// Display renders a value the way `print` shows it: strings appear raw.
func Display(v Value) string {
	if s, ok := v.(StringValue); ok {
		return s.Val
	}
	return Repr(v)
}

// Repr renders a value as the REPL echoes it: strings are quoted, and list
// elements always use their quoted form.
func Repr(v Value) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case NumberValue:
		return formatNumber(val.Val)
	case StringValue:
		return `"` + val.Val + `"`
	case ListValue:
		parts := make([]string, val.Len())
		for i, elem := range val.Elements() {
			parts[i] = Repr(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case FunctionValue:
		return "<function " + val.DisplayName() + ">"
	case NativeFunctionValue:
		return "<built-in function " + val.DisplayName() + ">"
	}
	return "<" + v.Kind().String() + ">"
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
