package runtime

import (
	"math"
	"strings"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
)

// Operator capabilities. A value supports an operator by implementing the
// matching interface; anything else is an illegal operation.
type (
	Adder interface {
		Add(other Value) (Value, error)
	}
	Subtracter interface {
		Subtract(other Value) (Value, error)
	}
	Multiplier interface {
		Multiply(other Value) (Value, error)
	}
	Divider interface {
		Divide(other Value) (Value, error)
	}
	Powerer interface {
		Power(other Value) (Value, error)
	}
	Comparer interface {
		Compare(op ast.Operator, other Value) (Value, error)
	}
	Logical interface {
		And(other Value) (Value, error)
		Or(other Value) (Value, error)
	}
	Negator interface {
		Not() (Value, error)
	}
	Truthy interface {
		Truthy() bool
	}
)

// IllegalOperation reports an operator applied to an unsupported pairing. The
// span runs from self through other; pass nil other for unary operators.
func IllegalOperation(self, other Value) *diagnostics.Error {
	if other == nil {
		other = self
	}
	return diagnostics.New(diagnostics.IllegalOperation, ast.Span{Start: self.Span().Start, End: other.Span().End}, "Illegal operation")
}

// IsTrue applies the truthiness capability; values without it are false.
func IsTrue(v Value) bool {
	if t, ok := v.(Truthy); ok {
		return t.Truthy()
	}
	return false
}

//-----------------------------------------------------------------------------
// Number
//-----------------------------------------------------------------------------

func (v NumberValue) number(other Value) (NumberValue, bool) {
	n, ok := other.(NumberValue)
	return n, ok
}

func (v NumberValue) Add(other Value) (Value, error) {
	if n, ok := v.number(other); ok {
		return Number(v.Val + n.Val), nil
	}
	return nil, IllegalOperation(v, other)
}

func (v NumberValue) Subtract(other Value) (Value, error) {
	if n, ok := v.number(other); ok {
		return Number(v.Val - n.Val), nil
	}
	return nil, IllegalOperation(v, other)
}

func (v NumberValue) Multiply(other Value) (Value, error) {
	if n, ok := v.number(other); ok {
		return Number(v.Val * n.Val), nil
	}
	return nil, IllegalOperation(v, other)
}

func (v NumberValue) Divide(other Value) (Value, error) {
	n, ok := v.number(other)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	if n.Val == 0 {
		return nil, diagnostics.New(diagnostics.DivisionByZero, n.Span(), "Division by zero")
	}
	return Number(v.Val / n.Val), nil
}

func (v NumberValue) Power(other Value) (Value, error) {
	if n, ok := v.number(other); ok {
		return Number(math.Pow(v.Val, n.Val)), nil
	}
	return nil, IllegalOperation(v, other)
}

func (v NumberValue) Compare(op ast.Operator, other Value) (Value, error) {
	n, ok := v.number(other)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	switch op {
	case ast.OpEqual:
		return Bool(v.Val == n.Val), nil
	case ast.OpNotEqual:
		return Bool(v.Val != n.Val), nil
	case ast.OpLess:
		return Bool(v.Val < n.Val), nil
	case ast.OpGreater:
		return Bool(v.Val > n.Val), nil
	case ast.OpLessEq:
		return Bool(v.Val <= n.Val), nil
	case ast.OpGreaterEq:
		return Bool(v.Val >= n.Val), nil
	}
	return nil, IllegalOperation(v, other)
}

// And yields other when v is truthy, else v.
func (v NumberValue) And(other Value) (Value, error) {
	n, ok := v.number(other)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	if v.Truthy() {
		return Number(n.Val), nil
	}
	return Number(v.Val), nil
}

// Or yields v when it is truthy, else other.
func (v NumberValue) Or(other Value) (Value, error) {
	n, ok := v.number(other)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	if v.Truthy() {
		return Number(v.Val), nil
	}
	return Number(n.Val), nil
}

func (v NumberValue) Not() (Value, error) {
	return Bool(!v.Truthy()), nil
}

func (v NumberValue) Truthy() bool { return v.Val != 0 }

//-----------------------------------------------------------------------------
// String
//-----------------------------------------------------------------------------

func (v StringValue) Add(other Value) (Value, error) {
	if s, ok := other.(StringValue); ok {
		return String(v.Val + s.Val), nil
	}
	return nil, IllegalOperation(v, other)
}

// MaxRepeatLength bounds the byte length of a repeated string.
const MaxRepeatLength = 1 << 30

// Multiply repeats the string; the count must be a non-negative integer and
// the result may not exceed MaxRepeatLength bytes.
func (v StringValue) Multiply(other Value) (Value, error) {
	n, ok := other.(NumberValue)
	if !ok || n.Val < 0 || !n.IsIntegral() {
		return nil, IllegalOperation(v, other)
	}
	if v.Val == "" || n.Val == 0 {
		return String(""), nil
	}
	if n.Val > float64(MaxRepeatLength/len(v.Val)) {
		return nil, diagnostics.New(diagnostics.IllegalOperation, ast.Span{Start: v.Span().Start, End: n.Span().End}, "String repetition is too large")
	}
	return String(strings.Repeat(v.Val, int(n.Val))), nil
}

func (v StringValue) Truthy() bool { return len(v.Val) > 0 }

//-----------------------------------------------------------------------------
// List
//-----------------------------------------------------------------------------

// Add concatenates into a new container; neither operand is modified.
func (v ListValue) Add(other Value) (Value, error) {
	o, ok := other.(ListValue)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	items := make([]Value, 0, v.Len()+o.Len())
	items = append(items, v.Elements()...)
	items = append(items, o.Elements()...)
	return NewList(items), nil
}

// Compare supports only `<=`, which yields a new list with other appended.
func (v ListValue) Compare(op ast.Operator, other Value) (Value, error) {
	if op != ast.OpLessEq {
		return nil, IllegalOperation(v, other)
	}
	out := v.Clone()
	out.Append(other)
	return out, nil
}

// Subtract yields a new list without the element at index other.
func (v ListValue) Subtract(other Value) (Value, error) {
	n, ok := other.(NumberValue)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	idx, ok := v.Resolve(n.Val)
	if !ok {
		return nil, diagnostics.New(diagnostics.IndexOutOfBounds, n.Span(), "Element at this index could not be removed from list because index is out of bounds")
	}
	out := v.Clone()
	out.RemoveAt(idx)
	return out, nil
}

// Divide indexes into the list.
func (v ListValue) Divide(other Value) (Value, error) {
	n, ok := other.(NumberValue)
	if !ok {
		return nil, IllegalOperation(v, other)
	}
	idx, ok := v.Resolve(n.Val)
	if !ok {
		return nil, diagnostics.New(diagnostics.IndexOutOfBounds, n.Span(), "Element at this index could not be retrieved from list because index is out of bounds")
	}
	return v.Elements()[idx], nil
}
