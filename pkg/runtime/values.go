package runtime

import (
	"fmt"
	"math"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindList
	KindFunction
	KindNativeFunction
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values. The span and owning
// environment are diagnostic metadata and never part of a value's identity.
type Value interface {
	Kind() Kind
	Span() ast.Span
	Env() *Environment
	// At returns a copy of the value stamped with new metadata. Lists keep
	// sharing their container.
	At(span ast.Span, env *Environment) Value
}

type meta struct {
	span ast.Span
	env  *Environment
}

func (m meta) Span() ast.Span    { return m.span }
func (m meta) Env() *Environment { return m.env }

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

// NumberValue doubles as the boolean (0/1) and unit type.
type NumberValue struct {
	meta
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

func (v NumberValue) At(span ast.Span, env *Environment) Value {
	v.meta = meta{span: span, env: env}
	return v
}

// IsIntegral reports whether the number has no fractional part.
func (v NumberValue) IsIntegral() bool {
	return !math.IsInf(v.Val, 0) && v.Val == math.Trunc(v.Val)
}

type StringValue struct {
	meta
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

func (v StringValue) At(span ast.Span, env *Environment) Value {
	v.meta = meta{span: span, env: env}
	return v
}

// Number builds an unpositioned number.
func Number(val float64) NumberValue { return NumberValue{Val: val} }

// String builds an unpositioned string.
func String(val string) StringValue { return StringValue{Val: val} }

// Bool maps a Go bool onto the 1/0 number convention.
func Bool(b bool) NumberValue {
	if b {
		return NumberValue{Val: 1}
	}
	return NumberValue{Val: 0}
}

var (
	// Null is the unit value produced by statements without a useful result.
	Null  = NumberValue{Val: 0}
	False = NumberValue{Val: 0}
	True  = NumberValue{Val: 1}
	Pi    = NumberValue{Val: math.Pi}
)

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

type listData struct {
	items []Value
}

// ListValue is a view onto a mutable container. Every view produced from the
// same list (variable reads, arguments, At) shares that container, so in-place
// built-ins are visible through all of them.
type ListValue struct {
	meta
	data *listData
}

func (v ListValue) Kind() Kind { return KindList }

func (v ListValue) At(span ast.Span, env *Environment) Value {
	v.meta = meta{span: span, env: env}
	return v
}

// NewList wraps elements in a fresh container. The slice is not copied.
func NewList(elements []Value) ListValue {
	return ListValue{data: &listData{items: elements}}
}

// Elements exposes the backing slice; callers must not retain it across
// mutations.
func (v ListValue) Elements() []Value {
	if v.data == nil {
		return nil
	}
	return v.data.items
}

func (v ListValue) Len() int { return len(v.Elements()) }

// Clone returns a list with a new container holding the same element values.
func (v ListValue) Clone() ListValue {
	items := make([]Value, v.Len(), v.Len()+1)
	copy(items, v.Elements())
	out := NewList(items)
	out.meta = v.meta
	return out
}

// Append mutates the container in place.
func (v ListValue) Append(elem Value) {
	v.data.items = append(v.data.items, elem)
}

// SameContainer reports whether two list views share storage.
func (v ListValue) SameContainer(other ListValue) bool {
	return v.data == other.data
}

// Resolve maps a possibly negative index onto a slot in the container.
// Fractional indexes truncate toward zero.
func (v ListValue) Resolve(index float64) (int, bool) {
	if math.IsNaN(index) || math.IsInf(index, 0) {
		return 0, false
	}
	idx := int(math.Trunc(index))
	if idx < 0 {
		idx += v.Len()
	}
	if idx < 0 || idx >= v.Len() {
		return 0, false
	}
	return idx, true
}

// RemoveAt deletes the element at a resolved slot and returns it.
func (v ListValue) RemoveAt(idx int) Value {
	items := v.data.items
	removed := items[idx]
	v.data.items = append(items[:idx], items[idx+1:]...)
	return removed
}

//-----------------------------------------------------------------------------
// Callables
//-----------------------------------------------------------------------------

// Callable is implemented by values that can appear in call position.
type Callable interface {
	Value
	DisplayName() string
	ParamNames() []string
}

const anonymousName = "<anonymous>"

// FunctionValue is a user-defined function closed over the environment it was
// defined in.
type FunctionValue struct {
	meta
	Name       string
	Params     []string
	Body       ast.Node
	AutoReturn bool
	Closure    *Environment
}

func (v FunctionValue) Kind() Kind { return KindFunction }

func (v FunctionValue) At(span ast.Span, env *Environment) Value {
	v.meta = meta{span: span, env: env}
	return v
}

func (v FunctionValue) DisplayName() string {
	if v.Name == "" {
		return anonymousName
	}
	return v.Name
}

func (v FunctionValue) ParamNames() []string { return v.Params }

// NativeCall is what a built-in receives: the arguments bound by parameter
// name in Env, plus the call-site span for diagnostics.
type NativeCall struct {
	Env  *Environment
	Span ast.Span
	Args []Value
}

// Arg returns the argument bound to a parameter name.
func (c *NativeCall) Arg(name string) Value {
	v, err := c.Env.Get(name)
	if err != nil {
		return nil
	}
	return v
}

type NativeFunc func(call *NativeCall) (Value, error)

type NativeFunctionValue struct {
	meta
	Name   string
	Params []string
	Impl   NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v NativeFunctionValue) At(span ast.Span, env *Environment) Value {
	v.meta = meta{span: span, env: env}
	return v
}

func (v NativeFunctionValue) DisplayName() string { return v.Name }

func (v NativeFunctionValue) ParamNames() []string { return v.Params }
