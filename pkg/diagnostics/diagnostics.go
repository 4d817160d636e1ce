// Package diagnostics defines the structured errors produced by the lexer,
// parser and interpreter, and renders them as source snippets with carets and,
// for runtime failures, a call-stack traceback.
package diagnostics

import (
	"fmt"
	"strings"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
)

// Kind classifies a diagnostic.
type Kind int

const (
	IllegalCharacter Kind = iota
	ExpectedCharacter
	InvalidSyntax
	IllegalOperation
	DivisionByZero
	UndefinedVariable
	ArityMismatch
	IndexOutOfBounds
	RuntimeFailure
)

func (k Kind) String() string {
	switch k {
	case IllegalCharacter:
		return "Illegal Character"
	case ExpectedCharacter:
		return "Expected Character"
	case InvalidSyntax:
		return "Invalid Syntax"
	case IllegalOperation:
		return "Illegal Operation"
	case DivisionByZero:
		return "Division By Zero"
	case UndefinedVariable:
		return "Undefined Variable"
	case ArityMismatch:
		return "Arity Mismatch"
	case IndexOutOfBounds:
		return "Index Out Of Bounds"
	case RuntimeFailure:
		return "Runtime Error"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// IsRuntime reports whether the kind is raised during evaluation.
func (k Kind) IsRuntime() bool {
	return k >= IllegalOperation
}

// Frame is one traceback entry: the location reached inside the named call
// context. Line is 0-based.
type Frame struct {
	Source string
	Line   int
	Name   string
}

// Error is a language-level failure pinned to a source span.
type Error struct {
	Kind    Kind
	Start   ast.Position
	End     ast.Position
	Message string
	// Trace lists call contexts innermost first. Only runtime errors carry one.
	Trace []Frame
}

// New builds an error covering span.
func New(kind Kind, span ast.Span, message string) *Error {
	return &Error{Kind: kind, Start: span.Start, End: span.End, Message: message}
}

// Newf builds an error covering span with a formatted message.
func Newf(kind Kind, span ast.Span, format string, args ...any) *Error {
	return New(kind, span, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Span returns the source range the error points at.
func (e *Error) Span() ast.Span {
	return ast.Span{Start: e.Start, End: e.End}
}

// Render formats the error for display.
func (e *Error) Render() string {
	var b strings.Builder
	if e.Kind.IsRuntime() {
		b.WriteString(renderTraceback(e.Trace))
		fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s\n", e.Kind, e.Message)
		fmt.Fprintf(&b, "File %s, line %d", e.Start.Source, e.Start.Line+1)
	}
	if snippet := Snippet(e.Start, e.End); snippet != "" {
		b.WriteString("\n\n")
		b.WriteString(snippet)
	}
	return b.String()
}

func renderTraceback(trace []Frame) string {
	var b strings.Builder
	b.WriteString("Traceback (most recent call last):\n")
	for idx := len(trace) - 1; idx >= 0; idx-- {
		frame := trace[idx]
		fmt.Fprintf(&b, "  File %s, line %d, in %s\n", frame.Source, frame.Line+1, frame.Name)
	}
	return b.String()
}
