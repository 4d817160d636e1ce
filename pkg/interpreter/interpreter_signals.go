package interpreter

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

// Control signals travel up the evaluator in the error slot. Loops consume
// breakSignal and continueSignal; calls consume returnSignal.

type breakSignal struct {
	span ast.Span
}

func (b breakSignal) Error() string {
	return "break"
}

type continueSignal struct {
	span ast.Span
}

func (c continueSignal) Error() string {
	return "continue"
}

type returnSignal struct {
	value runtime.Value
	span  ast.Span
}

func (r returnSignal) Error() string {
	return "return"
}

func isControlSignal(err error) bool {
	switch err.(type) {
	case breakSignal, continueSignal, returnSignal:
		return true
	}
	return false
}
