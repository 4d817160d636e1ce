package interpreter

import (
	"errors"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

const programFrameName = "<program>"

// callFrame is the runtime data attached to every call environment. parent is
// the caller's frame, which is not the lexical parent of the environment.
type callFrame struct {
	name   string
	parent *callFrame
	entry  ast.Position
	depth  int
}

func newCallFrame(name string, caller *callFrame, entry ast.Position) *callFrame {
	depth := 0
	if caller != nil {
		depth = caller.depth + 1
	}
	return &callFrame{name: name, parent: caller, entry: entry, depth: depth}
}

func frameOf(env *runtime.Environment) *callFrame {
	if env == nil {
		return nil
	}
	frame, _ := env.RuntimeData().(*callFrame)
	return frame
}

// traceback walks from the frame active in env out to the program frame,
// innermost first. pos is where the failure happened inside that frame.
func traceback(env *runtime.Environment, pos ast.Position) []diagnostics.Frame {
	var trace []diagnostics.Frame
	for frame := frameOf(env); frame != nil; frame = frame.parent {
		trace = append(trace, diagnostics.Frame{Source: pos.Source, Line: pos.Line, Name: frame.name})
		pos = frame.entry
	}
	return trace
}

// attachRuntimeContext stamps a traceback onto runtime diagnostics that do
// not have one yet. Control signals and compile-time diagnostics pass through
// untouched; any other Go error becomes a RuntimeFailure at span.
func attachRuntimeContext(err error, env *runtime.Environment, span ast.Span) error {
	if err == nil || isControlSignal(err) {
		return err
	}
	var diag *diagnostics.Error
	if !errors.As(err, &diag) {
		diag = diagnostics.New(diagnostics.RuntimeFailure, span, err.Error())
	}
	if diag.Kind.IsRuntime() && diag.Trace == nil {
		diag.Trace = traceback(env, diag.Start)
	}
	return diag
}
