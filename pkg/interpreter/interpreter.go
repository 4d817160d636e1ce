// Package interpreter evaluates parsed programs with a recursive tree walk over
// a chain of runtime environments.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/lexer"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/parser"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

// Interpreter owns the root environment. Every Run on the same interpreter
// shares its globals, which is what the REPL and the `run` built-in rely on.
type Interpreter struct {
	global *runtime.Environment
	out    io.Writer
	in     *bufio.Reader
	host   Host
	logger *slog.Logger
}

// New creates an interpreter wired to the process's standard streams.
func New() *Interpreter {
	i := &Interpreter{
		global: runtime.NewEnvironment(nil),
		out:    os.Stdout,
		in:     bufio.NewReader(os.Stdin),
		host:   OSHost{},
		logger: slog.New(slog.DiscardHandler),
	}
	i.global.SetRuntimeData(newCallFrame(programFrameName, nil, ast.Position{}))
	i.initBuiltins()
	return i
}

// SetOutput redirects what `print` writes.
func (i *Interpreter) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	i.out = w
}

// SetInput replaces the reader `input` consumes lines from.
func (i *Interpreter) SetInput(r io.Reader) {
	i.in = bufio.NewReader(r)
}

// SetHost replaces file access and terminal control.
func (i *Interpreter) SetHost(h Host) {
	if h == nil {
		h = OSHost{}
	}
	i.host = h
}

// SetLogger installs a structured logger for evaluation tracing.
func (i *Interpreter) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	i.logger = l
}

// Check lexes, parses and validates text without evaluating it.
func (i *Interpreter) Check(name, text string) (*ast.Block, error) {
	tokens, err := lexer.Tokenize(name, text)
	if err != nil {
		return nil, err
	}
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	if err := parser.Validate(program); err != nil {
		return nil, err
	}
	return program, nil
}

// Run executes text as a program named name. Exactly one result is non-nil:
// the program value (a list of top-level statement values) or a
// *diagnostics.Error.
func (i *Interpreter) Run(name, text string) (runtime.Value, error) {
	i.logger.Debug("run", slog.String("source", name), slog.Int("bytes", len(text)))
	program, err := i.Check(name, text)
	if err != nil {
		i.logger.Debug("run rejected", slog.String("source", name), slog.String("error", err.Error()))
		return nil, err
	}
	return i.Evaluate(program)
}

// Evaluate runs an already-built tree in the root environment. Unlike Run it
// does not validate, so stray control statements are reported here instead.
func (i *Interpreter) Evaluate(node ast.Node) (runtime.Value, error) {
	if node == nil {
		return nil, diagnostics.New(diagnostics.RuntimeFailure, ast.Span{}, "nothing to evaluate")
	}
	i.logger.Debug("evaluate", slog.String("node", string(node.NodeType())), slog.String("source", node.Span().Start.Source))
	value, err := i.evaluate(node, i.global)
	if err != nil {
		return nil, boundaryError(err, node)
	}
	return value, nil
}

// boundaryError makes sure nothing but a *diagnostics.Error leaves the
// interpreter.
func boundaryError(err error, node ast.Node) *diagnostics.Error {
	switch sig := err.(type) {
	case *diagnostics.Error:
		return sig
	case breakSignal:
		return diagnostics.New(diagnostics.InvalidSyntax, sig.span, "'break' outside of a loop")
	case continueSignal:
		return diagnostics.New(diagnostics.InvalidSyntax, sig.span, "'continue' outside of a loop")
	case returnSignal:
		return diagnostics.New(diagnostics.InvalidSyntax, sig.span, "'return' outside of a function")
	}
	return diagnostics.New(diagnostics.RuntimeFailure, node.Span(), fmt.Sprintf("unexpected failure: %v", err))
}
