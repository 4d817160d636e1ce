package interpreter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

type builtin struct {
	name   string
	params []string
	impl   func(i *Interpreter, call *runtime.NativeCall) (runtime.Value, error)
}

var builtinTable = []builtin{
	{"print", []string{"value"}, (*Interpreter).builtinPrint},
	{"input", nil, (*Interpreter).builtinInput},
	{"clear", nil, (*Interpreter).builtinClear},
	{"is_number", []string{"value"}, kindPredicate(runtime.KindNumber)},
	{"is_string", []string{"value"}, kindPredicate(runtime.KindString)},
	{"is_list", []string{"value"}, kindPredicate(runtime.KindList)},
	{"is_function", []string{"value"}, kindPredicate(runtime.KindFunction, runtime.KindNativeFunction)},
	{"append", []string{"list", "value"}, (*Interpreter).builtinAppend},
	{"pop", []string{"list", "index"}, (*Interpreter).builtinPop},
	{"len", []string{"list"}, (*Interpreter).builtinLen},
	{"run", []string{"fn"}, (*Interpreter).builtinRun},
}

var builtinAliases = map[string]string{
	"cls": "clear",
}

func (i *Interpreter) initBuiltins() {
	i.global.Define("null", runtime.Null)
	i.global.Define("False", runtime.False)
	i.global.Define("True", runtime.True)
	i.global.Define("math_pi", runtime.Pi)

	for _, b := range builtinTable {
		i.global.Define(b.name, runtime.NativeFunctionValue{
			Name:   b.name,
			Params: b.params,
			Impl: func(call *runtime.NativeCall) (runtime.Value, error) {
				return b.impl(i, call)
			},
		})
	}
	for alias, target := range builtinAliases {
		if fn, err := i.global.Get(target); err == nil {
			i.global.Define(alias, fn)
		}
	}
}

func argumentError(call *runtime.NativeCall, message string) error {
	return diagnostics.New(diagnostics.IllegalOperation, call.Span, message)
}

func (i *Interpreter) builtinPrint(call *runtime.NativeCall) (runtime.Value, error) {
	if _, err := fmt.Fprintln(i.out, runtime.Display(call.Arg("value"))); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.Null, nil
}

// builtinInput reads one line; text that parses as an integer becomes a number.
func (i *Interpreter) builtinInput(call *runtime.NativeCall) (runtime.Value, error) {
	line, err := i.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return nil, diagnostics.New(diagnostics.RuntimeFailure, call.Span, "No more input to read")
		}
		return nil, fmt.Errorf("input: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if n, convErr := strconv.Atoi(strings.TrimSpace(line)); convErr == nil {
		return runtime.Number(float64(n)), nil
	}
	return runtime.String(line), nil
}

func (i *Interpreter) builtinClear(call *runtime.NativeCall) (runtime.Value, error) {
	if err := i.host.Clear(i.out); err != nil {
		return nil, err
	}
	return runtime.Null, nil
}

func kindPredicate(kinds ...runtime.Kind) func(*Interpreter, *runtime.NativeCall) (runtime.Value, error) {
	return func(_ *Interpreter, call *runtime.NativeCall) (runtime.Value, error) {
		kind := call.Arg("value").Kind()
		for _, k := range kinds {
			if kind == k {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	}
}

func (i *Interpreter) builtinAppend(call *runtime.NativeCall) (runtime.Value, error) {
	list, ok := call.Arg("list").(runtime.ListValue)
	if !ok {
		return nil, argumentError(call, "First argument must be a list")
	}
	list.Append(call.Arg("value"))
	return runtime.Null, nil
}

func (i *Interpreter) builtinPop(call *runtime.NativeCall) (runtime.Value, error) {
	list, ok := call.Arg("list").(runtime.ListValue)
	if !ok {
		return nil, argumentError(call, "First argument must be a list")
	}
	index, ok := call.Arg("index").(runtime.NumberValue)
	if !ok {
		return nil, argumentError(call, "Second argument must be a number")
	}
	idx, ok := list.Resolve(index.Val)
	if !ok {
		return nil, diagnostics.New(diagnostics.IndexOutOfBounds, call.Span, "Element at this index could not be removed from list because index is out of bounds")
	}
	return list.RemoveAt(idx), nil
}

func (i *Interpreter) builtinLen(call *runtime.NativeCall) (runtime.Value, error) {
	list, ok := call.Arg("list").(runtime.ListValue)
	if !ok {
		return nil, argumentError(call, "Argument must be a list")
	}
	return runtime.Number(float64(list.Len())), nil
}

// builtinRun executes another script against the same globals. Failures are
// reported as a runtime error at the call site wrapping the nested rendering.
func (i *Interpreter) builtinRun(call *runtime.NativeCall) (runtime.Value, error) {
	path, ok := call.Arg("fn").(runtime.StringValue)
	if !ok {
		return nil, argumentError(call, "Argument must be a string")
	}

	i.logger.Debug("load script", slog.String("path", path.Val))
	source, err := i.host.ReadFile(path.Val)
	if err != nil {
		return nil, diagnostics.Newf(diagnostics.RuntimeFailure, call.Span, "Failed to load script \"%s\"\n%v", path.Val, err)
	}

	if _, err := i.Run(path.Val, source); err != nil {
		rendered := err.Error()
		var diag *diagnostics.Error
		if errors.As(err, &diag) {
			rendered = diag.Render()
		}
		return nil, diagnostics.Newf(diagnostics.RuntimeFailure, call.Span, "Failed to finish executing script \"%s\"\n%s", path.Val, rendered)
	}
	return runtime.Null, nil
}
