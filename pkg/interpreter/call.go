package interpreter

import (
	"log/slog"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

func (i *Interpreter) evaluateFunctionDef(n *ast.FunctionDef, env *runtime.Environment) (runtime.Value, error) {
	fn := runtime.FunctionValue{
		Name:       n.Name,
		Params:     n.Params,
		Body:       n.Body,
		AutoReturn: n.AutoReturn,
		Closure:    env,
	}.At(n.Span(), env)
	if n.Name != "" {
		env.Define(n.Name, fn)
	}
	return fn, nil
}

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(n.Callee, env)
	if err != nil {
		return nil, err
	}
	args, err := i.evaluateAll(n.Arguments, env)
	if err != nil {
		return nil, err
	}
	result, err := i.callValue(callee, args, env, n.Span())
	if err != nil {
		return nil, err
	}
	return result.At(n.Span(), env), nil
}

// callValue invokes callee with already-evaluated arguments on behalf of the
// code running in callerEnv. span is the whole call expression.
func (i *Interpreter) callValue(callee runtime.Value, args []runtime.Value, callerEnv *runtime.Environment, span ast.Span) (runtime.Value, error) {
	fn, ok := callee.(runtime.Callable)
	if !ok {
		diag := diagnostics.New(diagnostics.IllegalOperation, span, "Illegal operation")
		return nil, attachRuntimeContext(diag, callerEnv, span)
	}
	if err := checkArity(fn, args, span); err != nil {
		return nil, attachRuntimeContext(err, callerEnv, span)
	}

	switch f := fn.(type) {
	case runtime.FunctionValue:
		return i.callFunction(f, args, callerEnv, span)
	case runtime.NativeFunctionValue:
		return i.callNative(f, args, callerEnv, span)
	}
	diag := diagnostics.New(diagnostics.IllegalOperation, span, "Illegal operation")
	return nil, attachRuntimeContext(diag, callerEnv, span)
}

func checkArity(fn runtime.Callable, args []runtime.Value, span ast.Span) *diagnostics.Error {
	params := len(fn.ParamNames())
	switch {
	case len(args) > params:
		return diagnostics.Newf(diagnostics.ArityMismatch, span, "%d too many arguments passed into '%s'", len(args)-params, fn.DisplayName())
	case len(args) < params:
		return diagnostics.Newf(diagnostics.ArityMismatch, span, "%d too few arguments passed into '%s'", params-len(args), fn.DisplayName())
	}
	return nil
}

func bindArguments(env *runtime.Environment, params []string, args []runtime.Value) {
	for idx, name := range params {
		env.Define(name, args[idx].At(args[idx].Span(), env))
	}
}

// callFunction runs a user function in a fresh environment whose parent is
// the closure, never the caller.
func (i *Interpreter) callFunction(fn runtime.FunctionValue, args []runtime.Value, callerEnv *runtime.Environment, span ast.Span) (runtime.Value, error) {
	frame := newCallFrame(fn.DisplayName(), frameOf(callerEnv), span.Start)
	env := runtime.NewEnvironment(fn.Closure)
	env.SetRuntimeData(frame)
	bindArguments(env, fn.Params, args)

	i.logger.Debug("push call frame", slog.String("function", frame.name), slog.Int("depth", frame.depth))
	defer i.logger.Debug("pop call frame", slog.String("function", frame.name), slog.Int("depth", frame.depth))

	val, err := i.evaluate(fn.Body, env)
	if err != nil {
		if ret, ok := err.(returnSignal); ok {
			return ret.value, nil
		}
		return nil, err
	}
	if fn.AutoReturn {
		return val, nil
	}
	return unit(span, env), nil
}

// callNative runs a built-in in a child of the caller's environment with its
// own frame, so failures inside it show up in the traceback.
func (i *Interpreter) callNative(fn runtime.NativeFunctionValue, args []runtime.Value, callerEnv *runtime.Environment, span ast.Span) (runtime.Value, error) {
	frame := newCallFrame(fn.DisplayName(), frameOf(callerEnv), span.Start)
	env := callerEnv.Extend()
	env.SetRuntimeData(frame)
	bindArguments(env, fn.Params, args)

	i.logger.Debug("call built-in", slog.String("function", frame.name), slog.Int("depth", frame.depth))

	val, err := fn.Impl(&runtime.NativeCall{Env: env, Span: span, Args: args})
	if err != nil {
		return nil, attachRuntimeContext(err, env, span)
	}
	if val == nil {
		return unit(span, env), nil
	}
	return val, nil
}
