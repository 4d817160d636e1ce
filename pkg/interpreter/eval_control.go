package interpreter

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

func unit(span ast.Span, env *runtime.Environment) runtime.Value {
	return runtime.Null.At(span, env)
}

func (i *Interpreter) evaluateIf(n *ast.If, env *runtime.Environment) (runtime.Value, error) {
	for _, c := range n.Cases {
		cond, err := i.evaluate(c.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.IsTrue(cond) {
			continue
		}
		val, err := i.evaluate(c.Body, env)
		if err != nil {
			return nil, err
		}
		if c.Block {
			return unit(n.Span(), env), nil
		}
		return val, nil
	}
	if n.Else != nil {
		val, err := i.evaluate(n.Else.Body, env)
		if err != nil {
			return nil, err
		}
		if n.Else.Block {
			return unit(n.Span(), env), nil
		}
		return val, nil
	}
	return unit(n.Span(), env), nil
}

// loopStep runs one body evaluation and reports whether the loop should stop.
// Only an error that is not a loop signal is returned to the caller.
func (i *Interpreter) loopStep(body ast.Node, env *runtime.Environment, last *runtime.Value) (bool, error) {
	val, err := i.evaluate(body, env)
	switch err.(type) {
	case nil:
		*last = val
		return false, nil
	case continueSignal:
		return false, nil
	case breakSignal:
		return true, nil
	default:
		return true, err
	}
}

func (i *Interpreter) loopBound(node ast.Node, env *runtime.Environment, role string) (float64, error) {
	val, err := i.evaluate(node, env)
	if err != nil {
		return 0, err
	}
	num, ok := val.(runtime.NumberValue)
	if !ok {
		diag := diagnostics.Newf(diagnostics.IllegalOperation, val.Span(), "Loop %s must be a number", role)
		return 0, attachRuntimeContext(diag, env, node.Span())
	}
	return num.Val, nil
}

// evaluateFor evaluates its bounds once and fixes the direction from the sign
// of the step. The loop variable lives in the current environment, but the
// iteration counter is internal, so reassigning the variable in the body does
// not change how many times the loop runs.
func (i *Interpreter) evaluateFor(n *ast.For, env *runtime.Environment) (runtime.Value, error) {
	start, err := i.loopBound(n.Start, env, "start")
	if err != nil {
		return nil, err
	}
	end, err := i.loopBound(n.End, env, "end")
	if err != nil {
		return nil, err
	}
	step := 1.0
	if n.Step != nil {
		if step, err = i.loopBound(n.Step, env, "step"); err != nil {
			return nil, err
		}
	}

	ascending := step >= 0
	var last runtime.Value
	for current := start; (ascending && current < end) || (!ascending && current > end); current += step {
		env.Define(n.Variable, runtime.Number(current).At(n.Span(), env))
		stop, err := i.loopStep(n.Body, env, &last)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}

	if n.Block || last == nil {
		return unit(n.Span(), env), nil
	}
	return last, nil
}

func (i *Interpreter) evaluateWhile(n *ast.While, env *runtime.Environment) (runtime.Value, error) {
	var last runtime.Value
	for {
		cond, err := i.evaluate(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if !runtime.IsTrue(cond) {
			break
		}
		stop, err := i.loopStep(n.Body, env, &last)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}

	if n.Block || last == nil {
		return unit(n.Span(), env), nil
	}
	return last, nil
}

func (i *Interpreter) evaluateReturn(n *ast.Return, env *runtime.Environment) (runtime.Value, error) {
	if n.Value == nil {
		return nil, returnSignal{value: unit(n.Span(), env), span: n.Span()}
	}
	val, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	return nil, returnSignal{value: val, span: n.Span()}
}
