package interpreter

import (
	"fmt"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

// evaluate dispatches over the closed node set. A non-nil error is either a
// *diagnostics.Error or a control signal, and every composite node returns it
// upward as soon as a child produces one.
func (i *Interpreter) evaluate(node ast.Node, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return runtime.Number(n.Value).At(n.Span(), env), nil
	case *ast.StringLiteral:
		return runtime.String(n.Value).At(n.Span(), env), nil
	case *ast.ListLiteral:
		return i.evaluateList(n, env)
	case *ast.Block:
		return i.evaluateBlock(n, env)
	case *ast.VarAccess:
		return i.evaluateVarAccess(n, env)
	case *ast.VarAssign:
		return i.evaluateVarAssign(n, env)
	case *ast.BinaryOp:
		return i.evaluateBinary(n, env)
	case *ast.UnaryOp:
		return i.evaluateUnary(n, env)
	case *ast.If:
		return i.evaluateIf(n, env)
	case *ast.For:
		return i.evaluateFor(n, env)
	case *ast.While:
		return i.evaluateWhile(n, env)
	case *ast.FunctionDef:
		return i.evaluateFunctionDef(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Return:
		return i.evaluateReturn(n, env)
	case *ast.Continue:
		return nil, continueSignal{span: n.Span()}
	case *ast.Break:
		return nil, breakSignal{span: n.Span()}
	case nil:
		return nil, fmt.Errorf("evaluate: nil node")
	}
	return nil, fmt.Errorf("evaluate: unsupported node %T", node)
}

func (i *Interpreter) evaluateAll(nodes []ast.Node, env *runtime.Environment) ([]runtime.Value, error) {
	values := make([]runtime.Value, 0, len(nodes))
	for _, node := range nodes {
		val, err := i.evaluate(node, env)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

func (i *Interpreter) evaluateList(n *ast.ListLiteral, env *runtime.Environment) (runtime.Value, error) {
	elements, err := i.evaluateAll(n.Elements, env)
	if err != nil {
		return nil, err
	}
	return runtime.NewList(elements).At(n.Span(), env), nil
}

// evaluateBlock yields the list of statement values.
func (i *Interpreter) evaluateBlock(n *ast.Block, env *runtime.Environment) (runtime.Value, error) {
	values, err := i.evaluateAll(n.Statements, env)
	if err != nil {
		return nil, err
	}
	return runtime.NewList(values).At(n.Span(), env), nil
}

func (i *Interpreter) evaluateVarAccess(n *ast.VarAccess, env *runtime.Environment) (runtime.Value, error) {
	val, err := env.Get(n.Name)
	if err != nil {
		diag := diagnostics.New(diagnostics.UndefinedVariable, n.Span(), err.Error())
		return nil, attachRuntimeContext(diag, env, n.Span())
	}
	return val.At(n.Span(), env), nil
}

func (i *Interpreter) evaluateVarAssign(n *ast.VarAssign, env *runtime.Environment) (runtime.Value, error) {
	val, err := i.evaluate(n.Value, env)
	if err != nil {
		return nil, err
	}
	env.Define(n.Name, val)
	return val, nil
}

func (i *Interpreter) evaluateBinary(n *ast.BinaryOp, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(n.Right, env)
	if err != nil {
		return nil, err
	}
	result, err := applyBinary(n.Operator, left, right)
	if err != nil {
		return nil, attachRuntimeContext(err, env, n.Span())
	}
	return result.At(n.Span(), env), nil
}

func applyBinary(op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		if l, ok := left.(runtime.Adder); ok {
			return l.Add(right)
		}
	case ast.OpSubtract:
		if l, ok := left.(runtime.Subtracter); ok {
			return l.Subtract(right)
		}
	case ast.OpMultiply:
		if l, ok := left.(runtime.Multiplier); ok {
			return l.Multiply(right)
		}
	case ast.OpDivide:
		if l, ok := left.(runtime.Divider); ok {
			return l.Divide(right)
		}
	case ast.OpPower:
		if l, ok := left.(runtime.Powerer); ok {
			return l.Power(right)
		}
	case ast.OpEqual, ast.OpNotEqual, ast.OpLess, ast.OpGreater, ast.OpLessEq, ast.OpGreaterEq:
		if l, ok := left.(runtime.Comparer); ok {
			return l.Compare(op, right)
		}
	case ast.OpAnd:
		if l, ok := left.(runtime.Logical); ok {
			return l.And(right)
		}
	case ast.OpOr:
		if l, ok := left.(runtime.Logical); ok {
			return l.Or(right)
		}
	}
	return nil, runtime.IllegalOperation(left, right)
}

func (i *Interpreter) evaluateUnary(n *ast.UnaryOp, env *runtime.Environment) (runtime.Value, error) {
	operand, err := i.evaluate(n.Operand, env)
	if err != nil {
		return nil, err
	}

	var result runtime.Value
	switch n.Operator {
	case ast.OpAdd:
		result = operand
	case ast.OpSubtract:
		if m, ok := operand.(runtime.Multiplier); ok {
			result, err = m.Multiply(runtime.Number(-1).At(operand.Span(), env))
		} else {
			err = runtime.IllegalOperation(operand, nil)
		}
	case ast.OpNot:
		if neg, ok := operand.(runtime.Negator); ok {
			result, err = neg.Not()
		} else {
			err = runtime.IllegalOperation(operand, nil)
		}
	default:
		err = runtime.IllegalOperation(operand, nil)
	}
	if err != nil {
		return nil, attachRuntimeContext(err, env, n.Span())
	}
	return result.At(n.Span(), env), nil
}
