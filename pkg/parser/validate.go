package parser

import (
	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
)

// Validate rejects control statements that have no enclosing construct to
// receive them: `return` outside a function, and `break` or `continue`
// outside a loop. A function body starts a fresh loop context, so a `break`
// inside a function defined in a loop does not reach that loop.
func Validate(root ast.Node) error {
	v := validator{}
	if err := v.walk(root); err != nil {
		return err
	}
	return nil
}

type validator struct {
	functions int
	loops     int
}

func (v *validator) walk(node ast.Node) *diagnostics.Error {
	if node == nil {
		return nil
	}
	switch n := node.(type) {
	case *ast.NumberLiteral, *ast.StringLiteral, *ast.VarAccess:
		return nil
	case *ast.ListLiteral:
		return v.walkAll(n.Elements)
	case *ast.Block:
		return v.walkAll(n.Statements)
	case *ast.VarAssign:
		return v.walk(n.Value)
	case *ast.BinaryOp:
		if err := v.walk(n.Left); err != nil {
			return err
		}
		return v.walk(n.Right)
	case *ast.UnaryOp:
		return v.walk(n.Operand)
	case *ast.If:
		for _, c := range n.Cases {
			if err := v.walk(c.Condition); err != nil {
				return err
			}
			if err := v.walk(c.Body); err != nil {
				return err
			}
		}
		if n.Else != nil {
			return v.walk(n.Else.Body)
		}
		return nil
	case *ast.For:
		if err := v.walkAll([]ast.Node{n.Start, n.End, n.Step}); err != nil {
			return err
		}
		return v.loopBody(n.Body)
	case *ast.While:
		if err := v.walk(n.Condition); err != nil {
			return err
		}
		return v.loopBody(n.Body)
	case *ast.FunctionDef:
		saved := *v
		v.functions++
		v.loops = 0
		err := v.walk(n.Body)
		*v = saved
		return err
	case *ast.Call:
		if err := v.walk(n.Callee); err != nil {
			return err
		}
		return v.walkAll(n.Arguments)
	case *ast.Return:
		if v.functions == 0 {
			return diagnostics.New(diagnostics.InvalidSyntax, n.Span(), "'return' outside of a function")
		}
		return v.walk(n.Value)
	case *ast.Continue:
		if v.loops == 0 {
			return diagnostics.New(diagnostics.InvalidSyntax, n.Span(), "'continue' outside of a loop")
		}
		return nil
	case *ast.Break:
		if v.loops == 0 {
			return diagnostics.New(diagnostics.InvalidSyntax, n.Span(), "'break' outside of a loop")
		}
		return nil
	}
	return nil
}

func (v *validator) walkAll(nodes []ast.Node) *diagnostics.Error {
	for _, node := range nodes {
		if err := v.walk(node); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) loopBody(body ast.Node) *diagnostics.Error {
	v.loops++
	defer func() { v.loops-- }()
	return v.walk(body)
}
