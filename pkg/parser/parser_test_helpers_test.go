package parser

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
)

func parseSource(t testing.TB, source string) *ast.Block {
	t.Helper()
	block, err := ParseSource("<test>", source)
	if err != nil {
		t.Fatalf("ParseSource(%q) error: %v", source, err)
	}
	return block
}

func parseFailure(t testing.TB, source string) *diagnostics.Error {
	t.Helper()
	_, err := ParseSource("<test>", source)
	if err == nil {
		t.Fatalf("ParseSource(%q) expected error", source)
	}
	var diag *diagnostics.Error
	if !errors.As(err, &diag) {
		t.Fatalf("ParseSource(%q) error %T is not a diagnostic", source, err)
	}
	return diag
}

// assertTree compares the program against an s-expression rendering so
// tests stay readable and independent of spans.
func assertTree(t testing.TB, source string, want string) {
	t.Helper()
	got := sexpr(parseSource(t, source))
	if got != want {
		t.Fatalf("ParseSource(%q)\n got: %s\nwant: %s", source, got, want)
	}
}

func checkSpan(t testing.TB, label string, span ast.Span, startLine, startCol, endLine, endCol int) {
	t.Helper()
	if span.Start.Line != startLine || span.Start.Column != startCol {
		t.Fatalf("%s start span mismatch: got (%d,%d), want (%d,%d)", label, span.Start.Line, span.Start.Column, startLine, startCol)
	}
	if span.End.Line != endLine || span.End.Column != endCol {
		t.Fatalf("%s end span mismatch: got (%d,%d), want (%d,%d)", label, span.End.Line, span.End.Column, endLine, endCol)
	}
}

func sexpr(node ast.Node) string {
	if node == nil {
		return "nil"
	}
	switch n := node.(type) {
	case *ast.NumberLiteral:
		return fmt.Sprintf("%g", n.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.ListLiteral:
		return "[" + sexprAll(n.Elements) + "]"
	case *ast.Block:
		return "{" + sexprAll(n.Statements) + "}"
	case *ast.VarAccess:
		return n.Name
	case *ast.VarAssign:
		return fmt.Sprintf("(let %s %s)", n.Name, sexpr(n.Value))
	case *ast.BinaryOp:
		return fmt.Sprintf("(%s %s %s)", n.Operator, sexpr(n.Left), sexpr(n.Right))
	case *ast.UnaryOp:
		return fmt.Sprintf("(%s %s)", n.Operator, sexpr(n.Operand))
	case *ast.If:
		var parts []string
		for _, c := range n.Cases {
			parts = append(parts, fmt.Sprintf("(%s %s%s)", sexpr(c.Condition), sexpr(c.Body), blockMark(c.Block)))
		}
		if n.Else != nil {
			parts = append(parts, fmt.Sprintf("(else %s%s)", sexpr(n.Else.Body), blockMark(n.Else.Block)))
		}
		return "(if " + strings.Join(parts, " ") + ")"
	case *ast.For:
		return fmt.Sprintf("(for %s %s %s %s %s%s)", n.Variable, sexpr(n.Start), sexpr(n.End), sexpr(n.Step), sexpr(n.Body), blockMark(n.Block))
	case *ast.While:
		return fmt.Sprintf("(while %s %s%s)", sexpr(n.Condition), sexpr(n.Body), blockMark(n.Block))
	case *ast.FunctionDef:
		form := "->"
		if !n.AutoReturn {
			form = "block"
		}
		return fmt.Sprintf("(fn %q (%s) %s %s)", n.Name, strings.Join(n.Params, " "), form, sexpr(n.Body))
	case *ast.Call:
		if len(n.Arguments) == 0 {
			return fmt.Sprintf("(call %s)", sexpr(n.Callee))
		}
		return fmt.Sprintf("(call %s %s)", sexpr(n.Callee), sexprAll(n.Arguments))
	case *ast.Return:
		return fmt.Sprintf("(return %s)", sexpr(n.Value))
	case *ast.Continue:
		return "continue"
	case *ast.Break:
		return "break"
	}
	return fmt.Sprintf("<%T>", node)
}

func sexprAll(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = sexpr(node)
	}
	return strings.Join(parts, " ")
}

func blockMark(block bool) string {
	if block {
		return " block"
	}
	return ""
}
