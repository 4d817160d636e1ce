package parser

import (
	"strings"
	"testing"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
)

func TestParseArithmeticPrecedence(t *testing.T) {
	assertTree(t, "1 + 2 * 3", "{(+ 1 (* 2 3))}")
	assertTree(t, "(1 + 2) * 3", "{(* (+ 1 2) 3)}")
	assertTree(t, "10 - 4 - 3", "{(- (- 10 4) 3)}")
	assertTree(t, "8 / 2 / 2", "{(/ (/ 8 2) 2)}")
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	assertTree(t, "2 ^ 3 ^ 2", "{(^ 2 (^ 3 2))}")
	assertTree(t, "-2 ^ 2", "{(- (^ 2 2))}")
	assertTree(t, "2 ^ -1", "{(^ 2 (- 1))}")
	assertTree(t, "+4", "{(+ 4)}")
}

func TestParseComparisonAndLogic(t *testing.T) {
	assertTree(t, "not 1 == 2", "{(not (== 1 2))}")
	assertTree(t, "1 < 2 and 3 >= 4 or 0", "{(or (and (< 1 2) (>= 3 4)) 0)}")
	assertTree(t, "a != b", "{(!= a b)}")
	assertTree(t, "a <= b", "{(<= a b)}")
}

func TestParseAssignmentIsAnExpression(t *testing.T) {
	assertTree(t, "let x = let y = 5", "{(let x (let y 5))}")
	assertTree(t, "print(let z = 2)", "{(call print (let z 2))}")
}

func TestParseListsAndStrings(t *testing.T) {
	assertTree(t, `[1, "a", []]`, `{[1 "a" []]}`)
	assertTree(t, `"x" * 3`, `{(* "x" 3)}`)
}

func TestParseCalls(t *testing.T) {
	assertTree(t, "f()", "{(call f)}")
	assertTree(t, "f(1, 2 + 3)", "{(call f 1 (+ 2 3))}")
	assertTree(t, "f(1)(2)", "{(call (call f 1) 2)}")
	assertTree(t, "(fn (x) -> x)(4)", `{(call (fn "" (x) -> x) 4)}`)
}

func TestParseFunctionDefinitions(t *testing.T) {
	assertTree(t, "fn add(a, b) -> a + b", `{(fn "add" (a b) -> (+ a b))}`)
	assertTree(t, "fn (x)\n  return x\nend", `{(fn "" (x) block {(return x)})}`)
	assertTree(t, "fn noop()\n  return\nend", `{(fn "noop" () block {(return nil)})}`)
	assertTree(t, "fn empty()\nend", `{(fn "empty" () block {})}`)
}

func TestParseIfChains(t *testing.T) {
	assertTree(t, "if x then 1 elif y then 2 else 3", "{(if (x 1) (y 2) (else 3))}")
	assertTree(t, "if x then 1", "{(if (x 1))}")

	block := "if x then\n  1\nelif y then\n  2\nelse\n  3\nend"
	assertTree(t, block, "{(if (x {1} block) (y {2} block) (else {3} block))}")

	nested := "if a then\n  if b then 1\nend"
	assertTree(t, nested, "{(if (a {(if (b 1))} block))}")
}

func TestParseLoops(t *testing.T) {
	assertTree(t, "for i = 0 to 10 step 2 then i", "{(for i 0 10 2 i)}")
	assertTree(t, "for i = 3 to 0 step -1 then i", "{(for i 3 0 (- 1) i)}")
	assertTree(t, "for i = 0 to 3 then\n  i\nend", "{(for i 0 3 nil {i} block)}")
	assertTree(t, "while x then\n  break\nend", "{(while x {break} block)}")
	assertTree(t, "while x then continue", "{(while x continue)}")
}

func TestParseStatementSeparators(t *testing.T) {
	assertTree(t, "1;;2\n\n3", "{1 2 3}")
	assertTree(t, "1 # comment\n2", "{1 2}")
	assertTree(t, "", "{}")
	assertTree(t, "\n\n", "{}")
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		source  string
		message string
		line    int
		column  int
	}{
		{name: "trailing_token", source: "1 2", message: "Token cannot appear after previous tokens", column: 2},
		{name: "stray_paren", source: ")", message: expectedStatement},
		{name: "stray_paren_after_blank_lines", source: "\n\n)", message: expectedStatement, line: 2},
		{name: "stray_token_after_statement", source: "1\n)", message: "Token cannot appear after previous tokens", line: 1},
		{name: "let_without_name", source: "let = 5", message: "Expected identifier", column: 4},
		{name: "let_without_equals", source: "let x 5", message: "Expected '='", column: 6},
		{name: "unclosed_paren", source: "(1 + 2", message: "Expected ')'", column: 6},
		{name: "unclosed_list", source: "[1, 2", message: "Expected ',' or ']'", column: 5},
		{name: "missing_then", source: "while 1 2", message: "Expected 'then'", column: 8},
		{name: "missing_end", source: "while 1 then\n  2\n", message: "Expected 'end'", line: 2},
		{name: "block_if_missing_end", source: "if 1 then\n  2\n", message: "Expected 'end', 'elif' or 'else'", line: 2},
		{name: "fn_missing_paren", source: "fn f 1", message: "Expected '('", column: 5},
		{name: "fn_bad_params", source: "fn f(a, 1)", message: "Expected identifier", column: 8},
		{name: "fn_missing_body", source: "fn f() 1", message: "Expected '->' or NEWLINE", column: 7},
		{name: "for_missing_to", source: "for i = 0 then 1", message: "Expected 'to'", column: 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diag := parseFailure(t, tc.source)
			if diag.Kind != diagnostics.InvalidSyntax {
				t.Fatalf("expected InvalidSyntax, got %v", diag.Kind)
			}
			if diag.Message != tc.message {
				t.Fatalf("message = %q, want %q", diag.Message, tc.message)
			}
			if diag.Start.Line != tc.line || diag.Start.Column != tc.column {
				t.Fatalf("error at %d:%d, want %d:%d", diag.Start.Line, diag.Start.Column, tc.line, tc.column)
			}
		})
	}
}

func TestParseErrorKeepsFurthestProgress(t *testing.T) {
	diag := parseFailure(t, "1 +")
	if !strings.HasPrefix(diag.Message, "Expected int, float, identifier") {
		t.Fatalf("expected the operand error from after '+', got %q", diag.Message)
	}
	if diag.Start.Column != 3 {
		t.Fatalf("expected error at column 3, got %d", diag.Start.Column)
	}

	diag = parseFailure(t, "let x = (1 + )")
	if diag.Start.Column != 13 {
		t.Fatalf("expected error at the closing paren, got column %d: %s", diag.Start.Column, diag.Message)
	}
}

func TestParseLexErrorsPassThrough(t *testing.T) {
	diag := parseFailure(t, "1 $ 2")
	if diag.Kind != diagnostics.IllegalCharacter {
		t.Fatalf("expected IllegalCharacter, got %v", diag.Kind)
	}
}

func TestNodeSpans(t *testing.T) {
	program := parseSource(t, "let x = 1 + 2\nfoo(1, 2)")
	checkSpan(t, "program", program.Span(), 0, 0, 1, 9)

	assign := program.Statements[0].(*ast.VarAssign)
	checkSpan(t, "assign", assign.Span(), 0, 0, 0, 13)
	checkSpan(t, "sum", assign.Value.Span(), 0, 8, 0, 13)

	call := program.Statements[1].(*ast.Call)
	checkSpan(t, "call", call.Span(), 1, 0, 1, 9)
	checkSpan(t, "callee", call.Callee.Span(), 1, 0, 1, 3)

	loop := parseSource(t, "while x then\n  1\nend").Statements[0]
	checkSpan(t, "while", loop.Span(), 0, 0, 2, 3)
}

func TestValidateControlStatements(t *testing.T) {
	rejected := map[string]string{
		"break":                                         "'break' outside of a loop",
		"if 1 then continue":                            "'continue' outside of a loop",
		"return 1":                                      "'return' outside of a function",
		"while 1 then\n  fn f()\n    break\n  end\nend": "'break' outside of a loop",
	}
	for source, message := range rejected {
		err := Validate(parseSource(t, source))
		if err == nil {
			t.Fatalf("Validate(%q) expected error", source)
		}
		diag := err.(*diagnostics.Error)
		if diag.Kind != diagnostics.InvalidSyntax || diag.Message != message {
			t.Fatalf("Validate(%q) = %v, want %q", source, diag, message)
		}
	}

	accepted := []string{
		"fn f()\n  while 1 then break\n  return 1\nend",
		"for i = 0 to 1 then if i then continue",
		"while 1 then\n  for j = 0 to 2 then break\n  break\nend",
		"fn outer() -> fn inner()\n  return 2\nend",
	}
	for _, source := range accepted {
		if err := Validate(parseSource(t, source)); err != nil {
			t.Fatalf("Validate(%q) unexpected error: %v", source, err)
		}
	}
}
