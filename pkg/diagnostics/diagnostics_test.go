package diagnostics

import (
	"strings"
	"testing"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/ast"
)

func posAt(source, text string, offset int) ast.Position {
	p := ast.StartOf(source, text)
	for p.Offset < offset {
		p = p.Advance(text[p.Offset])
	}
	return p
}

func spanOf(source, text, needle string) ast.Span {
	idx := strings.Index(text, needle)
	if idx < 0 {
		panic("needle not found: " + needle)
	}
	return ast.Span{Start: posAt(source, text, idx), End: posAt(source, text, idx+len(needle))}
}

func TestErrorString(t *testing.T) {
	text := "1 / 0"
	err := New(DivisionByZero, spanOf("<t>", text, "0"), "Division by zero")
	if err.Error() != "Division By Zero: Division by zero" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if got := Newf(ArityMismatch, ast.Span{}, "%d too few arguments passed into '%s'", 2, "f").Message; got != "2 too few arguments passed into 'f'" {
		t.Fatalf("Newf message = %q", got)
	}
}

func TestKindClassification(t *testing.T) {
	for _, k := range []Kind{IllegalCharacter, ExpectedCharacter, InvalidSyntax} {
		if k.IsRuntime() {
			t.Fatalf("%v should be a compile-time kind", k)
		}
	}
	for _, k := range []Kind{IllegalOperation, DivisionByZero, UndefinedVariable, ArityMismatch, IndexOutOfBounds, RuntimeFailure} {
		if !k.IsRuntime() {
			t.Fatalf("%v should be a runtime kind", k)
		}
	}
	if RuntimeFailure.String() != "Runtime Error" {
		t.Fatalf("RuntimeFailure renders as %q", RuntimeFailure.String())
	}
}

func TestRenderCompileTimeError(t *testing.T) {
	text := "let a = 1\nlet b = a +* 2\n"
	err := New(InvalidSyntax, spanOf("main.lang", text, "*"), "Expected int, float")
	want := "Invalid Syntax: Expected int, float\n" +
		"File main.lang, line 2\n\n" +
		"let b = a +* 2\n" +
		"           ^"
	if got := err.Render(); got != want {
		t.Fatalf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderRuntimeErrorWithTraceback(t *testing.T) {
	text := "fn f() -> x\nf()"
	err := New(UndefinedVariable, spanOf("main.lang", text, "x"), "'x' is not defined")
	err.Trace = []Frame{
		{Source: "main.lang", Line: 0, Name: "f"},
		{Source: "main.lang", Line: 1, Name: "<program>"},
	}
	want := "Traceback (most recent call last):\n" +
		"  File main.lang, line 2, in <program>\n" +
		"  File main.lang, line 1, in f\n" +
		"Undefined Variable: 'x' is not defined\n\n" +
		"fn f() -> x\n" +
		"          ^"
	if got := err.Render(); got != want {
		t.Fatalf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestSnippetUnderlinesWholeSpan(t *testing.T) {
	text := `print("a" - 1)`
	span := spanOf("<t>", text, `"a" - 1`)
	want := "print(\"a\" - 1)\n      ^^^^^^^"
	if got := Snippet(span.Start, span.End); got != want {
		t.Fatalf("Snippet =\n%s\nwant\n%s", got, want)
	}
}

func TestSnippetMultilineSpan(t *testing.T) {
	text := "let xs = [1,\n  2]"
	span := spanOf("<t>", text, "[1,\n  2]")
	want := "let xs = [1,\n         ^^^..."
	if got := Snippet(span.Start, span.End); got != want {
		t.Fatalf("Snippet =\n%s\nwant\n%s", got, want)
	}
}

func TestSnippetDropsTabsAndCountsWideRunes(t *testing.T) {
	text := "\tlet x = 1"
	span := spanOf("<t>", text, "x")
	if got, want := Snippet(span.Start, span.End), "let x = 1\n    ^"; got != want {
		t.Fatalf("tab snippet =\n%s\nwant\n%s", got, want)
	}

	text = `"日本" + 1`
	span = spanOf("<t>", text, "1")
	if got, want := Snippet(span.Start, span.End), text+"\n"+strings.Repeat(" ", 9)+"^"; got != want {
		t.Fatalf("wide snippet =\n%s\nwant\n%s", got, want)
	}
}

func TestSnippetEmptySpanStillGetsCaret(t *testing.T) {
	text := "(1 + 2"
	end := posAt("<t>", text, len(text))
	if got, want := Snippet(end, end), "(1 + 2\n      ^"; got != want {
		t.Fatalf("Snippet =\n%s\nwant\n%s", got, want)
	}
	if Snippet(ast.Position{}, ast.Position{}) != "" {
		t.Fatalf("positions without text should render nothing")
	}
}
