package interpreter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/guilleferrioldev/my-own-programming-language/pkg/diagnostics"
	"github.com/guilleferrioldev/my-own-programming-language/pkg/runtime"
)

type fakeHost struct {
	files  map[string]string
	clears int
}

func (h *fakeHost) ReadFile(path string) (string, error) {
	src, ok := h.files[path]
	if !ok {
		return "", fmt.Errorf("open %s: no such file or directory", path)
	}
	return src, nil
}

func (h *fakeHost) Clear(w io.Writer) error {
	h.clears++
	return nil
}

func newTestInterpreter() (*Interpreter, *bytes.Buffer) {
	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	interp.SetHost(&fakeHost{})
	return interp, &out
}

// runProgram runs source and returns the value of its last statement.
func runProgram(t *testing.T, interp *Interpreter, source string) runtime.Value {
	t.Helper()
	result, err := interp.Run("<test>", source)
	if err != nil {
		var diag *diagnostics.Error
		if errors.As(err, &diag) {
			t.Fatalf("Run(%q) failed:\n%s", source, diag.Render())
		}
		t.Fatalf("Run(%q) failed: %v", source, err)
	}
	list, ok := result.(runtime.ListValue)
	if !ok {
		t.Fatalf("Run(%q) returned %T, want a statement list", source, result)
	}
	if list.Len() == 0 {
		return nil
	}
	return list.Elements()[list.Len()-1]
}

func evalSource(t *testing.T, source string) runtime.Value {
	t.Helper()
	interp, _ := newTestInterpreter()
	return runProgram(t, interp, source)
}

func expectRepr(t *testing.T, source string, want string) {
	t.Helper()
	got := runtime.Repr(evalSource(t, source))
	if got != want {
		t.Fatalf("%q evaluated to %s, want %s", source, got, want)
	}
}

func runFailure(t *testing.T, interp *Interpreter, source string) *diagnostics.Error {
	t.Helper()
	result, err := interp.Run("<test>", source)
	if err == nil {
		t.Fatalf("Run(%q) = %s, expected an error", source, runtime.Repr(result))
	}
	if result != nil {
		t.Fatalf("Run(%q) returned both a value and an error", source)
	}
	var diag *diagnostics.Error
	if !errors.As(err, &diag) {
		t.Fatalf("Run(%q) error %T is not a diagnostic", source, err)
	}
	return diag
}

func expectFailure(t *testing.T, source string, kind diagnostics.Kind, message string) *diagnostics.Error {
	t.Helper()
	interp, _ := newTestInterpreter()
	diag := runFailure(t, interp, source)
	if diag.Kind != kind {
		t.Fatalf("%q failed with %v (%s), want %v", source, diag.Kind, diag.Message, kind)
	}
	if message != "" && diag.Message != message {
		t.Fatalf("%q failed with message %q, want %q", source, diag.Message, message)
	}
	return diag
}
