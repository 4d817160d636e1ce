package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentLookupReadsThroughParents(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", Number(1))
	child := global.Extend()

	got, err := child.Get("x")
	if err != nil || got.(NumberValue).Val != 1 {
		t.Fatalf("child.Get(x) = %v, %v", got, err)
	}

	child.Define("x", Number(2))
	if v, _ := global.Get("x"); v.(NumberValue).Val != 1 {
		t.Fatalf("defining in the child must not touch the parent, got %v", v)
	}
	if v, _ := child.Get("x"); v.(NumberValue).Val != 2 {
		t.Fatalf("child binding should shadow the parent, got %v", v)
	}
	if _, err := child.Get("y"); err == nil {
		t.Fatalf("expected y to be undefined")
	}
}

func TestEnvironmentUndefined(t *testing.T) {
	env := NewEnvironment(nil)
	_, err := env.Get("missing")
	var undefined *UndefinedError
	if !errors.As(err, &undefined) || undefined.Name != "missing" {
		t.Fatalf("expected UndefinedError, got %v", err)
	}
	if err.Error() != "'missing' is not defined" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestEnvironmentRuntimeDataFallsBackToParent(t *testing.T) {
	root := NewEnvironment(nil)
	root.SetRuntimeData("root")
	child := root.Extend()
	if got := child.RuntimeData(); got != "root" {
		t.Fatalf("child.RuntimeData() = %v, want root", got)
	}
	child.SetRuntimeData("child")
	if got := child.RuntimeData(); got != "child" {
		t.Fatalf("child.RuntimeData() = %v, want child", got)
	}
	if got := root.RuntimeData(); got != "root" {
		t.Fatalf("root.RuntimeData() = %v, want root", got)
	}
}
