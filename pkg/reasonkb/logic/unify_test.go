package logic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatchBindsQueryVariables(t *testing.T) {
	b, ok := Match(S("on", "?x", "table"), S("on", "block1", "table"))
	if !ok {
		t.Fatal("expected match")
	}

	want := Bindings{{Var: "x", Value: Const("block1")}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchBindsBothSides(t *testing.T) {
	b, ok := Match(S("on", "a", "?y"), S("on", "?x", "table"))
	if !ok {
		t.Fatal("expected match")
	}

	want := Bindings{
		{Var: "x", Value: Const("a")},
		{Var: "y", Value: Const("table")},
	}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("bindings mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchRepeatedVariable(t *testing.T) {
	if _, ok := Match(S("same", "?x", "?x"), S("same", "a", "b")); ok {
		t.Error("?x cannot be both a and b")
	}
	if _, ok := Match(S("same", "?x", "?x"), S("same", "a", "a")); !ok {
		t.Error("expected same(a, a) to match")
	}
}

func TestMatchRejectsPredicateAndArity(t *testing.T) {
	if _, ok := Match(S("on", "?x", "?y"), S("under", "a", "b")); ok {
		t.Error("different predicates must not match")
	}
	if _, ok := Match(S("on", "?x"), S("on", "a", "b")); ok {
		t.Error("different arities must not match")
	}
	if _, ok := Match(S("on", "a", "b"), S("on", "a", "c")); ok {
		t.Error("different constants must not match")
	}
}

func TestMatchGroundSucceedsWithEmptyBindings(t *testing.T) {
	b, ok := Match(S("on", "a", "b"), S("on", "a", "b"))
	if !ok {
		t.Fatal("expected ground match")
	}
	if b == nil || len(b) != 0 {
		t.Errorf("expected empty non-nil bindings, got %#v", b)
	}
}

func TestMatchDoesNotMutateInputs(t *testing.T) {
	pattern := S("on", "?x", "?y")
	target := S("on", "a", "?z")
	before := []Statement{pattern.Clone(), target.Clone()}

	Match(pattern, target)

	if diff := cmp.Diff(before, []Statement{pattern, target}); diff != "" {
		t.Errorf("inputs changed (-before +after):\n%s", diff)
	}
}

func TestInstantiate(t *testing.T) {
	tmpl := S("clear", "?x", "?y")
	b := Bindings{{Var: "x", Value: Const("a")}}

	got := Instantiate(tmpl, b)
	if diff := cmp.Diff(S("clear", "a", "?y"), got); diff != "" {
		t.Errorf("instantiate mismatch (-want +got):\n%s", diff)
	}
	if !tmpl.Equal(S("clear", "?x", "?y")) {
		t.Errorf("template was modified: %s", tmpl)
	}
}

func TestBindingsLookup(t *testing.T) {
	b := Bindings{{Var: "x", Value: Const("a")}}

	if v, ok := b.Lookup("?x"); !ok || v != Const("a") {
		t.Errorf("Lookup(?x) = %v, %v", v, ok)
	}
	if _, ok := b.Lookup("y"); ok {
		t.Error("y should be unbound")
	}
	if got := b.String(); got != "?x: a" {
		t.Errorf("String() = %q", got)
	}
}
