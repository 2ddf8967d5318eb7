package simple

import (
	"testing"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

func TestResolveSingleAntecedentYieldsFact(t *testing.T) {
	e := New()

	fact := inference.NewFact(logic.S("on", "block1", "table"))
	rule := inference.NewRule(
		[]logic.Statement{logic.S("on", "?x", "?y")},
		logic.S("covered", "?y"),
	)

	got, ok := e.Resolve(fact, rule)
	if !ok {
		t.Fatal("expected resolution")
	}
	f, isFact := got.(inference.Fact)
	if !isFact {
		t.Fatalf("expected a fact, got %T", got)
	}
	if !f.Statement.Equal(logic.S("covered", "table")) {
		t.Errorf("derived %s, want covered(table)", f)
	}
}

func TestResolveConsumesFirstAntecedentOnly(t *testing.T) {
	e := New()

	fact := inference.NewFact(logic.S("on", "a", "b"))
	rule := inference.NewRule(
		[]logic.Statement{logic.S("on", "?x", "?y"), logic.S("free", "?y"), logic.S("small", "?x")},
		logic.S("stackable", "?x", "?y"),
	)

	got, ok := e.Resolve(fact, rule)
	if !ok {
		t.Fatal("expected resolution")
	}
	r, isRule := got.(inference.Rule)
	if !isRule {
		t.Fatalf("expected a rule, got %T", got)
	}

	want := inference.NewRule(
		[]logic.Statement{logic.S("free", "b"), logic.S("small", "a")},
		logic.S("stackable", "a", "b"),
	)
	if !r.Equal(want) {
		t.Errorf("derived %s, want %s", r, want)
	}
}

func TestResolveOnlyLooksAtFirstAntecedent(t *testing.T) {
	e := New()

	// free(b) would match the second antecedent, but resolution is left to right.
	fact := inference.NewFact(logic.S("free", "b"))
	rule := inference.NewRule(
		[]logic.Statement{logic.S("on", "?x", "?y"), logic.S("free", "?y")},
		logic.S("stackable", "?x", "?y"),
	)

	if got, ok := e.Resolve(fact, rule); ok {
		t.Errorf("expected no resolution, got %s", got)
	}
}

func TestResolveLeavesInputsUntouched(t *testing.T) {
	e := New()

	fact := inference.NewFact(logic.S("on", "a", "b"))
	rule := inference.NewRule(
		[]logic.Statement{logic.S("on", "?x", "?y"), logic.S("free", "?y")},
		logic.S("stackable", "?x", "?y"),
	)
	before := rule.String()

	e.Resolve(fact, rule)

	if rule.String() != before || len(rule.LHS) != 2 {
		t.Errorf("rule changed: %s -> %s", before, rule)
	}
}

func TestResolveEmptyRule(t *testing.T) {
	e := New()
	if _, ok := e.Resolve(inference.NewFact(logic.S("p")), inference.Rule{RHS: logic.S("q")}); ok {
		t.Error("a rule without antecedents cannot resolve")
	}
}
