package inference

import (
	"testing"

	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

func TestParseFactAndRule(t *testing.T) {
	e, err := Parse("on(block1, table).")
	if err != nil {
		t.Fatalf("parse fact: %v", err)
	}
	if e.Kind() != KindFact {
		t.Errorf("expected fact, got %s", e.Kind())
	}

	e, err = Parse("covered(?y) :- on(?x, ?y).")
	if err != nil {
		t.Fatalf("parse rule: %v", err)
	}
	r, ok := e.(Rule)
	if !ok {
		t.Fatalf("expected Rule, got %T", e)
	}
	if len(r.LHS) != 1 || !r.RHS.Equal(logic.S("covered", "?y")) {
		t.Errorf("unexpected rule %s", r)
	}
}

func TestRuleEquality(t *testing.T) {
	a := NewRule([]logic.Statement{logic.S("p", "?x")}, logic.S("q", "?x"))
	b := NewRule([]logic.Statement{logic.S("p", "?x")}, logic.S("q", "?x"))
	c := NewRule([]logic.Statement{logic.S("p", "?y")}, logic.S("q", "?y"))

	if !a.Equal(b) || a.Key() != b.Key() {
		t.Error("structurally equal rules must compare equal")
	}
	if a.Equal(c) {
		t.Error("variables compare by name")
	}
}

func TestFactAndRuleKeysDiffer(t *testing.T) {
	f := NewFact(logic.S("q", "a"))
	if f.Kind() == (Rule{}).Kind() {
		t.Error("kinds must differ")
	}
	if f.String() != "q(a)" {
		t.Errorf("String() = %q", f.String())
	}
}
