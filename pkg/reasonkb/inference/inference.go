package inference

import (
	"fmt"
	"strings"

	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

// Engine performs a single forward-chaining resolution step.
// This interface allows swapping implementations without touching the
// knowledge base that drives it.
type Engine interface {
	// Resolve matches fact against the rule's first antecedent. On success it
	// returns the derived entity: a Fact when no antecedents remain, otherwise
	// a Rule with the remaining instantiated antecedents. It must not modify
	// either input.
	Resolve(fact Fact, rule Rule) (Entity, bool)
}

// Kind tags the two entity variants.
type Kind uint8

const (
	KindFact Kind = iota + 1
	KindRule
)

func (k Kind) String() string {
	switch k {
	case KindFact:
		return "fact"
	case KindRule:
		return "rule"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Entity is either a Fact or a Rule. No other implementations exist.
type Entity interface {
	Kind() Kind
	// Key identifies the entity up to structural equality.
	Key() string
	String() string
	entity()
}

// Fact represents a single statement held in the knowledge base
type Fact struct {
	Statement logic.Statement
}

// Rule represents an implication
// Example: "covered(?y) :- on(?x, ?y)" has LHS [on(?x, ?y)] and RHS covered(?y)
type Rule struct {
	LHS []logic.Statement // antecedents, consumed left to right
	RHS logic.Statement   // consequent
}

// NewFact wraps a statement.
func NewFact(s logic.Statement) Fact {
	return Fact{Statement: s}
}

// NewRule builds a rule from its antecedents and consequent.
func NewRule(lhs []logic.Statement, rhs logic.Statement) Rule {
	return Rule{LHS: lhs, RHS: rhs}
}

func (Fact) Kind() Kind { return KindFact }
func (Rule) Kind() Kind { return KindRule }

func (Fact) entity() {}
func (Rule) entity() {}

func (f Fact) Key() string { return f.Statement.String() }
func (r Rule) Key() string { return r.String() }

func (f Fact) String() string {
	return f.Statement.String()
}

func (r Rule) String() string {
	lhs := make([]string, len(r.LHS))
	for i, s := range r.LHS {
		lhs[i] = s.String()
	}
	return r.RHS.String() + " :- " + strings.Join(lhs, ", ")
}

// Equal reports structural equality of two facts.
func (f Fact) Equal(o Fact) bool {
	return f.Statement.Equal(o.Statement)
}

// Equal reports structural equality of (LHS, RHS).
func (r Rule) Equal(o Rule) bool {
	if len(r.LHS) != len(o.LHS) || !r.RHS.Equal(o.RHS) {
		return false
	}
	for i := range r.LHS {
		if !r.LHS[i].Equal(o.LHS[i]) {
			return false
		}
	}
	return true
}

// FromClause turns a parsed clause into a Fact (no body) or a Rule.
func FromClause(c logic.Clause) Entity {
	if c.IsRule() {
		return Rule{LHS: c.Body, RHS: c.Head}
	}
	return Fact{Statement: c.Head}
}

// Parse reads a single fact or rule in program syntax.
func Parse(text string) (Entity, error) {
	c, err := logic.ParseClause(text)
	if err != nil {
		return nil, err
	}
	return FromClause(c), nil
}

// ParseProgram reads a program, one clause per line.
func ParseProgram(text string) ([]Entity, error) {
	clauses, err := logic.ParseProgram(text)
	if err != nil {
		return nil, err
	}
	out := make([]Entity, len(clauses))
	for i, c := range clauses {
		out[i] = FromClause(c)
	}
	return out, nil
}
