package simple

import (
	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

// Engine is a minimal forward-chaining resolver in pure Go.
// Each step consumes exactly the first antecedent of a rule; the remaining
// antecedents are carried over, instantiated, into a new rule.
type Engine struct{}

// New creates a new simple inference engine
func New() *Engine {
	return &Engine{}
}

var _ inference.Engine = (*Engine)(nil)

// Resolve unifies the fact with rule.LHS[0].
//
//	on(a, b)  +  covered(?y) :- on(?x, ?y)            => covered(b)
//	on(a, b)  +  clear(?x) :- on(?x, ?y), free(?y)    => clear(a) :- free(b)
func (e *Engine) Resolve(fact inference.Fact, rule inference.Rule) (inference.Entity, bool) {
	if len(rule.LHS) == 0 {
		return nil, false
	}

	bindings, ok := logic.Match(fact.Statement, rule.LHS[0])
	if !ok {
		return nil, false
	}

	rhs := logic.Instantiate(rule.RHS, bindings)
	lhs := logic.InstantiateAll(rule.LHS, bindings)[1:]

	if len(lhs) == 0 {
		return inference.Fact{Statement: rhs}, true
	}
	return inference.Rule{LHS: lhs, RHS: rhs}, true
}
