// Package logic holds the term layer of the knowledge base: statements,
// variable bindings, flat two-way unification and instantiation, and a small
// text syntax for reading and printing them.
package logic

import (
	"strings"
)

// VariablePrefix marks a variable in the text syntax ("?x").
const VariablePrefix = "?"

// Term is one argument of a statement: a constant atom or a variable.
type Term struct {
	Name     string
	Variable bool
}

// Const returns a constant atom.
func Const(name string) Term {
	return Term{Name: name}
}

// Var returns a variable. A leading "?" in name is dropped.
func Var(name string) Term {
	return Term{Name: strings.TrimPrefix(name, VariablePrefix), Variable: true}
}

func (t Term) String() string {
	if t.Variable {
		return VariablePrefix + t.Name
	}
	return t.Name
}

// Statement is a predicate applied to an ordered argument list.
type Statement struct {
	Predicate string
	Args      []Term
}

// NewStatement builds a statement from a predicate and its arguments.
func NewStatement(predicate string, args ...Term) Statement {
	return Statement{Predicate: predicate, Args: args}
}

// S is shorthand for NewStatement where each argument is written in text
// form: "?x" is a variable, anything else a constant.
func S(predicate string, args ...string) Statement {
	terms := make([]Term, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, VariablePrefix) {
			terms[i] = Var(a)
		} else {
			terms[i] = Const(a)
		}
	}
	return Statement{Predicate: predicate, Args: terms}
}

// Equal reports structural equality. Variables compare by name.
func (s Statement) Equal(o Statement) bool {
	if s.Predicate != o.Predicate || len(s.Args) != len(o.Args) {
		return false
	}
	for i := range s.Args {
		if s.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Ground reports whether the statement has no variables.
func (s Statement) Ground() bool {
	for _, a := range s.Args {
		if a.Variable {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no argument storage with s.
func (s Statement) Clone() Statement {
	args := make([]Term, len(s.Args))
	copy(args, s.Args)
	return Statement{Predicate: s.Predicate, Args: args}
}

func (s Statement) String() string {
	var b strings.Builder
	b.WriteString(s.Predicate)
	b.WriteByte('(')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Binding associates a variable name (without prefix) with a term.
type Binding struct {
	Var   string
	Value Term
}

// Bindings is the result of one unification, in binding order.
type Bindings []Binding

// Lookup returns the term bound to the named variable.
func (b Bindings) Lookup(name string) (Term, bool) {
	name = strings.TrimPrefix(name, VariablePrefix)
	for _, binding := range b {
		if binding.Var == name {
			return binding.Value, true
		}
	}
	return Term{}, false
}

func (b Bindings) String() string {
	parts := make([]string, len(b))
	for i, binding := range b {
		parts[i] = VariablePrefix + binding.Var + ": " + binding.Value.String()
	}
	return strings.Join(parts, ", ")
}
