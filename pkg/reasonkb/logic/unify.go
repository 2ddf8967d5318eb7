package logic

// Match unifies pattern against target. Predicates and arities must agree;
// argument pairs are compared left to right. A variable on the left is bound
// to the right-hand term, otherwise a variable on the right is bound to the
// left-hand term, otherwise the two constants must be equal. A variable that
// is already bound only matches the term it is bound to.
//
// Both sides share one variable namespace. Neither input is modified. A ground
// exact match succeeds with empty, non-nil bindings.
func Match(pattern, target Statement) (Bindings, bool) {
	if pattern.Predicate != target.Predicate || len(pattern.Args) != len(target.Args) {
		return nil, false
	}

	b := Bindings{}
	for i, p := range pattern.Args {
		t := target.Args[i]

		var ok bool
		switch {
		case p.Variable:
			b, ok = b.bind(p.Name, t)
		case t.Variable:
			b, ok = b.bind(t.Name, p)
		default:
			ok = p == t
		}
		if !ok {
			return nil, false
		}
	}
	return b, true
}

func (b Bindings) bind(name string, value Term) (Bindings, bool) {
	if bound, ok := b.Lookup(name); ok {
		return b, bound == value
	}
	return append(b, Binding{Var: name, Value: value}), true
}

// Instantiate returns a copy of s with every bound variable replaced by its
// binding. Unbound variables are left as they are.
func Instantiate(s Statement, b Bindings) Statement {
	out := Statement{Predicate: s.Predicate, Args: make([]Term, len(s.Args))}
	for i, a := range s.Args {
		if a.Variable {
			if v, ok := b.Lookup(a.Name); ok {
				out.Args[i] = v
				continue
			}
		}
		out.Args[i] = a
	}
	return out
}

// InstantiateAll applies Instantiate to each statement.
func InstantiateAll(stmts []Statement, b Bindings) []Statement {
	out := make([]Statement, len(stmts))
	for i, s := range stmts {
		out[i] = Instantiate(s, b)
	}
	return out
}
