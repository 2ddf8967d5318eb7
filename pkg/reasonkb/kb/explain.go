package kb

import (
	"fmt"
	"strings"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
)

// Derivation is a proof tree rooted at a stored entity. Each support is one
// justification of the root, expanded recursively down to direct assertions.
type Derivation struct {
	Record   Record
	Supports []Support
	// Cycle is set when the entity already appears higher up the same
	// branch; its supports are not expanded again.
	Cycle bool
}

// Support pairs the derivations of the two premises of one justification.
type Support struct {
	Fact *Derivation
	Rule *Derivation
}

// Explain builds the derivation tree of the stored entity equal to e.
func (kb *KnowledgeBase) Explain(e inference.Entity) (*Derivation, error) {
	if e == nil {
		return nil, fmt.Errorf("explain: %w", internalerr.ErrInvalidInput)
	}
	h, ok := kb.index[indexKey(e)]
	if !ok {
		return nil, fmt.Errorf("explain %s: %w", e, internalerr.ErrNotFound)
	}
	return kb.derive(h, map[Handle]bool{}), nil
}

func (kb *KnowledgeBase) derive(h Handle, path map[Handle]bool) *Derivation {
	d := &Derivation{Record: kb.record(h)}
	if path[h] {
		d.Cycle = true
		return d
	}

	path[h] = true
	for _, j := range d.Record.SupportedBy {
		d.Supports = append(d.Supports, Support{
			Fact: kb.derive(j.Fact, path),
			Rule: kb.derive(j.Rule, path),
		})
	}
	delete(path, h)
	return d
}

// Premises returns the directly asserted entities the tree bottoms out in,
// each once, in depth-first order.
func (d *Derivation) Premises() []Record {
	seen := map[Handle]bool{}
	var out []Record
	var walk func(*Derivation)
	walk = func(n *Derivation) {
		if n.Record.Asserted && !seen[n.Record.Handle] {
			seen[n.Record.Handle] = true
			out = append(out, n.Record)
		}
		for _, s := range n.Supports {
			walk(s.Fact)
			walk(s.Rule)
		}
	}
	walk(d)
	return out
}

// Depth is the length of the longest justification chain below d.
func (d *Derivation) Depth() int {
	depth := 0
	for _, s := range d.Supports {
		depth = max(depth, 1+s.Fact.Depth(), 1+s.Rule.Depth())
	}
	return depth
}

func (d *Derivation) String() string {
	var b strings.Builder
	d.write(&b, 0)
	return b.String()
}

func (d *Derivation) write(b *strings.Builder, indent int) {
	pad := strings.Repeat("  ", indent)
	b.WriteString(pad)
	b.WriteString(d.Record.Entity.String())

	var tags []string
	if d.Record.Asserted {
		tags = append(tags, "asserted")
	}
	if d.Cycle {
		tags = append(tags, "cycle")
	}
	if len(tags) > 0 {
		b.WriteString(" [" + strings.Join(tags, ", ") + "]")
	}
	b.WriteByte('\n')

	for i, s := range d.Supports {
		fmt.Fprintf(b, "%s  via #%d:\n", pad, i+1)
		s.Fact.write(b, indent+2)
		s.Rule.write(b, indent+2)
	}
}
