package kb

import (
	"slices"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
)

// Record is a read-only view of a stored entity. Slices are copies.
type Record struct {
	Handle        Handle
	ID            ulid.ULID
	Entity        inference.Entity
	Asserted      bool
	SupportedBy   []Justification
	SupportsFacts []Handle
	SupportsRules []Handle
}

// Kind reports whether the record holds a fact or a rule.
func (r Record) Kind() inference.Kind {
	return r.Entity.Kind()
}

// Derived reports whether at least one justification backs the entity.
func (r Record) Derived() bool {
	return len(r.SupportedBy) > 0
}

func (kb *KnowledgeBase) record(h Handle) Record {
	n := kb.nodes[h]
	return Record{
		Handle:        h,
		ID:            n.id,
		Entity:        n.entity,
		Asserted:      n.asserted,
		SupportedBy:   slices.Clone(n.supportedBy),
		SupportsFacts: slices.Clone(n.supportsFacts),
		SupportsRules: slices.Clone(n.supportsRules),
	}
}

// Get returns the record for a live handle.
func (kb *KnowledgeBase) Get(h Handle) (Record, bool) {
	if h < 0 || int(h) >= len(kb.nodes) || kb.nodes[h].removed {
		return Record{}, false
	}
	return kb.record(h), true
}

// Lookup finds the stored entity structurally equal to e.
func (kb *KnowledgeBase) Lookup(e inference.Entity) (Record, bool) {
	if e == nil {
		return Record{}, false
	}
	h, ok := kb.index[indexKey(e)]
	if !ok {
		return Record{}, false
	}
	return kb.record(h), true
}

// Facts returns the stored facts in insertion order.
func (kb *KnowledgeBase) Facts() []Record {
	out := make([]Record, len(kb.facts))
	for i, h := range kb.facts {
		out[i] = kb.record(h)
	}
	return out
}

// Rules returns the stored rules in insertion order.
func (kb *KnowledgeBase) Rules() []Record {
	out := make([]Record, len(kb.rules))
	for i, h := range kb.rules {
		out[i] = kb.record(h)
	}
	return out
}
