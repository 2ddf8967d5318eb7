package kb

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
)

// Retract removes a stored fact together with the entities that depend on
// it, as decided by the RetractionPolicy.
//
// Retracting a fact that is not stored fails with internalerr.ErrNotFound.
// Retracting a rule fails with internalerr.ErrUnsupported unless the
// knowledge base was built with RuleRetractionCascade.
//
// Under RetractCascade (the default) every dependent is removed once any of
// its justifications is severed, even if another justification is still
// intact. This is deliberate; see RetractSupported for the alternative.
func (kb *KnowledgeBase) Retract(e inference.Entity) error {
	_, err := kb.RetractReport(e)
	return err
}

// RetractReport is Retract returning the removed entities in removal order.
func (kb *KnowledgeBase) RetractReport(e inference.Entity) ([]Record, error) {
	switch e.(type) {
	case inference.Fact:
	case inference.Rule:
		if kb.ruleRetraction != RuleRetractionCascade {
			return nil, fmt.Errorf("retract rule %s: %w", e, internalerr.ErrUnsupported)
		}
	default:
		return nil, fmt.Errorf("retract %T: %w", e, internalerr.ErrInvalidInput)
	}

	h, ok := kb.index[indexKey(e)]
	if !ok {
		return nil, fmt.Errorf("retract %s: %w", e, internalerr.ErrNotFound)
	}
	kb.logger.Debug("retracting",
		slog.String("entity", e.String()),
		slog.String("policy", string(kb.retraction)),
	)

	var doomed []Handle
	switch kb.retraction {
	case RetractSupported:
		doomed = kb.collectUnfounded(h)
	default:
		doomed = kb.collectCascade(h)
	}
	if len(doomed) == 0 {
		kb.logger.Debug("still derivable", slog.String("entity", e.String()))
		return nil, nil
	}

	removed := make([]Record, len(doomed))
	for i, d := range doomed {
		removed[i] = kb.record(d)
	}
	kb.remove(doomed)

	kb.logger.Debug("retracted",
		slog.String("entity", e.String()),
		slog.Int("removed", len(removed)),
	)
	return removed, nil
}

// collectCascade walks back-links from seed and returns every entity
// reached, each once, in visiting order.
func (kb *KnowledgeBase) collectCascade(seed Handle) []Handle {
	seen := map[Handle]bool{seed: true}
	order := []Handle{}
	work := []Handle{seed}
	for len(work) > 0 {
		h := work[0]
		work = work[1:]
		order = append(order, h)

		for _, d := range dependents(kb.nodes[h]) {
			if !seen[d] {
				seen[d] = true
				work = append(work, d)
			}
		}
	}
	return order
}

// collectUnfounded withdraws the direct assertion of seed and returns the
// entities that are no longer grounded in any direct assertion, in
// breadth-first order from seed. Entities kept alive only by a cycle of
// justifications through seed count as unfounded.
func (kb *KnowledgeBase) collectUnfounded(seed Handle) []Handle {
	kb.nodes[seed].asserted = false

	live := append(slices.Clone(kb.facts), kb.rules...)
	founded := make(map[Handle]bool, len(live))
	for _, h := range live {
		if kb.nodes[h].asserted {
			founded[h] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for _, h := range live {
			if founded[h] {
				continue
			}
			for _, j := range kb.nodes[h].supportedBy {
				if founded[j.Fact] && founded[j.Rule] {
					founded[h] = true
					changed = true
					break
				}
			}
		}
	}
	if founded[seed] {
		return nil
	}

	seen := map[Handle]bool{seed: true}
	order := []Handle{}
	work := []Handle{seed}
	for len(work) > 0 {
		h := work[0]
		work = work[1:]
		order = append(order, h)

		for _, d := range dependents(kb.nodes[h]) {
			if !seen[d] && !founded[d] {
				seen[d] = true
				work = append(work, d)
			}
		}
	}
	return order
}

// remove applies a removal set computed up front. Surviving neighbours lose
// the justifications and back-links that referenced removed entities.
func (kb *KnowledgeBase) remove(doomed []Handle) {
	gone := make(map[Handle]bool, len(doomed))
	for _, h := range doomed {
		gone[h] = true
	}

	for _, h := range doomed {
		n := kb.nodes[h]
		n.removed = true
		delete(kb.index, indexKey(n.entity))
		kb.logger.Debug("removing", slog.String("entity", n.entity.String()))
	}
	kb.facts = slices.DeleteFunc(kb.facts, func(h Handle) bool { return gone[h] })
	kb.rules = slices.DeleteFunc(kb.rules, func(h Handle) bool { return gone[h] })

	for _, h := range doomed {
		n := kb.nodes[h]
		for _, j := range n.supportedBy {
			if !gone[j.Fact] {
				kb.unlink(j.Fact, h)
			}
			if !gone[j.Rule] {
				kb.unlink(j.Rule, h)
			}
		}
		for _, d := range dependents(n) {
			if !gone[d] {
				kb.sever(d, gone)
			}
		}
	}

	for _, h := range doomed {
		n := kb.nodes[h]
		n.supportedBy = nil
		n.supportsFacts = nil
		n.supportsRules = nil
	}
}

// sever drops the justifications of h that reference a removed entity,
// along with back-links no remaining justification needs.
func (kb *KnowledgeBase) sever(h Handle, gone map[Handle]bool) {
	n := kb.nodes[h]

	var dropped []Justification
	n.supportedBy = slices.DeleteFunc(n.supportedBy, func(j Justification) bool {
		if gone[j.Fact] || gone[j.Rule] {
			dropped = append(dropped, j)
			return true
		}
		return false
	})

	for _, j := range dropped {
		for _, p := range [2]Handle{j.Fact, j.Rule} {
			if gone[p] || justifiedBy(n, p) {
				continue
			}
			kb.unlink(p, h)
		}
	}
}

func justifiedBy(n *node, premise Handle) bool {
	for _, j := range n.supportedBy {
		if j.has(premise) {
			return true
		}
	}
	return false
}

func dependents(n *node) []Handle {
	out := make([]Handle, 0, len(n.supportsFacts)+len(n.supportsRules))
	out = append(out, n.supportsFacts...)
	return append(out, n.supportsRules...)
}
