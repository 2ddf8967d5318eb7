// Package kb implements a forward-chaining knowledge base with
// justification tracking.
//
// Every stored fact and rule lives in an arena and is addressed by a Handle.
// Each inference step records a justification pair (premise fact, premise
// rule) on the derived entity and mirrors it as back-links on both premises.
// Retraction walks those back-links outward from the retracted fact.
//
// A KnowledgeBase is not safe for concurrent use.
package kb

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
	"github.com/cognicore/reasonkb/pkg/reasonkb/inference/simple"
	"github.com/cognicore/reasonkb/pkg/reasonkb/internalerr"
	"github.com/cognicore/reasonkb/pkg/reasonkb/logic"
)

// Handle addresses an entity in the arena. Handles are never reused, so a
// handle held after its entity was retracted simply stops resolving.
type Handle int

// Justification is one independent derivation: the fact and rule that
// were resolved to produce an entity.
type Justification struct {
	Fact Handle
	Rule Handle
}

func (j Justification) has(h Handle) bool {
	return j.Fact == h || j.Rule == h
}

// RetractionPolicy decides which dependents fall with a retracted entity.
type RetractionPolicy string

const (
	// RetractCascade removes every entity that any removed entity helped
	// derive, even when it still has other valid justifications or was also
	// asserted directly.
	RetractCascade RetractionPolicy = "cascade"
	// RetractSupported only removes a dependent once it has no justification
	// left and was not asserted directly. Retracting an entity that is still
	// derivable only clears its asserted flag.
	RetractSupported RetractionPolicy = "supported"
)

// RuleRetraction decides what Retract does with a Rule.
type RuleRetraction string

const (
	// RuleRetractionReject fails with internalerr.ErrUnsupported.
	RuleRetractionReject RuleRetraction = "reject"
	// RuleRetractionCascade removes the rule with the same walk used for facts.
	RuleRetractionCascade RuleRetraction = "cascade"
)

// Options configures a KnowledgeBase
type Options struct {
	Engine         inference.Engine // defaults to simple.New()
	Logger         *slog.Logger     // defaults to slog.Default()
	Retraction     RetractionPolicy // defaults to RetractCascade
	RuleRetraction RuleRetraction   // defaults to RuleRetractionReject
}

type node struct {
	id            ulid.ULID
	entity        inference.Entity
	asserted      bool
	supportedBy   []Justification
	supportsFacts []Handle
	supportsRules []Handle
	removed       bool
}

// KnowledgeBase stores facts and rules and keeps their deductive closure.
type KnowledgeBase struct {
	engine         inference.Engine
	logger         *slog.Logger
	retraction     RetractionPolicy
	ruleRetraction RuleRetraction
	entropy        *ulid.MonotonicEntropy

	nodes []*node
	index map[string]Handle
	facts []Handle
	rules []Handle
}

// New creates an empty knowledge base.
func New(opts Options) *KnowledgeBase {
	if opts.Engine == nil {
		opts.Engine = simple.New()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Retraction == "" {
		opts.Retraction = RetractCascade
	}
	if opts.RuleRetraction == "" {
		opts.RuleRetraction = RuleRetractionReject
	}
	return &KnowledgeBase{
		engine:         opts.Engine,
		logger:         opts.Logger,
		retraction:     opts.Retraction,
		ruleRetraction: opts.RuleRetraction,
		entropy:        ulid.Monotonic(rand.Reader, 0),
		index:          make(map[string]Handle),
	}
}

// Answer is one successful match of an Ask query.
type Answer struct {
	Bindings logic.Bindings
	Facts    []Handle // stored facts that grounded the match
}

// Assert adds a fact or rule as a direct assertion and derives everything
// that follows from it. Asserting an entity that is already stored only
// marks it as asserted.
func (kb *KnowledgeBase) Assert(e inference.Entity) error {
	if err := validate(e); err != nil {
		return err
	}
	kb.logger.Debug("asserting", slog.String("kind", e.Kind().String()), slog.String("entity", e.String()))
	kb.add(e, nil)
	return nil
}

func validate(e inference.Entity) error {
	switch v := e.(type) {
	case inference.Fact:
		if v.Statement.Predicate == "" {
			return fmt.Errorf("fact without predicate: %w", internalerr.ErrInvalidInput)
		}
	case inference.Rule:
		if len(v.LHS) == 0 {
			return fmt.Errorf("rule %s has no antecedents: %w", v.RHS, internalerr.ErrInvalidInput)
		}
		if v.RHS.Predicate == "" {
			return fmt.Errorf("rule without consequent: %w", internalerr.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("unknown entity %T: %w", e, internalerr.ErrInvalidInput)
	}
	return nil
}

// add inserts e or merges into the stored copy. A nil just means a direct
// assertion. Mirror edges are in place before chaining starts.
func (kb *KnowledgeBase) add(e inference.Entity, just *Justification) Handle {
	kb.logger.Debug("adding", slog.String("entity", e.String()))

	key := indexKey(e)
	if h, ok := kb.index[key]; ok {
		if just != nil {
			kb.justify(h, *just)
		} else {
			kb.nodes[h].asserted = true
		}
		return h
	}

	h := Handle(len(kb.nodes))
	kb.nodes = append(kb.nodes, &node{
		id:       ulid.MustNew(ulid.Now(), kb.entropy),
		entity:   clone(e),
		asserted: just == nil,
	})
	kb.index[key] = h
	if just != nil {
		kb.justify(h, *just)
	}

	switch e.Kind() {
	case inference.KindFact:
		kb.facts = append(kb.facts, h)
		for _, r := range slices.Clone(kb.rules) {
			kb.infer(h, r)
		}
	case inference.KindRule:
		kb.rules = append(kb.rules, h)
		for _, f := range slices.Clone(kb.facts) {
			kb.infer(f, h)
		}
	}
	return h
}

// justify records j on h and mirrors it on both premises.
func (kb *KnowledgeBase) justify(h Handle, j Justification) {
	n := kb.nodes[h]
	if slices.Contains(n.supportedBy, j) {
		return
	}
	n.supportedBy = append(n.supportedBy, j)
	kb.link(j.Fact, h)
	kb.link(j.Rule, h)
}

func (kb *KnowledgeBase) link(premise, dependent Handle) {
	p := kb.nodes[premise]
	if kb.nodes[dependent].entity.Kind() == inference.KindFact {
		if !slices.Contains(p.supportsFacts, dependent) {
			p.supportsFacts = append(p.supportsFacts, dependent)
		}
		return
	}
	if !slices.Contains(p.supportsRules, dependent) {
		p.supportsRules = append(p.supportsRules, dependent)
	}
}

func (kb *KnowledgeBase) unlink(premise, dependent Handle) {
	p := kb.nodes[premise]
	p.supportsFacts = slices.DeleteFunc(p.supportsFacts, func(h Handle) bool { return h == dependent })
	p.supportsRules = slices.DeleteFunc(p.supportsRules, func(h Handle) bool { return h == dependent })
}

func (kb *KnowledgeBase) infer(fh, rh Handle) {
	fact := kb.nodes[fh].entity.(inference.Fact)
	rule := kb.nodes[rh].entity.(inference.Rule)

	kb.logger.Debug("attempting to infer",
		slog.String("fact", fact.String()),
		slog.String("rule", rule.String()),
	)

	derived, ok := kb.engine.Resolve(fact, rule)
	if !ok {
		return
	}
	kb.logger.Debug("inferred",
		slog.String("kind", derived.Kind().String()),
		slog.String("entity", derived.String()),
	)
	kb.add(derived, &Justification{Fact: fh, Rule: rh})
}

// Ask matches a fact-shaped query against every stored fact. A rule-shaped
// query is logged as invalid and yields no answers. No match yields nil.
func (kb *KnowledgeBase) Ask(q inference.Entity) []Answer {
	query, ok := q.(inference.Fact)
	if !ok {
		desc := "<nil>"
		if q != nil {
			desc = q.String()
		}
		kb.logger.Warn("invalid ask", slog.String("query", desc))
		return nil
	}
	kb.logger.Debug("asking", slog.String("query", query.String()))

	var answers []Answer
	for _, h := range kb.facts {
		stored := kb.nodes[h].entity.(inference.Fact)
		if b, ok := logic.Match(query.Statement, stored.Statement); ok {
			answers = append(answers, Answer{Bindings: b, Facts: []Handle{h}})
		}
	}
	return answers
}

// Len returns the number of stored facts and rules.
func (kb *KnowledgeBase) Len() int {
	return len(kb.facts) + len(kb.rules)
}

// String lists the stored facts, then the stored rules.
func (kb *KnowledgeBase) String() string {
	var b strings.Builder
	b.WriteString("Knowledge Base:\n")
	for _, h := range kb.facts {
		b.WriteString(kb.describe(h))
		b.WriteByte('\n')
	}
	for _, h := range kb.rules {
		b.WriteString(kb.describe(h))
		b.WriteByte('\n')
	}
	return b.String()
}

func (kb *KnowledgeBase) describe(h Handle) string {
	n := kb.nodes[h]
	var tags []string
	if n.asserted {
		tags = append(tags, "asserted")
	}
	if len(n.supportedBy) > 0 {
		tags = append(tags, fmt.Sprintf("%d justification(s)", len(n.supportedBy)))
	}
	if len(tags) == 0 {
		return n.entity.String()
	}
	return n.entity.String() + " [" + strings.Join(tags, ", ") + "]"
}

func clone(e inference.Entity) inference.Entity {
	switch v := e.(type) {
	case inference.Fact:
		return inference.Fact{Statement: v.Statement.Clone()}
	case inference.Rule:
		lhs := make([]logic.Statement, len(v.LHS))
		for i, s := range v.LHS {
			lhs[i] = s.Clone()
		}
		return inference.Rule{LHS: lhs, RHS: v.RHS.Clone()}
	}
	return e
}

// indexKey keeps facts and rules in separate key spaces.
func indexKey(e inference.Entity) string {
	return e.Kind().String() + ":" + e.Key()
}
