package kb

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cognicore/reasonkb/pkg/reasonkb/inference"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestKB(opts Options) *KnowledgeBase {
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	return New(opts)
}

func parse(t *testing.T, text string) inference.Entity {
	t.Helper()
	e, err := inference.Parse(text)
	require.NoError(t, err, text)
	return e
}

func assertAll(t *testing.T, k *KnowledgeBase, texts ...string) {
	t.Helper()
	for _, text := range texts {
		require.NoError(t, k.Assert(parse(t, text)), text)
	}
	checkInvariants(t, k)
}

func lookup(t *testing.T, k *KnowledgeBase, text string) Record {
	t.Helper()
	rec, ok := k.Lookup(parse(t, text))
	require.True(t, ok, "expected %s to be stored", text)
	return rec
}

func has(k *KnowledgeBase, text string) bool {
	e, err := inference.Parse(text)
	if err != nil {
		return false
	}
	_, ok := k.Lookup(e)
	return ok
}

// checkInvariants verifies structural uniqueness and that every
// justification pair is mirrored by back-links and vice versa.
func checkInvariants(t *testing.T, k *KnowledgeBase) {
	t.Helper()

	live := map[Handle]bool{}
	keys := map[string]bool{}
	for _, list := range [][]Handle{k.facts, k.rules} {
		for _, h := range list {
			n := k.nodes[h]
			require.False(t, n.removed, "removed entity %s still listed", n.entity)
			key := indexKey(n.entity)
			require.False(t, keys[key], "duplicate entity %s", key)
			keys[key] = true
			require.Equal(t, h, k.index[key])
			live[h] = true
		}
	}
	require.Len(t, k.index, len(live))

	for h := range live {
		n := k.nodes[h]
		for _, j := range n.supportedBy {
			require.True(t, live[j.Fact], "%s justified by removed fact", n.entity)
			require.True(t, live[j.Rule], "%s justified by removed rule", n.entity)
			assert.Equal(t, inference.KindFact, k.nodes[j.Fact].entity.Kind())
			assert.Equal(t, inference.KindRule, k.nodes[j.Rule].entity.Kind())
			for _, p := range []Handle{j.Fact, j.Rule} {
				bucket := k.nodes[p].supportsRules
				if n.entity.Kind() == inference.KindFact {
					bucket = k.nodes[p].supportsFacts
				}
				assert.Contains(t, bucket, h, "missing back-link %s -> %s", k.nodes[p].entity, n.entity)
			}
		}
		for _, d := range dependents(n) {
			require.True(t, live[d], "%s links to a removed entity", n.entity)
			assert.True(t, justifiedBy(k.nodes[d], h), "stale back-link %s -> %s", n.entity, k.nodes[d].entity)
		}
	}
}
