package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTerms_Count(t *testing.T) {
	terms := SearchTerms()
	// 36 single characters + 36^2 ordered pairs.
	require.Len(t, terms, 36+36*36)

	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		_, dup := seen[term]
		require.False(t, dup, "duplicate term %q", term)
		seen[term] = struct{}{}
		assert.LessOrEqual(t, len(term), 2)
		assert.GreaterOrEqual(t, len(term), 1)
	}
}

func TestSearchTerms_Deterministic(t *testing.T) {
	assert.Equal(t, SearchTerms(), SearchTerms())
}

func TestSearchTerms_CoversAlphabet(t *testing.T) {
	terms := SearchTerms()
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}

	for _, want := range []string{"a", "z", "0", "9", "aa", "zz", "a0", "99"} {
		_, ok := set[want]
		assert.True(t, ok, "missing term %q", want)
	}
}
