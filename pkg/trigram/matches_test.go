package trigram

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct{ start, end int }

func spans(ms []Match) []span {
	out := []span{}
	for _, m := range ms {
		out = append(out, span{m.Start(), m.End()})
	}
	return out
}

func TestFindWords(t *testing.T) {
	tests := []struct {
		needle, haystack string
		expected         []span
	}{
		{"", "", []span{}},
		{"a", "", []span{}},
		{"a", "a", []span{{0, 1}}},
		{"a", "ab", []span{}},
		{"a", "ba", []span{}},
		{"ab", "abc", []span{{0, 3}}},
		{"a", "ababa", []span{}},
		{"a", "a b a b a", []span{{0, 1}, {4, 5}, {8, 9}}},
		{"riddums", "riddims", []span{{0, len("riddums")}}},
		{"riddums", "funky riddims", []span{{len("funky "), len("funky riddims")}}},
		{"hund", "der große Hund", []span{{len("der große "), len("der große Hund")}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("needle=%q haystack=%q", tt.needle, tt.haystack), func(t *testing.T) {
			got := FindWords(tt.needle, tt.haystack, 0.3).Collect()
			assert.Equal(t, tt.expected, spans(got))
		})
	}
}

func TestFindWordsMatchText(t *testing.T) {
	haystack := "Did you know that bufalo buffalow Bungalo biffalo buffaloo huffalo snuffalo fluffalo?"
	got := FindWords("buffalo", haystack, 0.3).Collect()
	require.NotEmpty(t, got)

	var words []string
	for _, m := range got {
		assert.Equal(t, haystack[m.Start():m.End()], m.Text())
		words = append(words, m.Text())
	}
	assert.Contains(t, words, "buffalow")
	assert.Contains(t, words, "buffaloo")
	assert.NotContains(t, words, "Did")
	assert.NotContains(t, words, "fluffalo?")
}

func TestFindWordsThresholdIsStrict(t *testing.T) {
	// similarity("a", "ab") is exactly 0.25
	assert.Empty(t, FindWords("a", "ab", 0.25).Collect())
	assert.Len(t, FindWords("a", "ab", 0.2499).Collect(), 1)
}

func TestFindWordsEmptyNeedle(t *testing.T) {
	assert.Empty(t, FindWords("", "some ordinary words", 0.3).Collect())
	assert.Empty(t, FindWords("", "x", 0.0).Collect())
}

func TestMatchesNextAfterExhaustion(t *testing.T) {
	ms := FindWords("a", "a", 0.3)

	m, ok := ms.Next()
	require.True(t, ok)
	assert.Equal(t, "a", m.Text())

	for range 3 {
		_, ok = ms.Next()
		assert.False(t, ok)
	}
}

func TestMatchesAllStopsEarly(t *testing.T) {
	ms := FindWords("a", "a b a b a", 0.3)
	for m := range ms.All() {
		assert.Equal(t, 0, m.Start())
		break
	}

	// the rest is still available after an early break
	rest := ms.Collect()
	assert.Equal(t, []span{{4, 5}, {8, 9}}, spans(rest))
}

func TestMatchesIndependentInstances(t *testing.T) {
	a := FindWords("a", "a b a", 0.3)
	b := FindWords("a", "a b a", 0.3)

	_, _ = a.Next()
	_, _ = a.Next()

	assert.Len(t, b.Collect(), 2)
}

func TestMatchString(t *testing.T) {
	m, ok := FindWords("riddums", "funky riddims", 0.3).Next()
	require.True(t, ok)
	assert.Equal(t, `"riddims"[6:13]`, m.String())
}
