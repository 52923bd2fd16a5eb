/*
Package trigram computes the similarity of strings the way the PostgreSQL
pg_trgm extension's similarity() function does.

Both strings are normalized, split into sets of three-codepoint windows
(trigrams), and compared with the Jaccard index of the two sets. The result is
between 0.0 and 1.0, with 1.0 meaning the trigram sets are identical.

Normalization lowercases the input and collapses every run of non-word
characters into two spaces, so different strings can still score 1.0:

	trigram.Similarity("Figaro?", "figaro") // 1.0
	trigram.Similarity("foo", "food")       // 0.5

FindWords scans a longer text for the words that fuzzily match a needle:

	for m := range trigram.FindWords("buffalo", text, 0.3).All() {
		fmt.Println(m.Start(), m.End(), m.Text())
	}

Everything in this package is pure and safe for concurrent use, except that a
single Matches value must not be advanced from several goroutines at once.
*/
package trigram

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Padding replaces string boundaries and runs of non-word characters.
const Padding = "  "

// wordClass is the set of Unicode word characters: letters, marks, decimal
// digits, letter numbers, connector punctuation and the join controls.
// The explicit ranges are the circled and squared Latin letters, which are
// Alphabetic but categorized as symbols.
const wordClass = `\p{L}\p{M}\p{Nd}\p{Nl}\p{Pc}\x{200C}\x{200D}` +
	`\x{24B6}-\x{24E9}\x{1F130}-\x{1F149}\x{1F150}-\x{1F169}\x{1F170}-\x{1F189}`

var (
	boundaryRx = regexp.MustCompile(`^[^` + wordClass + `]*|[^` + wordClass + `]*$|[^` + wordClass + `]+`)
	wordRx     = regexp.MustCompile(`[` + wordClass + `]+`)
)

// cases.Caser keeps state between calls and cannot be shared.
var lowerPool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// Fold lowercases s the same way Normalize does, with full Unicode case
// mapping including the final sigma.
func Fold(s string) string {
	c := lowerPool.Get().(*cases.Caser)
	defer lowerPool.Put(c)
	c.Reset()
	return c.String(s)
}

// Normalize returns the comparison form of s: the start, the end and every
// run of non-word characters are replaced with Padding, then the result is
// lowercased. A run touching the start or end is absorbed into that
// boundary's padding, so punctuation-only input normalizes to Padding alone.
func Normalize(s string) string {
	return Fold(boundaryRx.ReplaceAllLiteralString(s, Padding))
}

// Set is a set of trigrams.
type Set map[string]struct{}

// Len returns the number of trigrams in the set.
func (s Set) Len() int {
	return len(s)
}

// Has reports whether t is in the set.
func (s Set) Has(t string) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the trigrams in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Trigrams returns the set of trigrams of an already normalized string.
// Trigrams ending in two padding characters are left out, matching pg_trgm.
func Trigrams(normalized string) Set {
	idxs := runeIndexes(normalized)
	set := make(Set)
	if len(idxs) < 4 {
		return set
	}
	for i := 0; i+3 < len(idxs); i++ {
		t := normalized[idxs[i]:idxs[i+3]]
		if strings.HasSuffix(t, Padding) {
			continue
		}
		set[t] = struct{}{}
	}
	return set
}

// runeIndexes returns the byte offset of every codepoint in s followed by
// len(s) as a sentinel.
func runeIndexes(s string) []int {
	idxs := make([]int, 0, len(s)+1)
	for i := range s {
		idxs = append(idxs, i)
	}
	return append(idxs, len(s))
}

// Jaccard returns |a ∩ b| / |a ∪ b|. Two empty sets are maximally similar.
func Jaccard(a, b Set) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	inter := 0
	for t := range a {
		if b.Has(t) {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 1.0
	}
	return float64(inter) / float64(union)
}

// Similarity returns the Jaccard similarity of the trigram sets of a and b.
func Similarity(a, b string) float64 {
	return Jaccard(Trigrams(Normalize(a)), Trigrams(Normalize(b)))
}
