package trigram

import (
	"fmt"
	"iter"
)

// Match is one fuzzy hit in a haystack. Start and End are byte offsets.
type Match struct {
	text       string
	start, end int
}

// Start returns the byte offset where the matched word begins.
func (m Match) Start() int { return m.start }

// End returns the byte offset just past the matched word.
func (m Match) End() int { return m.end }

// Text returns the matched word as it appears in the haystack.
func (m Match) Text() string { return m.text }

func (m Match) String() string {
	return fmt.Sprintf("%q[%d:%d]", m.text, m.start, m.end)
}

// Matches walks the words of a haystack and yields the ones whose similarity
// to the needle is above the threshold. Scanning happens lazily in Next.
type Matches struct {
	needle    string
	haystack  string
	threshold float64
	pos       int
	done      bool
}

// FindWords returns an iterator over the words of haystack whose similarity
// to needle is strictly greater than threshold. Words are maximal runs of
// word characters, visited left to right.
func FindWords(needle, haystack string, threshold float64) *Matches {
	return &Matches{
		needle:    needle,
		haystack:  haystack,
		threshold: threshold,
	}
}

// Next returns the next match, or false once the haystack is exhausted.
func (ms *Matches) Next() (Match, bool) {
	for !ms.done {
		loc := wordRx.FindStringIndex(ms.haystack[ms.pos:])
		if loc == nil {
			ms.done = true
			break
		}
		start, end := ms.pos+loc[0], ms.pos+loc[1]
		ms.pos = end
		if ms.pos >= len(ms.haystack) {
			ms.done = true
		}

		word := ms.haystack[start:end]
		if Similarity(ms.needle, word) > ms.threshold {
			return Match{text: word, start: start, end: end}, true
		}
	}
	return Match{}, false
}

// All adapts the remaining matches to a range-over-func sequence.
func (ms *Matches) All() iter.Seq[Match] {
	return func(yield func(Match) bool) {
		for {
			m, ok := ms.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Collect drains the iterator into a slice.
func (ms *Matches) Collect() []Match {
	var out []Match
	for m := range ms.All() {
		out = append(out, m)
	}
	return out
}
