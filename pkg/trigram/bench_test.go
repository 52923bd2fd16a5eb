package trigram

import "testing"

const (
	benchA = "This is a longer string. It contains complete sentences."
	benchB = "This is a longish string. It contains complete sentences."
)

var sink any

func BenchmarkSimilarity(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		sink = Similarity(benchA, benchB)
	}
}

// BenchmarkStringEquality is a point of reference for BenchmarkSimilarity.
func BenchmarkStringEquality(b *testing.B) {
	a, c := benchA, benchB
	for b.Loop() {
		sink = a == c
	}
}

func BenchmarkFindWords(b *testing.B) {
	haystack := "Did you know that bufalo buffalow Bungalo biffalo buffaloo huffalo snuffalo fluffalo?"
	b.ReportAllocs()
	for b.Loop() {
		sink = FindWords("buffalo", haystack, 0.3).Collect()
	}
}
