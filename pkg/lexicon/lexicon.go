// Package lexicon keeps a word list in a patricia trie and fuzzy-matches
// needles against it with trigram similarity.
//
// Lookups score every stored word (or every word under a prefix) against the
// needle; there is no trigram index behind them.
package lexicon

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/trigram/pkg/trigram"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrEmptyWord is returned when adding a word with no word characters,
// such as "" or "--".
var ErrEmptyWord = errors.New("lexicon: empty word")

// Hit is a lexicon word that matched a needle.
type Hit struct {
	Word  string
	Freq  int
	Score float64
}

// Lexicon is a set of lowercased words with frequencies.
type Lexicon struct {
	trie *patricia.Trie
	size int
	mu   sync.RWMutex
}

// New creates an empty lexicon.
func New() *Lexicon {
	return &Lexicon{trie: patricia.NewTrie()}
}

// Add inserts word with the given frequency. Adding a word twice sums the
// frequencies. Words without any word character are rejected, since they
// would have no trigrams and match every empty needle.
func (l *Lexicon) Add(word string, freq int) error {
	word = trigram.Fold(strings.TrimSpace(word))
	if trigram.Normalize(word) == trigram.Padding {
		return ErrEmptyWord
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := patricia.Prefix(word)
	if item := l.trie.Get(key); item != nil {
		l.trie.Set(key, item.(int)+freq)
		return nil
	}
	l.trie.Insert(key, freq)
	l.size++
	return nil
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// Contains reports whether word is stored, ignoring case.
func (l *Lexicon) Contains(word string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.trie.Get(patricia.Prefix(trigram.Fold(word))) != nil
}

// Freq returns the stored frequency of word, or 0.
func (l *Lexicon) Freq(word string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if item := l.trie.Get(patricia.Prefix(trigram.Fold(word))); item != nil {
		return item.(int)
	}
	return 0
}

// Prune removes words shorter than minLen runes and returns how many were
// removed.
func (l *Lexicon) Prune(minLen int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var short []patricia.Prefix
	_ = l.trie.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		if utf8.RuneCount(p) < minLen {
			short = append(short, p)
		}
		return nil
	})
	for _, p := range short {
		if l.trie.Delete(p) {
			l.size--
		}
	}
	return len(short)
}

// Words returns all entries in lexicographic order.
func (l *Lexicon) Words() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]Entry, 0, l.size)
	err := l.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		entries = append(entries, Entry{Word: string(p), Freq: item.(int)})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting lexicon: %v", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Word < entries[j].Word
	})
	return entries
}

// Lookup returns the words whose similarity to needle is strictly greater
// than threshold, in lexicographic order. A limit of 0 means no limit.
func (l *Lexicon) Lookup(needle string, threshold float64, limit int) []Hit {
	return l.WithPrefix("", needle, threshold, limit)
}

// WithPrefix is Lookup restricted to the words starting with prefix.
func (l *Lexicon) WithPrefix(prefix, needle string, threshold float64, limit int) []Hit {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var hits []Hit
	err := l.visit(trigram.Fold(prefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		score := trigram.Similarity(needle, word)
		if score <= threshold {
			return nil
		}
		hits = append(hits, Hit{Word: word, Freq: item.(int), Score: score})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting lexicon subtree %q: %v", prefix, err)
	}

	sort.Slice(hits, func(i, j int) bool {
		return hits[i].Word < hits[j].Word
	})
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

func (l *Lexicon) visit(prefix string, fn patricia.VisitorFunc) error {
	if prefix == "" {
		return l.trie.Visit(fn)
	}
	return l.trie.VisitSubtree(patricia.Prefix(prefix), fn)
}
