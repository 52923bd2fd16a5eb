// Package cli handles cmd line input for debugging similarity, word scans and
// lexicon lookups interactively.
package cli

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/trigram/internal/logger"
	"github.com/bastiangx/trigram/internal/utils"
	"github.com/bastiangx/trigram/pkg/lexicon"
	"github.com/bastiangx/trigram/pkg/trigram"
	"github.com/charmbracelet/log"
)

const findCommand = "find "

// InputHandler reads lines and prints results. A line "a | b" prints the
// similarity of a and b, "find needle | haystack" prints the fuzzy word
// matches, and anything else is looked up in the lexicon.
type InputHandler struct {
	lexicon      *lexicon.Lexicon
	threshold    float64
	limit        int
	requestCount int
	in           io.Reader
	out          *log.Logger
}

// NewInputHandler handles initialization of the InputHandler. lex may be nil.
func NewInputHandler(lex *lexicon.Lexicon, threshold float64, limit int, in io.Reader, out io.Writer) *InputHandler {
	return &InputHandler{
		lexicon:   lex,
		threshold: threshold,
		limit:     limit,
		in:        in,
		out:       logger.NewWithConfig(out, "", log.InfoLevel, false, false, log.TextFormatter),
	}
}

// Start begins the interface loop and returns nil when the input ends.
func (h *InputHandler) Start() error {
	h.out.Print("trigram CLI")
	h.out.Print("enter 'a | b', 'find needle | haystack' or a word (Ctrl+D to exit):")

	scanner := bufio.NewScanner(h.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
	return scanner.Err()
}

// handleInput dispatches a single line.
func (h *InputHandler) handleInput(line string) {
	h.requestCount++
	start := time.Now()

	switch {
	case strings.HasPrefix(line, findCommand) && strings.Contains(line, "|"):
		needle, haystack := splitPair(strings.TrimPrefix(line, findCommand))
		h.find(needle, haystack)
	case strings.Contains(line, "|"):
		a, b := splitPair(line)
		h.out.Printf("similarity(%q, %q) = %s", a, b, utils.FormatScore(trigram.Similarity(a, b)))
	default:
		h.lookup(line)
	}

	log.Debugf("Took [ %v ] for request #%d", time.Since(start), h.requestCount)
}

func (h *InputHandler) find(needle, haystack string) {
	matches := trigram.FindWords(needle, haystack, h.threshold).Collect()
	if len(matches) == 0 {
		h.out.Printf("No words in haystack match %q", needle)
		return
	}
	h.out.Printf("Found %d matches for %q:", len(matches), needle)
	for i, m := range matches {
		h.out.Printf("%2d. %-24s [%d:%d] (score: %s)", i+1, m.Text(), m.Start(), m.End(),
			utils.FormatScore(trigram.Similarity(needle, m.Text())))
	}
}

func (h *InputHandler) lookup(needle string) {
	if h.lexicon == nil {
		h.out.Print("No lexicon loaded; use 'a | b' or 'find needle | haystack'")
		return
	}
	hits := h.lexicon.Lookup(needle, h.threshold, h.limit)
	if len(hits) == 0 {
		h.out.Printf("No lexicon words match %q", needle)
		return
	}
	h.out.Printf("Found %d words for %q:", len(hits), needle)
	for i, hit := range hits {
		h.out.Printf("%2d. %-24s (score: %s, freq: %d)", i+1, hit.Word, utils.FormatScore(hit.Score), hit.Freq)
	}
}

func splitPair(s string) (string, string) {
	a, b, _ := strings.Cut(s, "|")
	return strings.TrimSpace(a), strings.TrimSpace(b)
}
