// Command findwords prints the words of a haystack that fuzzily match a
// needle, one per line with their byte offsets.
//
//	findwords [-t threshold] [needle haystack]
//
// Without arguments it searches the buffalo sentence for "buffalo".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bastiangx/trigram/pkg/trigram"
)

const (
	defaultNeedle   = "buffalo"
	defaultHaystack = "Did you know that bufalo buffalow Bungalo biffalo buffaloo huffalo snuffalo fluffalo?"
)

func main() {
	threshold := flag.Float64("t", 0.3, "Similarity threshold a word must exceed")
	flag.Parse()

	needle, haystack := defaultNeedle, defaultHaystack
	switch flag.NArg() {
	case 0:
	case 2:
		needle, haystack = flag.Arg(0), flag.Arg(1)
	default:
		fmt.Fprintln(os.Stderr, "usage: findwords [-t threshold] [needle haystack]")
		os.Exit(1)
	}

	for m := range trigram.FindWords(needle, haystack, *threshold).All() {
		fmt.Printf("%d\t%d\t%s\n", m.Start(), m.End(), m.Text())
	}
}
