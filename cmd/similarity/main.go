// Command similarity prints the trigram similarity of two strings.
//
//	similarity "dancing bear" "dancing boar"
//	0.625
package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/trigram/pkg/trigram"
)

func main() {
	if len(os.Args) != 1+2 {
		fmt.Fprintln(os.Stderr, "usage: similarity string1 string2")
		os.Exit(1)
	}
	fmt.Println(trigram.Similarity(os.Args[1], os.Args[2]))
}
