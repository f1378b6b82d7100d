// Command topcards ranks the most played Magic: The Gathering cards across a
// corpus of tournament decklists and searches it for decks.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
