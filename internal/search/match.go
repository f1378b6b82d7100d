package search

import (
	"strings"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

// Hit is what one criterion found in a matching deck. FoundMain and FoundSide
// are always both reported, even when the sideboard did not count toward the
// match.
type Hit struct {
	Name      string
	Required  *int
	FoundMain int
	FoundSide int
}

// MatchOptions controls how counts are compared.
type MatchOptions struct {
	// Exact requires found == required instead of found >= required.
	Exact bool

	// IncludeSideboard adds sideboard copies to the found count.
	IncludeSideboard bool
}

// boardCounts sums copies per lower-cased card name.
func boardCounts(board []corpus.CardEntry) map[string]int {
	counts := make(map[string]int, len(board))
	for _, c := range board {
		counts[strings.ToLower(c.Name)] += c.Count
	}
	return counts
}

// Satisfied reports whether found copies meet the criterion.
func (c Criterion) Satisfied(found int, exact bool) bool {
	switch {
	case c.Count == nil:
		return found > 0
	case exact:
		return found == *c.Count
	default:
		return found >= *c.Count
	}
}

// DeckMatches evaluates every criterion against deck. All criteria must hold;
// the first one that fails rejects the deck.
func DeckMatches(deck corpus.Deck, criteria []Criterion, opts MatchOptions) ([]Hit, bool) {
	main := boardCounts(deck.Mainboard)
	side := boardCounts(deck.Sideboard)

	hits := make([]Hit, 0, len(criteria))
	for _, c := range criteria {
		key := strings.ToLower(c.Name)
		foundMain := main[key]
		foundSide := side[key]

		found := foundMain
		if opts.IncludeSideboard {
			found += foundSide
		}
		if !c.Satisfied(found, opts.Exact) {
			return nil, false
		}

		hits = append(hits, Hit{
			Name:      c.Name,
			Required:  c.Count,
			FoundMain: foundMain,
			FoundSide: foundSide,
		})
	}

	return hits, true
}
