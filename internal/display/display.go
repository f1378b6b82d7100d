// Package display renders rankings and deck matches as plain text.
package display

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ramonehamilton/topcards/internal/corpus"
	"github.com/ramonehamilton/topcards/internal/rank"
	"github.com/ramonehamilton/topcards/internal/search"
)

// WriteRanking writes one "<weight> <name>" line per card, weight with two
// decimals.
func WriteRanking(w io.Writer, ranked []rank.CardWeight) error {
	bw := bufio.NewWriter(w)
	for _, c := range ranked {
		if _, err := fmt.Fprintf(bw, "%.2f %s\n", c.Weight, c.Name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteMatches writes each match as a header, the per-criterion counts and
// both boards.
func WriteMatches(w io.Writer, matches []search.Match) error {
	bw := bufio.NewWriter(w)

	if len(matches) == 0 {
		fmt.Fprintln(bw, "No matching decks found.")
		return bw.Flush()
	}

	for i, m := range matches {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s  %s  %s\n", m.Date, m.Format, orDash(m.Tournament))
		fmt.Fprintf(bw, "  Player: %s  Result: %s\n", orDash(m.Player), orDash(m.Result))
		if m.URL != "" {
			fmt.Fprintf(bw, "  URL: %s\n", m.URL)
		}
		for _, h := range m.Hits {
			fmt.Fprintf(bw, "  %s\n", FormatHit(h))
		}
		writeBoard(bw, "Mainboard", m.Mainboard)
		writeBoard(bw, "Sideboard", m.Sideboard)
	}

	return bw.Flush()
}

// FormatHit renders a criterion result, e.g. "Lightning Bolt (want 4): main 4, side 0".
func FormatHit(h search.Hit) string {
	want := "any"
	if h.Required != nil {
		want = strconv.Itoa(*h.Required)
	}
	return fmt.Sprintf("%s (want %s): main %d, side %d", h.Name, want, h.FoundMain, h.FoundSide)
}

func writeBoard(w io.Writer, title string, board []corpus.CardEntry) {
	if len(board) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, c := range board {
		fmt.Fprintf(w, "    %d %s\n", c.Count, c.Name)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
