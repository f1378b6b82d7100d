package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/topcards/internal/corpus"
	"github.com/ramonehamilton/topcards/internal/rank"
	"github.com/ramonehamilton/topcards/internal/search"
)

func TestWriteRanking(t *testing.T) {
	var buf bytes.Buffer
	err := WriteRanking(&buf, []rank.CardWeight{
		{Name: "Lightning Bolt", Weight: 5},
		{Name: "Counterspell", Weight: 1.23456},
	})
	require.NoError(t, err)
	assert.Equal(t, "5.00 Lightning Bolt\n1.23 Counterspell\n", buf.String())
}

func TestWriteMatches(t *testing.T) {
	four := 4
	var buf bytes.Buffer
	err := WriteMatches(&buf, []search.Match{{
		Date:       "2024-06-19",
		Format:     "Modern",
		Tournament: "Modern Challenge",
		Player:     "alice",
		Result:     "5-0",
		URL:        "https://example.com/a",
		Mainboard:  []corpus.CardEntry{{Count: 4, Name: "Lightning Bolt"}},
		Sideboard:  []corpus.CardEntry{{Count: 2, Name: "Blood Moon"}},
		Hits: []search.Hit{
			{Name: "Lightning Bolt", Required: &four, FoundMain: 4},
			{Name: "Blood Moon", FoundSide: 2},
		},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "2024-06-19  Modern  Modern Challenge\n")
	assert.Contains(t, out, "Player: alice  Result: 5-0")
	assert.Contains(t, out, "Lightning Bolt (want 4): main 4, side 0")
	assert.Contains(t, out, "Blood Moon (want any): main 0, side 2")
	assert.Contains(t, out, "  Sideboard:\n    2 Blood Moon\n")
}

func TestWriteMatchesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMatches(&buf, nil))
	assert.Equal(t, "No matching decks found.\n", buf.String())
}
