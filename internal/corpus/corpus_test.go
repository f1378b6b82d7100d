package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Date
		ok   bool
	}{
		{"plain", "data/mtgo.com/2024/03/17/modern-challenge.json", Date{2024, 3, 17}, true},
		{"first segment wins", "/2023/01/02/nested/2024/05/06/x.json", Date{2023, 1, 2}, true},
		{"no validation", "cache/2024/13/40/x.json", Date{2024, 13, 40}, true},
		{"no segment", "cache/2024-03-17/x.json", Date{}, false},
		{"missing trailing slash", "cache/2024/03/17.json", Date{}, false},
		{"relative root", "2024/03/17/x.json", Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DateFromPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDateString(t *testing.T) {
	assert.Equal(t, "2024-03-07", Date{2024, 3, 7}.String())
	assert.Less(t, Date{2023, 12, 31}.String(), Date{2024, 1, 1}.String())
}

func TestDaysSinceEpoch(t *testing.T) {
	assert.Equal(t, 1, DaysSinceEpoch(1970, 1, 1))
	// 30-day months regardless of calendar.
	assert.Equal(t, 30, DaysSinceEpoch(1970, 2, 1)-DaysSinceEpoch(1970, 1, 1))
	// Leap correction every four years.
	assert.Equal(t, 366, DaysSinceEpoch(1973, 1, 1)-DaysSinceEpoch(1972, 1, 1))
	assert.Equal(t, 365, DaysSinceEpoch(1972, 1, 1)-DaysSinceEpoch(1971, 1, 1))
}

func TestTodayDays(t *testing.T) {
	now := time.Date(1970, 1, 3, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, TodayDays(now))
}

func TestDecayWeight(t *testing.T) {
	d := Decay{HalfLife: 45, MaxAge: 1825, Weighted: true}

	assert.Equal(t, 1.0, d.Weight(0))
	assert.InDelta(t, 0.5, d.Weight(45), 1e-12)
	assert.InDelta(t, 0.25, d.Weight(90), 1e-12)

	prev := d.Weight(0)
	for age := 1; age < 400; age++ {
		w := d.Weight(age)
		assert.Less(t, w, prev, "weight must decrease at age %d", age)
		assert.Greater(t, w, 0.0)
		prev = w
	}
}

func TestDecayUnweighted(t *testing.T) {
	d := Decay{HalfLife: 45, MaxAge: 100}
	for _, age := range []int{0, 1, 45, 100} {
		assert.Equal(t, 1.0, d.Weight(age))
		assert.False(t, d.TooOld(age))
	}
	assert.True(t, d.TooOld(101))
}

func TestMatchesFormat(t *testing.T) {
	assert.True(t, MatchesFormat("Modern", []string{"modern"}))
	assert.True(t, MatchesFormat("Modern", []string{"mod"}))
	assert.True(t, MatchesFormat("Modern League", []string{"Modern"}))
	assert.True(t, MatchesFormat("Modern", []string{"pioneer", "MODERN"}))
	assert.False(t, MatchesFormat("Modern", []string{"pioneer"}))
	assert.False(t, MatchesFormat("Modern", nil))
}

func TestParseFormats(t *testing.T) {
	assert.Equal(t, []string{"Standard", "Modern", "Pioneer"}, ParseFormats(" Standard, Modern ,,Pioneer"))
	assert.Nil(t, ParseFormats(""))
}

func TestDecodeRecord(t *testing.T) {
	data := []byte(`{
		"tournament": {"format": "Modern", "name": "Modern Challenge", "date": "2024-03-17"},
		"decks": [
			{"player": "alice", "result": "5-0", "url": "https://example.com/a",
			 "mainboard": [{"count": 4, "name": "Lightning Bolt"}],
			 "sideboard": [{"count": 2, "name": "Blood Moon"}]},
			{"player": "bob", "result": 3, "anchor_uri": "https://example.com/b"},
			{"player": "carol", "result": null}
		]
	}`)

	rec, err := DecodeRecord(data)
	require.NoError(t, err)

	assert.Equal(t, "Modern", rec.Tournament.FormatName())
	assert.Equal(t, "Modern Challenge", rec.Tournament.Name)
	require.Len(t, rec.Decks, 3)

	alice := rec.Decks[0]
	assert.Equal(t, "5-0", alice.Result.String())
	assert.False(t, alice.Result.Numeric)
	assert.Equal(t, "https://example.com/a", alice.URL)
	assert.Equal(t, []CardEntry{{Count: 4, Name: "Lightning Bolt"}}, alice.Mainboard)
	assert.Equal(t, []CardEntry{{Count: 2, Name: "Blood Moon"}}, alice.Sideboard)

	bob := rec.Decks[1]
	assert.Equal(t, "3", bob.Result.String())
	assert.True(t, bob.Result.Numeric)
	assert.Equal(t, "https://example.com/b", bob.URL)
	assert.Empty(t, bob.Mainboard)

	assert.Equal(t, "", rec.Decks[2].Result.String())
}

func TestDecodeDeckURLAlias(t *testing.T) {
	tests := []struct {
		name string
		deck string
		url  string
	}{
		{"url", `{"url": "https://example.com/u"}`, "https://example.com/u"},
		{"anchor_uri", `{"anchor_uri": "https://example.com/a"}`, "https://example.com/a"},
		{"url wins", `{"url": "https://example.com/u", "anchor_uri": "https://example.com/a"}`, "https://example.com/u"},
		{"neither", `{"player": "dave"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := DecodeRecord([]byte(`{"tournament": {"format": "Modern"}, "decks": [` + tt.deck + `]}`))
			require.NoError(t, err)
			require.Len(t, rec.Decks, 1)
			assert.Equal(t, tt.url, rec.Decks[0].URL)
		})
	}
}

func TestDecodeDeckKeepsBoardsAndResult(t *testing.T) {
	rec, err := DecodeRecord([]byte(`{"tournament": {"format": "Modern"}, "decks": [
		{"player": "erin", "result": 7, "anchor_uri": "https://example.com/e",
		 "mainboard": [{"count": 4, "name": "Lightning Bolt"}],
		 "sideboard": [{"count": 1, "name": "Blood Moon"}]}
	]}`))
	require.NoError(t, err)
	require.Len(t, rec.Decks, 1)

	deck := rec.Decks[0]
	assert.Equal(t, "erin", deck.Player)
	assert.Equal(t, Result{Text: "7", Numeric: true}, deck.Result)
	assert.Equal(t, "https://example.com/e", deck.URL)
	assert.Equal(t, []CardEntry{{Count: 4, Name: "Lightning Bolt"}}, deck.Mainboard)
	assert.Equal(t, []CardEntry{{Count: 1, Name: "Blood Moon"}}, deck.Sideboard)
}

func TestDecodeRecordMalformed(t *testing.T) {
	for name, data := range map[string]string{
		"not json":       `{"tournament":`,
		"wrong shape":    `{"tournament": "Modern"}`,
		"negative count": `{"tournament": {"format": "Modern"}, "decks": [{"mainboard": [{"count": -1, "name": "X"}]}]}`,
		"bad result":     `{"tournament": {"format": "Modern"}, "decks": [{"result": [1]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRecord([]byte(data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestParseRecord(t *testing.T) {
	_, err := ParseRecord([]byte(`{"tournament": {"name": "x"}}`), []string{"modern"})
	assert.ErrorIs(t, err, ErrNoFormat)

	_, err = ParseRecord([]byte(`{"tournament": {"format": "Pioneer"}}`), []string{"modern"})
	assert.ErrorIs(t, err, ErrFormatMismatch)

	rec, err := ParseRecord([]byte(`{"tournament": {"format": "Modern"}}`), []string{"modern"})
	require.NoError(t, err)
	assert.Empty(t, rec.Decks)
}

func writeRecord(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSelectorOpen(t *testing.T) {
	root := t.TempDir()
	today := DaysSinceEpoch(2024, 6, 1)
	sel := Selector{
		Formats: []string{"modern"},
		Today:   today,
		Decay:   Decay{HalfLife: 30, MaxAge: 60, Weighted: true},
	}

	fresh := writeRecord(t, root, "2024/05/01/a.json", `{"tournament": {"format": "Modern"}}`)
	entry, err := sel.Open(fresh)
	require.NoError(t, err)
	assert.Equal(t, 30, entry.Age)
	assert.InDelta(t, 0.5, entry.Weight, 1e-12)
	assert.Equal(t, Date{2024, 5, 1}, entry.Date)

	_, err = sel.Open(writeRecord(t, root, "undated/a.json", `{"tournament": {"format": "Modern"}}`))
	assert.ErrorIs(t, err, ErrNoDate)

	_, err = sel.Open(writeRecord(t, root, "2024/06/01/p.json", `{"tournament": {"format": "Pioneer"}}`))
	assert.ErrorIs(t, err, ErrFormatMismatch)

	_, err = sel.Open(filepath.Join(root, "2024/06/01/missing.json"))
	assert.Error(t, err)
}

func TestSelectorSkipsOldFilesWithoutReading(t *testing.T) {
	var reads int32
	sel := Selector{
		Formats: []string{"modern"},
		Today:   DaysSinceEpoch(2024, 6, 1),
		Decay:   Decay{MaxAge: 10},
		ReadFile: func(string) ([]byte, error) {
			atomic.AddInt32(&reads, 1)
			return []byte(`{"tournament": {"format": "Modern"}}`), nil
		},
	}

	_, err := sel.Open("/cache/2023/01/01/old.json")
	assert.ErrorIs(t, err, ErrTooOld)
	assert.Equal(t, int32(0), atomic.LoadInt32(&reads))
}

func TestScanStats(t *testing.T) {
	var s ScanStats
	s.Record(nil)
	s.Record(ErrNoDate)
	s.Record(ErrTooOld)
	s.Record(ErrFormatMismatch)
	s.Record(errors.New("permission denied"))

	assert.Equal(t, 5, s.Files)
	assert.Equal(t, 1, s.Used)
	assert.Equal(t, 4, s.Skipped())
	assert.Equal(t, 1, s.Unreadable)
	assert.Contains(t, s.String(), "too_old=1")
}

func TestScanVisitsEveryPath(t *testing.T) {
	paths := make([]string, 200)
	for i := range paths {
		paths[i] = filepath.Join("p", string(rune('a'+i%26)))
	}

	total := 0
	Scan(paths, 8, func(string) int { return 1 }, func(n int) { total += n })
	assert.Equal(t, len(paths), total)

	Scan(nil, 8, func(string) int { return 1 }, func(int) { t.Fatal("collect called for empty input") })
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, 3, Workers(3, 10))
	assert.Equal(t, 2, Workers(8, 2))
	assert.Equal(t, 1, Workers(0, 0))
	assert.GreaterOrEqual(t, Workers(0, 1000), 1)
}

func TestFindRecordFiles(t *testing.T) {
	root := t.TempDir()
	a := writeRecord(t, root, "2024/01/01/a.json", "{}")
	b := writeRecord(t, root, "2024/01/02/b.JSON", "{}")
	writeRecord(t, root, "2024/01/02/readme.md", "")

	files, err := FindRecordFiles(root)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, files)

	_, err = FindRecordFiles(filepath.Join(root, "nope"))
	assert.Error(t, err)
}
