package search

import (
	"log/slog"
	"sort"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

// Options configures a search run.
type Options struct {
	Formats          []string
	Today            int // day counter, see corpus.TodayDays
	MaxAge           int // days
	Exact            bool
	IncludeSideboard bool
	MaxResults       int // 0 keeps every match
	Workers          int
	Logger           *slog.Logger
}

// Match is a deck that satisfied every criterion, with its tournament context.
type Match struct {
	Path       string
	Date       string // YYYY-MM-DD from the storage path
	Format     string
	Tournament string
	Player     string
	Result     string
	URL        string
	Mainboard  []corpus.CardEntry
	Sideboard  []corpus.CardEntry
	Hits       []Hit
}

// MatchEntry returns the matching decks of one selected record, in deck order.
func MatchEntry(entry *corpus.Entry, criteria []Criterion, opts MatchOptions) []Match {
	var matches []Match
	for _, deck := range entry.Record.Decks {
		hits, ok := DeckMatches(deck, criteria, opts)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Path:       entry.Path,
			Date:       entry.Date.String(),
			Format:     entry.Record.Tournament.FormatName(),
			Tournament: entry.Record.Tournament.Name,
			Player:     deck.Player,
			Result:     deck.Result.String(),
			URL:        deck.URL,
			Mainboard:  deck.Mainboard,
			Sideboard:  deck.Sideboard,
			Hits:       hits,
		})
	}
	return matches
}

// SortByDate orders matches newest first. Matches from the same date keep a
// path order, and decks of one record keep their order in the record.
func SortByDate(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Date != matches[j].Date {
			return matches[i].Date > matches[j].Date
		}
		return matches[i].Path < matches[j].Path
	})
}

// Search scans paths in parallel and returns the decks matching every
// criterion, newest first, truncated to opts.MaxResults when positive.
func Search(paths []string, criteria []Criterion, opts Options) ([]Match, corpus.ScanStats) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sel := corpus.Selector{
		Formats: opts.Formats,
		Today:   opts.Today,
		Decay:   corpus.Decay{MaxAge: opts.MaxAge},
	}
	matchOpts := MatchOptions{Exact: opts.Exact, IncludeSideboard: opts.IncludeSideboard}

	type partial struct {
		path    string
		matches []Match
		err     error
	}

	var (
		all   []Match
		stats corpus.ScanStats
	)

	corpus.Scan(paths, opts.Workers,
		func(path string) partial {
			entry, err := sel.Open(path)
			if err != nil {
				return partial{path: path, err: err}
			}
			return partial{path: path, matches: MatchEntry(entry, criteria, matchOpts)}
		},
		func(p partial) {
			stats.Record(p.err)
			if p.err != nil {
				logger.Debug("Skipping record", "path", p.path, "reason", p.err)
				return
			}
			all = append(all, p.matches...)
		},
	)

	SortByDate(all)
	if opts.MaxResults > 0 && len(all) > opts.MaxResults {
		all = all[:opts.MaxResults]
	}

	return all, stats
}
