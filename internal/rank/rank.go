// Package rank aggregates recency-weighted card counts across the corpus.
package rank

import (
	"log/slog"
	"sort"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

// Options configures a ranking run.
type Options struct {
	Formats  []string
	Today    int     // day counter, see corpus.TodayDays
	HalfLife float64 // days
	MaxAge   int     // days
	Weighted bool
	TopN     int // 0 keeps every card
	Workers  int // 0 uses one worker per CPU
	Logger   *slog.Logger
}

// CardWeight is one ranked card.
type CardWeight struct {
	Name   string
	Weight float64
}

// Expander adds linked card names to a ranked list.
type Expander interface {
	Expand(ranked []CardWeight) []CardWeight
}

// Weights maps a card name, exactly as declared, to its accumulated weight.
type Weights map[string]float64

// Add accumulates count copies at the given weight.
func (w Weights) Add(name string, count int, weight float64) {
	w[name] += float64(count) * weight
}

// Merge folds other into w: the union of keys, summing shared ones.
func (w Weights) Merge(other Weights) {
	for name, weight := range other {
		w[name] += weight
	}
}

// Tally returns the contribution of one record: every mainboard and
// sideboard entry of every deck, scaled by weight.
func Tally(rec *corpus.Record, weight float64) Weights {
	w := make(Weights)
	for _, deck := range rec.Decks {
		for _, c := range deck.Mainboard {
			w.Add(c.Name, c.Count, weight)
		}
		for _, c := range deck.Sideboard {
			w.Add(c.Name, c.Count, weight)
		}
	}
	return w
}

// Sorted returns the entries by descending weight, truncated to n when n > 0.
// Order among equal weights is unspecified.
func (w Weights) Sorted(n int) []CardWeight {
	ranked := make([]CardWeight, 0, len(w))
	for name, weight := range w {
		ranked = append(ranked, CardWeight{Name: name, Weight: weight})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Aggregate scans paths in parallel and returns the merged weight map.
func Aggregate(paths []string, opts Options) (Weights, corpus.ScanStats) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	sel := corpus.Selector{
		Formats: opts.Formats,
		Today:   opts.Today,
		Decay: corpus.Decay{
			HalfLife: opts.HalfLife,
			MaxAge:   opts.MaxAge,
			Weighted: opts.Weighted,
		},
	}

	type partial struct {
		path    string
		weights Weights
		err     error
	}

	total := make(Weights)
	var stats corpus.ScanStats

	corpus.Scan(paths, opts.Workers,
		func(path string) partial {
			entry, err := sel.Open(path)
			if err != nil {
				return partial{path: path, err: err}
			}
			return partial{path: path, weights: Tally(entry.Record, entry.Weight)}
		},
		func(p partial) {
			stats.Record(p.err)
			if p.err != nil {
				logger.Debug("Skipping record", "path", p.path, "reason", p.err)
				return
			}
			total.Merge(p.weights)
		},
	)

	return total, stats
}

// Rank aggregates paths, ranks cards by weight and keeps the top opts.TopN.
// When expander is non-nil the truncated list is passed through it.
func Rank(paths []string, opts Options, expander Expander) ([]CardWeight, corpus.ScanStats) {
	total, stats := Aggregate(paths, opts)

	ranked := total.Sorted(opts.TopN)
	if expander != nil {
		ranked = expander.Expand(ranked)
	}

	return ranked, stats
}
