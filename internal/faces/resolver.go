package faces

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ramonehamilton/topcards/internal/rank"
	"github.com/ramonehamilton/topcards/internal/scryfall"
)

// linkedLayouts are the layouts whose first two faces are indexed.
var linkedLayouts = map[string]bool{
	scryfall.LayoutTransform:      true,
	scryfall.LayoutModalDFC:       true,
	scryfall.LayoutSplit:          true,
	scryfall.LayoutFlip:           true,
	scryfall.LayoutAdventure:      true,
	scryfall.LayoutReversibleCard: true,
}

// ErrCacheWrite reports a snapshot that was downloaded but could not be stored.
var ErrCacheWrite = errors.New("write face cache")

// Index maps a front face name to its back face name. A nil Index is empty.
type Index struct {
	back map[string]string
}

// NewIndex builds an index from snapshot entries.
func NewIndex(entries []Entry) *Index {
	ix := &Index{back: make(map[string]string)}
	for _, e := range entries {
		if !linkedLayouts[e.Layout] || len(e.Faces) < 2 {
			continue
		}
		ix.back[e.Faces[0]] = e.Faces[1]
	}
	return ix
}

// Len returns the number of indexed cards.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.back)
}

// BackFace returns the back face linked to front.
func (ix *Index) BackFace(front string) (string, bool) {
	if ix == nil {
		return "", false
	}
	back, ok := ix.back[front]
	return back, ok
}

// Expand inserts each ranked card's back face right after it, with the same
// weight as the front face.
func (ix *Index) Expand(ranked []rank.CardWeight) []rank.CardWeight {
	if ix.Len() == 0 {
		return ranked
	}

	out := make([]rank.CardWeight, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c)
		if back, ok := ix.BackFace(c.Name); ok {
			out = append(out, rank.CardWeight{Name: back, Weight: c.Weight})
		}
	}
	return out
}

// Config configures a Resolver.
type Config struct {
	Store  Store
	Source Source

	// MaxAge is the freshness window. Defaults to DefaultMaxAge.
	MaxAge time.Duration

	// Now is the clock. Defaults to time.Now.
	Now    func() time.Time
	Logger *slog.Logger
}

// Resolver serves the face index, refreshing the cache when it is not fresh.
type Resolver struct {
	store  Store
	source Source
	maxAge time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// NewResolver creates a resolver.
func NewResolver(config Config) (*Resolver, error) {
	if config.Store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if config.Source == nil {
		return nil, fmt.Errorf("source is required")
	}
	if config.MaxAge == 0 {
		config.MaxAge = DefaultMaxAge
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Resolver{
		store:  config.Store,
		source: config.Source,
		maxAge: config.MaxAge,
		now:    config.Now,
		logger: config.Logger,
	}, nil
}

// State checks the freshness of the cache.
func (r *Resolver) State() State {
	modTime, exists, err := r.store.ModTime()
	if err != nil {
		r.logger.Warn("Cannot stat face cache", "error", err)
		return StateMissing
	}
	return Classify(modTime, exists, r.now(), r.maxAge)
}

// Refresh downloads a new snapshot and replaces the cache with it. When only
// the cache write fails, the downloaded entries are returned with an error
// wrapping ErrCacheWrite.
func (r *Resolver) Refresh(ctx context.Context) ([]Entry, error) {
	r.logger.Info("Downloading card face metadata")

	entries, err := r.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch face metadata: %w", err)
	}
	if err := r.store.Replace(entries); err != nil {
		return entries, fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}

	r.logger.Info("Face cache updated", "cards", len(entries))
	return entries, nil
}

// Index returns the face index. It never fails: when the cache cannot be
// refreshed a stale snapshot is used, and with no snapshot at all the index
// is empty.
func (r *Resolver) Index(ctx context.Context) *Index {
	state := r.State()

	if state == StateFresh {
		entries, err := r.store.Load()
		if err == nil {
			return NewIndex(entries)
		}
		r.logger.Warn("Face cache unreadable, refreshing", "error", err)
		state = StateMissing
	}

	fetched, refreshErr := r.Refresh(ctx)
	if errors.Is(refreshErr, ErrCacheWrite) {
		r.logger.Warn("Using downloaded face metadata without caching it", "error", refreshErr)
		return NewIndex(fetched)
	}

	switch Next(state, refreshErr == nil) {
	case ActionUseFetched:
		return NewIndex(fetched)

	case ActionUseStale:
		r.logger.Warn("Using stale face cache", "error", refreshErr)
		entries, err := r.store.Load()
		if err != nil {
			r.logger.Warn("Stale face cache unreadable, faces will not be expanded", "error", err)
			return NewIndex(nil)
		}
		return NewIndex(entries)

	default:
		r.logger.Warn("No face cache available, faces will not be expanded", "error", refreshErr)
		return NewIndex(nil)
	}
}
