// Package faces links the front face of a multi-faced card to its back face
// using a locally cached snapshot of Scryfall bulk data.
package faces

import "time"

// DefaultMaxAge is how long a cache snapshot stays fresh.
const DefaultMaxAge = 7 * 24 * time.Hour

// State is the freshness of the cache snapshot.
type State int

const (
	StateMissing State = iota // no snapshot on disk
	StateStale                // snapshot older than the freshness window
	StateFresh
)

func (s State) String() string {
	switch s {
	case StateMissing:
		return "Missing"
	case StateStale:
		return "Stale"
	case StateFresh:
		return "Fresh"
	default:
		return "Unknown"
	}
}

// NeedsRefresh reports whether a download should be attempted.
func (s State) NeedsRefresh() bool {
	return s != StateFresh
}

// Classify derives the state of a snapshot last written at modTime.
func Classify(modTime time.Time, exists bool, now time.Time, maxAge time.Duration) State {
	if !exists {
		return StateMissing
	}
	if now.Sub(modTime) > maxAge {
		return StateStale
	}
	return StateFresh
}

// Action is what the resolver serves after the freshness check.
type Action int

const (
	ActionUseCache   Action = iota // snapshot is fresh
	ActionUseFetched               // refresh succeeded
	ActionUseStale                 // refresh failed, stale snapshot served with a warning
	ActionUseEmpty                 // refresh failed and there is nothing to fall back to
)

func (a Action) String() string {
	switch a {
	case ActionUseCache:
		return "UseCache"
	case ActionUseFetched:
		return "UseFetched"
	case ActionUseStale:
		return "UseStale"
	case ActionUseEmpty:
		return "UseEmpty"
	default:
		return "Unknown"
	}
}

// Next is the transition from a freshness state and the outcome of the
// refresh attempt (ignored when fresh) to the action to take.
func Next(state State, refreshed bool) Action {
	switch {
	case state == StateFresh:
		return ActionUseCache
	case refreshed:
		return ActionUseFetched
	case state == StateStale:
		return ActionUseStale
	default:
		return ActionUseEmpty
	}
}
