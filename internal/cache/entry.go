package cache

import (
	"context"
	"time"
)

// State is the lifecycle state of a cache entry.
type State int

const (
	Idle State = iota
	Loading
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	}
	return "unknown"
}

// FetchFunc loads the value for a key. The store runs it off the caller's
// goroutine for background refetches; transport timeouts are the HTTP
// adapter's concern.
type FetchFunc func(ctx context.Context) (any, error)

// Snapshot is the externally visible state of an entry. During a
// background refetch the previous Data stays exposed; Background marks
// that case apart from an initial load with nothing to show.
type Snapshot struct {
	Key        Key
	State      State
	Data       any
	Err        error
	Stale      bool
	Background bool
	FetchedAt  time.Time
}

// HasData distinguishes "empty result" (success with zero items) from
// "no data yet".
func (s Snapshot) HasData() bool {
	return s.State == Success || (s.Data != nil && s.State != Idle)
}

type entry struct {
	key       Key
	state     State
	data      any
	hasData   bool
	err       error
	fetchedAt time.Time
	stale     bool

	// fetchFn is the most recent fetcher for this key, kept so an
	// invalidation-triggered refetch can reuse it.
	fetchFn FetchFunc

	// issuedSeq numbers fetches in issue order. inflightSeq is the
	// sequence of the newest in-flight fetch (0 when none); a completion
	// whose sequence no longer matches is superseded and discarded, so
	// an older response can never overwrite a newer request's result.
	issuedSeq   uint64
	inflightSeq uint64

	// invalidSeq is bumped to issuedSeq on invalidation: a response from
	// a fetch issued at or before it still applies, but stays stale.
	invalidSeq uint64

	// done is closed when the current in-flight fetch settles; callers
	// with nothing to show wait on it.
	done chan struct{}

	subscribers map[int]func(Snapshot)
	nextSubID   int
	lastActive  time.Time
}

func (e *entry) snapshot() Snapshot {
	state := e.state
	background := false
	if e.inflightSeq != 0 {
		if e.hasData {
			background = true
		} else {
			state = Loading
		}
	}
	return Snapshot{
		Key:        e.key,
		State:      state,
		Data:       e.data,
		Err:        e.err,
		Stale:      e.stale,
		Background: background,
		FetchedAt:  e.fetchedAt,
	}
}
