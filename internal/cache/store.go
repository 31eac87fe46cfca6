// Package cache is the query-and-mutation cache between the views and
// the resource API modules. It deduplicates concurrent fetches for one
// key, serves stale data while revalidating in the background, retries a
// bounded number of times, and lets mutations mark dependent keys stale
// without purging them.
package cache

import (
	"context"
	"log"
	"sync"
	"time"

	"oficina-desk/internal/metrics"
)

const janitorInterval = time.Minute

// Store holds every cache entry. It is the only shared mutable resource
// in the client; views never touch entries directly.
type Store struct {
	mu      sync.Mutex
	entries map[Key]*entry

	freshFor time.Duration
	gcIdle   time.Duration
	retries  int

	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func New(freshFor, gcIdle time.Duration) *Store {
	s := &Store{
		entries:  make(map[Key]*entry),
		freshFor: freshFor,
		gcIdle:   gcIdle,
		retries:  1,
		stop:     make(chan struct{}),
		now:      time.Now,
	}
	go s.janitor()
	return s
}

// Stop shuts the janitor down.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Fetch returns the value for key. A fresh entry is served without a
// network call. A stale entry with data is served as-is while exactly one
// background refetch runs. With nothing usable cached, the caller blocks
// until the (possibly shared) fetch settles.
func (s *Store) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	for {
		s.mu.Lock()
		e := s.ensureEntry(key)
		e.lastActive = s.now()
		e.fetchFn = fn

		age := s.now().Sub(e.fetchedAt)
		settled := e.state == Success || e.state == Error
		fresh := settled && !e.stale && age < s.freshFor

		switch {
		case fresh && e.state == Success:
			metrics.CacheHitsTotal.Inc()
			data := e.data
			s.mu.Unlock()
			return data, nil

		case fresh && e.state == Error && e.inflightSeq == 0:
			// A settled failure is held for the freshness window too, so
			// a broken backend is not hammered on every render.
			err := e.err
			s.mu.Unlock()
			return nil, err

		case e.hasData:
			// Stale-while-revalidate: old data stays visible, one
			// background refetch runs.
			if e.inflightSeq == 0 {
				s.startFetch(e)
			} else if e.inflightSeq <= e.invalidSeq {
				// The in-flight fetch predates an invalidation; issue a
				// superseding one so its response cannot settle as fresh.
				s.startFetch(e)
			} else {
				metrics.CacheDedupJoinsTotal.Inc()
			}
			metrics.CacheStaleServesTotal.Inc()
			data := e.data
			s.mu.Unlock()
			return data, nil

		default:
			// Initial load (or a stale error with nothing to show):
			// join the in-flight fetch or start one, then wait.
			if e.inflightSeq == 0 {
				metrics.CacheMissesTotal.Inc()
				s.startFetch(e)
			} else {
				metrics.CacheDedupJoinsTotal.Inc()
			}
			done := e.done
			s.mu.Unlock()

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-done:
			}

			s.mu.Lock()
			if e.inflightSeq != 0 && !e.hasData {
				// The fetch we joined was superseded; wait for the newer one.
				s.mu.Unlock()
				continue
			}
			if e.state == Error {
				err := e.err
				s.mu.Unlock()
				return nil, err
			}
			data := e.data
			s.mu.Unlock()
			return data, nil
		}
	}
}

// Subscribe registers fn to run on every state transition of key and
// returns the corresponding unsubscribe function. Unsubscribing does not
// evict the entry; it merely becomes eligible for garbage collection
// after the idle period.
func (s *Store) Subscribe(key Key, fn func(Snapshot)) func() {
	s.mu.Lock()
	e := s.ensureEntry(key)
	e.lastActive = s.now()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		// The entry may have been evicted and recreated since; ids restart
		// per entry, so only touch the one this subscription was taken on.
		if cur, ok := s.entries[key]; ok && cur == e {
			delete(cur.subscribers, id)
			cur.lastActive = s.now()
		}
		s.mu.Unlock()
	}
}

// Invalidate marks the given keys stale. The data stays visible (no flash
// of empty state); the next access triggers a refetch, and any response
// from a fetch issued before this point settles stale as well.
func (s *Store) Invalidate(keys ...Key) {
	var notify []func()
	s.mu.Lock()
	for _, key := range keys {
		e, ok := s.entries[key]
		if !ok {
			continue
		}
		s.markStale(e, &notify)
	}
	s.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
}

// InvalidateResource marks every key with the given resource tag stale,
// whatever its parameters. Mutations use it for list keys, where the page
// and filter combinations are open-ended.
func (s *Store) InvalidateResource(resource string) {
	var notify []func()
	s.mu.Lock()
	for _, e := range s.entries {
		if e.key.Resource == resource {
			s.markStale(e, &notify)
		}
	}
	s.mu.Unlock()
	for _, fn := range notify {
		fn()
	}
}

// markStale requires s.mu held. Subscriber callbacks are collected and
// run after the lock is released.
func (s *Store) markStale(e *entry, notify *[]func()) {
	e.stale = true
	e.invalidSeq = e.issuedSeq
	snap := e.snapshot()
	for _, sub := range e.subscribers {
		sub := sub
		*notify = append(*notify, func() { sub(snap) })
	}
}

// Peek returns the current snapshot without triggering a fetch.
func (s *Store) Peek(key Key) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Stats summarizes the store for the diagnostics page.
type Stats struct {
	Entries int            `json:"entries"`
	ByState map[string]int `json:"by_state"`
}

func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := Stats{Entries: len(s.entries), ByState: make(map[string]int)}
	for _, e := range s.entries {
		stats.ByState[e.snapshot().State.String()]++
	}
	return stats
}

// ensureEntry requires s.mu held.
func (s *Store) ensureEntry(key Key) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{
			key:         key,
			state:       Idle,
			subscribers: make(map[int]func(Snapshot)),
			lastActive:  s.now(),
		}
		s.entries[key] = e
		metrics.CacheEntries.Set(float64(len(s.entries)))
	}
	return e
}

// startFetch requires s.mu held. At most one live fetch per key: a new
// one is only issued when none is in flight or the in-flight one has been
// invalidated out from under us.
func (s *Store) startFetch(e *entry) {
	e.issuedSeq++
	seq := e.issuedSeq
	e.inflightSeq = seq
	e.done = make(chan struct{})
	if !e.hasData {
		e.state = Loading
	}
	go s.runFetch(e, e.fetchFn, seq, e.done)
}

func (s *Store) runFetch(e *entry, fn FetchFunc, seq uint64, done chan struct{}) {
	var data any
	var err error
	for attempt := 0; attempt <= s.retries; attempt++ {
		data, err = fn(context.Background())
		if err == nil {
			break
		}
	}

	s.mu.Lock()
	if e.inflightSeq != seq {
		// Superseded by a newer fetch for this key; this response must
		// not overwrite the newer request's effect on shared state.
		s.mu.Unlock()
		close(done)
		return
	}
	e.inflightSeq = 0
	e.fetchedAt = s.now()
	if err != nil {
		e.state = Error
		e.err = err
		metrics.CacheFetchErrorsTotal.Inc()
		log.Printf("[Cache] fetch failed for %s: %v", e.key, err)
	} else {
		e.state = Success
		e.data = data
		e.hasData = true
		e.err = nil
	}
	// A response from before the newest invalidation settles stale.
	e.stale = seq <= e.invalidSeq

	snap := e.snapshot()
	subs := make([]func(Snapshot), 0, len(e.subscribers))
	for _, sub := range e.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	close(done)
	for _, sub := range subs {
		sub(snap)
	}
}

// janitor evicts entries nobody watches once they have been idle long
// enough. Cached values stay available for quick reuse until then.
func (s *Store) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.collect()
		}
	}
}

func (s *Store) collect() {
	cutoff := s.now().Add(-s.gcIdle)
	s.mu.Lock()
	for key, e := range s.entries {
		if len(e.subscribers) == 0 && e.inflightSeq == 0 && e.lastActive.Before(cutoff) {
			delete(s.entries, key)
		}
	}
	metrics.CacheEntries.Set(float64(len(s.entries)))
	s.mu.Unlock()
}
