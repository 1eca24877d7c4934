// Package store holds the record collection core shared by the todo and
// contact flavors: an ordered in-memory collection, serialized to one storage
// key as a whole, newest record first.
package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/maiwenn-k/jot/internal/storage"
)

// Record is the constraint every stored record kind satisfies.
type Record interface {
	RecordID() int64
	SearchText() string
	// Valid is the structural shape check applied per entry during hydration.
	Valid() bool
}

// Store owns the authoritative in-memory collection for one storage key.
// The flavors validate payloads before calling into it; Store itself only
// guarantees ordering, id uniqueness of its inserts, and persistence.
type Store[R Record] struct {
	kv     storage.KV
	key    string
	now    func() time.Time
	nextID func() int64
	log    *slog.Logger

	records []R
}

// Options inject the clock and id source so tests run deterministic.
// Zero-value fields fall back to wall clock and a clock-seeded counter.
type Options struct {
	Now    func() time.Time
	NextID func() int64
	Logger *slog.Logger
}

// New constructs an empty store bound to key. Call Hydrate to load persisted
// state.
func New[R Record](kv storage.KV, key string, opt Options) *Store[R] {
	if opt.Now == nil {
		opt.Now = time.Now
	}
	if opt.NextID == nil {
		opt.NextID = DefaultIDSource()
	}
	if opt.Logger == nil {
		opt.Logger = slog.Default()
	}
	return &Store[R]{
		kv:     kv,
		key:    key,
		now:    opt.Now,
		nextID: opt.NextID,
		log:    opt.Logger.With("component", "store", "key", key),
	}
}

// DefaultIDSource returns a generator of unique int64 ids. Seeded from the
// wall clock so ids stay meaningful across runs, incremented atomically so
// rapid successive creations never collide.
func DefaultIDSource() func() int64 {
	var last atomic.Int64
	last.Store(time.Now().UnixMilli())
	return func() int64 {
		return last.Add(1)
	}
}

// Now returns the injected clock's current time.
func (s *Store[R]) Now() time.Time { return s.now() }

// NextID returns a fresh unique record id.
func (s *Store[R]) NextID() int64 { return s.nextID() }

// Hydrate loads the persisted blob. A missing key yields an empty collection.
// Entries failing the shape check are dropped and the rest kept; a blob that
// cannot be decoded at all resets to empty and reports a PersistenceError.
// Stored order is preserved verbatim (the collection is maintained
// newest-first by Insert, so a round trip keeps that order).
func (s *Store[R]) Hydrate() error {
	s.records = nil
	b, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		s.log.Error("hydrate failed", "error", err)
		return &PersistenceError{Op: "load", Err: err}
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		s.log.Error("stored blob is corrupt, starting empty", "error", err)
		return &PersistenceError{Op: "load", Err: err}
	}
	dropped := 0
	for _, entry := range raw {
		var r R
		if err := json.Unmarshal(entry, &r); err != nil || !r.Valid() {
			dropped++
			continue
		}
		s.records = append(s.records, r)
	}
	if dropped > 0 {
		s.log.Warn("dropped malformed entries during hydration", "dropped", dropped, "kept", len(s.records))
	}
	return nil
}

// Persist serializes the whole collection to the storage key. On failure the
// in-memory state stays authoritative and a PersistenceError is returned.
func (s *Store[R]) Persist() error {
	b, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := s.kv.Set(s.key, b); err != nil {
		s.log.Error("persist failed", "error", err)
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// Insert prepends r (most-recent-first) and persists.
func (s *Store[R]) Insert(r R) error {
	s.records = append([]R{r}, s.records...)
	s.log.Debug("record inserted", "id", r.RecordID())
	return s.Persist()
}

// Find returns the record with the given id.
func (s *Store[R]) Find(id int64) (R, bool) {
	for _, r := range s.records {
		if r.RecordID() == id {
			return r, true
		}
	}
	var zero R
	return zero, false
}

// Replace swaps the record with r's id for r and persists. No-op (nil) when
// the id is absent.
func (s *Store[R]) Replace(r R) error {
	for i := range s.records {
		if s.records[i].RecordID() == r.RecordID() {
			s.records[i] = r
			return s.Persist()
		}
	}
	return nil
}

// Remove deletes the record with the given id and persists. No-op (nil) when
// the id is absent.
func (s *Store[R]) Remove(id int64) error {
	for i, r := range s.records {
		if r.RecordID() == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.log.Debug("record removed", "id", id)
			return s.Persist()
		}
	}
	return nil
}

// All returns a copy of the collection in order.
func (s *Store[R]) All() []R {
	out := make([]R, len(s.records))
	copy(out, s.records)
	return out
}

// Search returns the records whose search text contains term
// case-insensitively, in collection order. An empty term passes everything.
func (s *Store[R]) Search(term string) []R {
	if term == "" {
		return s.All()
	}
	term = strings.ToLower(term)
	out := make([]R, 0, len(s.records))
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.SearchText()), term) {
			out = append(out, r)
		}
	}
	return out
}

// Len reports the collection size.
func (s *Store[R]) Len() int { return len(s.records) }
