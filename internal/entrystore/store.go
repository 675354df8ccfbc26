// Package entrystore holds the authoritative, ordered collection of entries.
//
// The Store is the only mutation surface. Every successful mutation is
// followed by a whole-collection snapshot write to the configured Slot
// (when there is one) and a notification to registered listeners.
// Mutations are serialized, so snapshot writes are last-write-wins and
// never interleave.
package entrystore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sobirin-dev/hendshake/internal/domain"
	"github.com/sobirin-dev/hendshake/internal/logger"
	"github.com/sobirin-dev/hendshake/internal/snapshot"
)

// ErrClosed is returned by mutations after Close.
var ErrClosed = errors.New("entry store is closed")

// Slot is a single key-value storage location holding the snapshot.
// Read returns nil data and a nil error when nothing has been stored yet.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// Options configures a Store. Everything is optional.
type Options struct {
	Slot   Slot          // nil disables persistence
	Logger logger.Logger // defaults to a no-op logger
	Now    func() time.Time
}

// Store owns the entry collection.
type Store struct {
	// writeMu serializes mutations together with their snapshot write
	// and listener notification.
	writeMu sync.Mutex

	mu      sync.RWMutex
	entries []domain.Entry
	lastID  int64
	closed  bool

	slot Slot
	log  logger.Logger
	now  func() time.Time

	lmu       sync.Mutex
	listeners []subscription
	nextSub   int
}

// New creates an empty store. Call Restore to pick up a persisted snapshot.
func New(opts Options) *Store {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		slot: opts.Slot,
		log:  log,
		now:  now,
	}
}

// Persistent reports whether a slot is configured.
func (s *Store) Persistent() bool {
	return s.slot != nil
}

// Add validates the draft, appends a new entry and persists the collection.
// A *domain.ValidationError leaves the collection untouched.
func (s *Store) Add(ctx context.Context, d domain.Draft) (domain.Entry, error) {
	if err := d.Validate(); err != nil {
		return domain.Entry{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.Entry{}, ErrClosed
	}
	entry := d.Build(s.nextIDLocked())
	s.entries = append(s.entries, entry)
	count := len(s.entries)
	data, encErr := snapshot.Encode(s.entries)
	s.mu.Unlock()

	saveErr := s.write(ctx, data, encErr)

	s.log.Debug("entry added",
		logger.Int64("id", entry.ID),
		logger.String("category", string(entry.Category)),
		logger.Int("count", count))

	s.notify(Event{Kind: EventAdded, Entry: entry, Count: count, SaveErr: saveErr})
	return entry, nil
}

// Remove deletes the entry with the given id. Unknown ids are a no-op
// returning false, so repeated calls are harmless.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	removed := s.entries[idx]
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	count := len(s.entries)
	data, encErr := snapshot.Encode(s.entries)
	s.mu.Unlock()

	saveErr := s.write(ctx, data, encErr)

	s.log.Debug("entry removed",
		logger.Int64("id", id),
		logger.Int("count", count))

	s.notify(Event{Kind: EventRemoved, Entry: removed, Count: count, SaveErr: saveErr})
	return true
}

// List returns a copy of the collection in insertion order.
func (s *Store) List() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Store) Get(id int64) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.entries[idx], true
	}
	return domain.Entry{}, false
}

// Count returns the number of entries held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Load replaces the collection with the entries decoded from data and
// returns how many were loaded. Malformed or empty data leaves the
// collection empty. Duplicate ids keep their first occurrence.
// Load does not write back to the slot. After Close it is a no-op
// returning 0.
func (s *Store) Load(data []byte) int {
	decoded, err := snapshot.Decode(data)
	if err != nil {
		s.log.Warn("ignoring unreadable snapshot", logger.Error(err))
		decoded = nil
	}

	entries := make([]domain.Entry, 0, len(decoded))
	seen := make(map[int64]bool, len(decoded))
	var maxID int64
	for _, e := range decoded {
		if seen[e.ID] {
			s.log.Warn("dropping duplicate entry id from snapshot", logger.Int64("id", e.ID))
			continue
		}
		seen[e.ID] = true
		if e.Category == "" {
			e.Category = domain.DefaultCategory
		}
		e.Accessibility = domain.ClampAccessibility(e.Accessibility)
		if e.ID > maxID {
			maxID = e.ID
		}
		entries = append(entries, e)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("ignoring snapshot load on closed store")
		return 0
	}
	s.entries = entries
	if maxID > s.lastID {
		s.lastID = maxID
	}
	count := len(s.entries)
	s.mu.Unlock()

	s.notify(Event{Kind: EventLoaded, Count: count})
	return count
}

// Restore reads the slot and loads its snapshot. A read failure leaves the
// collection empty and is returned so the caller can report it; the store
// stays usable either way.
func (s *Store) Restore(ctx context.Context) error {
	if s.slot == nil {
		return nil
	}

	data, err := s.slot.Read(ctx)
	if err != nil {
		s.log.Warn("failed to read snapshot, starting empty", logger.Error(err))
		s.Load(nil)
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	n := s.Load(data)
	s.log.Info("restored entries from snapshot", logger.Int("count", n))
	return nil
}

// Save writes the current collection to the slot.
func (s *Store) Save(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	data, encErr := snapshot.Encode(s.entries)
	s.mu.RUnlock()

	return s.write(ctx, data, encErr)
}

// Close flushes a final snapshot and rejects further mutations.
// Closing twice is a no-op.
func (s *Store) Close(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	data, encErr := snapshot.Encode(s.entries)
	s.mu.Unlock()

	return s.write(ctx, data, encErr)
}

// nextIDLocked derives ids from the wall clock in milliseconds and bumps
// past the last id whenever the clock has not moved forward.
func (s *Store) nextIDLocked() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) indexLocked(id int64) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// write persists a snapshot. Failures are logged, never propagated to the
// mutation: memory is authoritative.
func (s *Store) write(ctx context.Context, data []byte, encErr error) error {
	if s.slot == nil {
		return nil
	}
	if encErr != nil {
		s.log.Error("failed to encode snapshot", logger.Error(encErr))
		return encErr
	}
	if err := s.slot.Write(ctx, data); err != nil {
		s.log.Warn("failed to write snapshot", logger.Error(err))
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
