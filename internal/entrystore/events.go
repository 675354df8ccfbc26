package entrystore

import (
	"sync"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

// EventKind names the mutation an Event reports.
type EventKind int

const (
	EventAdded EventKind = iota + 1
	EventRemoved
	EventLoaded
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Event describes a completed mutation.
type Event struct {
	Kind EventKind

	// Entry is the added or removed entry. Zero for EventLoaded.
	Entry domain.Entry

	// Count is the collection size after the mutation.
	Count int

	// SaveErr is set when the snapshot write that followed the mutation failed.
	SaveErr error
}

// Listener is called after each successful mutation, in mutation order.
// It must not call Add, Remove or Load on the same store.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.listeners = append(s.listeners, subscription{id: id, fn: l})

	var once sync.Once
	return func() {
		once.Do(func() { s.unsubscribe(id) })
	}
}

func (s *Store) unsubscribe(id int) {
	s.lmu.Lock()
	defer s.lmu.Unlock()

	for i, sub := range s.listeners {
		if sub.id == id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Store) notify(ev Event) {
	s.lmu.Lock()
	subs := make([]subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.lmu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}
