// Package memory provides an in-process snapshot slot.
// Contents are lost when the process exits.
package memory

import (
	"context"
	"sync"
)

// Slot keeps one snapshot in memory. Safe for concurrent use.
type Slot struct {
	mu     sync.Mutex
	data   []byte
	writes int
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Read returns a copy of the stored snapshot, or nil if nothing was written.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil, nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out, nil
}

// Write replaces the stored snapshot.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make([]byte, len(data))
	copy(s.data, data)
	s.writes++
	return nil
}

// Writes returns how many times Write succeeded.
func (s *Slot) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Slot) Ping(ctx context.Context) error {
	return ctx.Err()
}
