package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Slot stores the entry snapshot under a single Redis key.
// The key never expires; each write replaces the previous value.
type Slot struct {
	client redis.UniversalClient
	key    string
}

// NewSlot creates a slot writing to SnapshotKey(namespace).
func NewSlot(client redis.UniversalClient, namespace string) *Slot {
	return &Slot{
		client: client,
		key:    SnapshotKey(namespace),
	}
}

// Key returns the Redis key backing the slot.
func (s *Slot) Key() string {
	return s.key
}

// Read returns the stored snapshot, or nil when the key does not exist.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return data, nil
}

// Write overwrites the snapshot.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (s *Slot) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
