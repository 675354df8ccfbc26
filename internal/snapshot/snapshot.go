// Package snapshot encodes the full entry collection for a storage slot.
//
// The format is a JSON array of entry records in insertion order:
//
//	[{"id":1,"label":"Read book","price":"0","category":"education",
//	  "bookingRequired":false,"accessibility":0.3}]
//
// There is no incremental form: every write replaces the whole collection.
package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

// Encode serializes entries, preserving order.
func Encode(entries []domain.Entry) ([]byte, error) {
	if entries == nil {
		entries = []domain.Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a snapshot. Empty input yields no entries and no error.
func Decode(data []byte) ([]domain.Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var entries []domain.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return entries, nil
}
