// internal/store/memory.go
//
// In-memory implementation of Blob.
// Used for development, tests, and deployments where losing saves on
// restart is acceptable.
//
// Characteristics:
//   - Values keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based Blob implementation.
type memory struct {
	mu    sync.RWMutex      // guards blobs
	blobs map[string]string // keyed by save key
}

// NewMemoryStore constructs a new in-memory Blob.
func NewMemoryStore() Blob {
	return &memory{blobs: make(map[string]string)}
}

// Get looks up a value by key.
func (m *memory) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

// Set adds or replaces the value in the map.
func (m *memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}

func (m *memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *memory) Close() error { return nil }
