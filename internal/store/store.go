// internal/store/store.go
//
// String-keyed blob storage for saved games.
// A Blob is the storage medium (memory, SQLite); Saves (saves.go) decides
// what is written to it. Probe is the start-up check that tells the caller
// whether the medium is usable at all.

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Blob is a key-value store of opaque strings.
// Implementations must be safe for concurrent use.
type Blob interface {
	// Get returns the value under key, or ok=false if nothing is stored.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the underlying medium.
	Close() error
}

// Store kinds accepted by Open.
const (
	KindMemory = "memory"
	KindSQLite = "sqlite"
)

var (
	// ErrUnavailable means the medium cannot be used; the caller should
	// fall back to a status-only mode rather than play.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrUnknownStore is returned by Open for an unrecognised kind.
	ErrUnknownStore = errors.New("unknown store kind")
)

// Open builds the Blob for kind. path is the SQLite database file and is
// ignored for memory stores.
func Open(kind, path string) (Blob, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStore, kind)
	}
}

// Probe writes a unique key, reads it back and removes it.
// Any failure or mismatch is reported as ErrUnavailable.
func Probe(ctx context.Context, b Blob) error {
	uid := strconv.FormatInt(time.Now().UnixNano(), 10)
	key := "probe:" + uid

	if err := b.Set(ctx, key, uid); err != nil {
		return fmt.Errorf("%w: write: %w", ErrUnavailable, err)
	}
	got, ok, err := b.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: read: %w", ErrUnavailable, err)
	}
	if err := b.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: delete: %w", ErrUnavailable, err)
	}
	if !ok || got != uid {
		return fmt.Errorf("%w: read back %q, want %q", ErrUnavailable, got, uid)
	}
	return nil
}
