// internal/store/saves.go
//
// Saves maps game states onto a Blob under a single well-known key.
// Each session (browser) gets its own copy of that key via a scope prefix.

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/game"
)

// SaveKey is the key a game is stored under.
const SaveKey = "hangman-game-data"

// Saves loads and stores whole game states. No partial updates, no versions.
type Saves struct {
	blob Blob
}

// NewSaves wraps b.
func NewSaves(b Blob) *Saves {
	return &Saves{blob: b}
}

// Key returns the storage key for scope. An empty scope uses SaveKey as is.
func Key(scope string) string {
	if scope == "" {
		return SaveKey
	}
	return scope + ":" + SaveKey
}

// Load returns the saved state for scope.
// ok is false when nothing is saved or the saved blob is corrupt; a corrupt
// save is logged and otherwise treated as no save. err is only set when the
// medium itself fails.
func (s *Saves) Load(ctx context.Context, scope string) (st game.State, ok bool, err error) {
	key := Key(scope)
	raw, found, err := s.blob.Get(ctx, key)
	if err != nil {
		return game.State{}, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !found {
		return game.State{}, false, nil
	}

	st, err = game.Decode([]byte(raw))
	switch {
	case errors.Is(err, game.ErrCorruptSave):
		log.Warn().Err(err).Str("key", key).Msg("discarding corrupt save")
		return game.State{}, false, nil
	case err != nil:
		return game.State{}, false, err
	}
	return st, true, nil
}

// Store overwrites the saved state for scope.
func (s *Saves) Store(ctx context.Context, scope string, st game.State) error {
	key := Key(scope)
	data, err := game.Encode(st)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.blob.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// LoadOrNew returns the saved state, or a fresh game when there is none.
// fresh reports which one it was.
func (s *Saves) LoadOrNew(ctx context.Context, scope string) (st game.State, fresh bool, err error) {
	st, ok, err := s.Load(ctx, scope)
	if err != nil {
		return game.State{}, false, err
	}
	if !ok {
		return game.New(), true, nil
	}
	return st, false, nil
}
