package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newCmd(&Config{})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestConfigValidate(t *testing.T) {
	ok := Config{port: 5175, store: store.KindMemory}
	assert.NoError(t, ok.validate())

	lite := Config{port: 5175, store: store.KindSQLite, db: "x.db"}
	assert.NoError(t, lite.validate())

	for name, c := range map[string]Config{
		"port zero":     {port: 0, store: store.KindMemory},
		"port too big":  {port: 70000, store: store.KindMemory},
		"unknown store": {port: 1, store: "redis"},
		"sqlite no db":  {port: 1, store: store.KindSQLite},
	} {
		assert.Error(t, c.validate(), name)
	}
}

func TestAlphabetCommand(t *testing.T) {
	out, err := run(t, "alphabet")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(game.Glyphs(), " ")+"\n", out)
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "hangman.db")

	blob, err := store.OpenSQLite(db)
	require.NoError(t, err)
	st := game.SetClues(game.ToggleSymbol(game.SetPhrase(game.New(), "CAT"), "A"), "Animal")
	require.NoError(t, store.NewSaves(blob).Store(ctx, "s1", st))
	require.NoError(t, blob.Close())

	out, err := run(t, "export", "--store", "sqlite", "--db", db, "--session", "s1")
	require.NoError(t, err)
	assert.Equal(t, "Phrase: _ A _<br>Clues: <ul><li>Animal</li></ul><br>Not found: \n", out)

	_, err = run(t, "export", "--store", "sqlite", "--db", db, "--session", "nobody")
	assert.ErrorIs(t, err, errNoSave)
}

func TestEnvFillsFlags(t *testing.T) {
	t.Setenv("HANGMAN_LOG_LEVEL", "nonsense")
	_, err := run(t, "alphabet")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestBadStoreFlag(t *testing.T) {
	_, err := run(t, "alphabet", "--store", "redis")
	assert.ErrorContains(t, err, "invalid store")
}
