package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Phrase)
	assert.Equal(t, "", s.Clues)
	require.Len(t, s.Alphabet, len(canonical))
	for i, sym := range s.Alphabet {
		assert.Equal(t, string(canonical[i]), sym.Glyph)
		assert.False(t, sym.Tried, "glyph %s", sym.Glyph)
	}
	assert.Equal(t, "", MaskedPhrase(s))
	assert.Empty(t, NotFound(s))
}

func TestGlyphsIsACopy(t *testing.T) {
	g := Glyphs()
	require.Equal(t, "A", g[0])
	g[0] = "?"
	assert.Equal(t, "A", Glyphs()[0])
	assert.Equal(t, "9", Glyphs()[35])
}

func TestSetPhraseAndCluesVerbatim(t *testing.T) {
	s := SetPhrase(New(), "  Hello, World  ")
	s = SetClues(s, "one\r\ntwo")
	assert.Equal(t, "  Hello, World  ", s.Phrase)
	assert.Equal(t, "one\r\ntwo", s.Clues)

	s = SetPhrase(s, "")
	assert.Equal(t, "", s.Phrase)
}

func TestToggleSymbol(t *testing.T) {
	s := ToggleSymbol(New(), "Q")
	assert.True(t, s.Alphabet[glyphIndex["Q"]].Tried)

	s = ToggleSymbol(s, "Q")
	assert.False(t, s.Alphabet[glyphIndex["Q"]].Tried)
}

func TestToggleUnknownGlyphIsNoop(t *testing.T) {
	base := SetPhrase(New(), "cat")
	for _, g := range []string{"a", "?", "", "AB", " ", "é"} {
		assert.Equal(t, base, ToggleSymbol(base, g), "glyph %q", g)
	}
}

func TestDoubleToggleIsIdentity(t *testing.T) {
	base := SetClues(SetPhrase(New(), "Mixed Case 42!"), "x")
	base = ToggleSymbol(base, "M")
	base = ToggleSymbol(base, "7")

	for _, g := range append(Glyphs(), "z", "-", "") {
		assert.Equal(t, base, ToggleSymbol(ToggleSymbol(base, g), g), "glyph %q", g)
	}
}

func TestOperationsDoNotAliasInput(t *testing.T) {
	base := New()
	_ = ToggleSymbol(base, "A")
	_ = SetPhrase(base, "x")
	assert.False(t, base.Alphabet[0].Tried)
	assert.Equal(t, "", base.Phrase)
}
