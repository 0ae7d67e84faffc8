package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	states := []State{
		New(),
		SetClues(tried("CAT", "C", "T"), "Animal\nPet"),
		SetClues(tried("  ünïcode & <b>tags</b>  ", "U", "0", "9"), "\r\n\r"),
		tried("", Glyphs()...),
	}
	for _, s := range states {
		data, err := Encode(s)
		require.NoError(t, err)
		got, err := Decode(data)
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestEncodeFieldNames(t *testing.T) {
	data, err := Encode(tried("A", "A"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data),
		`{"phrase":"A","clues":"","alphabet":[{"glyph":"A","tried":true},{"glyph":"B","tried":false},`))
}

func TestDecodeCorrupt(t *testing.T) {
	blobs := []string{
		``,
		`not json`,
		`{"phrase":"x"`,
		`42`,
		`null`,
		`{}`,
		`{"phrase":"x","clues":"y"}`,
		`{"phrase":1,"alphabet":[]}`,
		`{"alphabet":[]}`,
		`{"alphabet":[{"glyph":"A","tried":false}]}`,
		`{"lettersAvailable":42}`,
		`{"lettersAvailable":[1,2]}`,
	}
	for _, b := range blobs {
		_, err := Decode([]byte(b))
		assert.ErrorIs(t, err, ErrCorruptSave, "blob %q", b)
	}
}

func TestDecodeRejectsReorderedAlphabet(t *testing.T) {
	s := New()
	s.Alphabet[0], s.Alphabet[1] = s.Alphabet[1], s.Alphabet[0]
	data, err := Encode(s)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrCorruptSave)
}

func TestDecodeLegacySymbolList(t *testing.T) {
	blob := `{"clues":"c","phrase":"Hi","lettersAvailable":[` +
		`{"symbol":"A","selected":false},{"symbol":"H","selected":true},` +
		`{"symbol":"7","selected":true},{"symbol":"?","selected":true}]}`

	s, err := Decode([]byte(blob))
	require.NoError(t, err)
	assert.Equal(t, "Hi", s.Phrase)
	assert.Equal(t, "c", s.Clues)
	assert.Len(t, s.Alphabet, len(canonical))
	assert.Equal(t, "H _", MaskedPhrase(s))
	assert.Equal(t, []string{"7"}, NotFound(s))
}

func TestDecodeLegacyAvailableLetters(t *testing.T) {
	available := strings.Split("ABCDEFGIJKLMNOPQRSTUVWXY", "")
	blob := `{"clues":"","phrase":"hz","lettersAvailable":["` + strings.Join(available, `","`) + `"]}`

	s, err := Decode([]byte(blob))
	require.NoError(t, err)
	assert.Equal(t, "h z", MaskedPhrase(s))
	assert.Empty(t, NotFound(s))
	for _, g := range strings.Split("0123456789", "") {
		assert.False(t, s.Alphabet[glyphIndex[g]].Tried, "digit %s", g)
	}
}

func TestDecodeLegacyEmptyListMeansAllLettersTried(t *testing.T) {
	s, err := Decode([]byte(`{"phrase":"CAT","clues":"","lettersAvailable":[]}`))
	require.NoError(t, err)
	assert.Equal(t, "C A T", MaskedPhrase(s))

	var want []string
	for _, r := range legacyLetters {
		if !strings.ContainsRune("CAT", r) {
			want = append(want, string(r))
		}
	}
	assert.Equal(t, want, NotFound(s))
	for _, g := range strings.Split("0123456789", "") {
		assert.False(t, s.Alphabet[glyphIndex[g]].Tried, "digit %s", g)
	}
}

func TestEncodeReplacesInvalidUTF8(t *testing.T) {
	s := SetClues(SetPhrase(New(), "a\xffb"), "\xfe")
	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "a\uFFFDb", got.Phrase)
	assert.Equal(t, "\uFFFD", got.Clues)
	assert.NotEqual(t, s, got)
}
