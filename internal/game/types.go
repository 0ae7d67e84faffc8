// internal/game/types.go
//
// Core type definitions for the hangman game engine.
// Defines:
//   - Symbol: one entry of the alphabet (glyph + tried flag).
//   - State:  the complete, persisted game (phrase, clues, alphabet).
//   - the canonical glyph set and its lookup index.

package game

// Symbol is a single alphabet entry.
type Symbol struct {
	Glyph string `json:"glyph"` // one character from the canonical set
	Tried bool   `json:"tried"` // true once the player has selected it
}

// State holds everything needed to resume a game.
// Alphabet always lists every canonical glyph exactly once, in canonical order.
type State struct {
	Phrase   string   `json:"phrase"`   // the secret, free text, case preserved
	Clues    string   `json:"clues"`    // newline-delimited hint lines
	Alphabet []Symbol `json:"alphabet"` // one Symbol per canonical glyph
}

// canonical is the fixed symbol set, letters then digits.
const canonical = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Placeholder replaces an untried character in the masked phrase.
const Placeholder = "_"

var (
	glyphs     []string       // canonical glyphs in order
	glyphIndex map[string]int // glyph → position in State.Alphabet
)

func init() {
	glyphs = make([]string, 0, len(canonical))
	glyphIndex = make(map[string]int, len(canonical))
	for i, r := range canonical {
		g := string(r)
		glyphs = append(glyphs, g)
		glyphIndex[g] = i
	}
}

// Glyphs returns the canonical symbol set in order.
// The slice is a copy; callers may keep or modify it.
func Glyphs() []string {
	out := make([]string, len(glyphs))
	copy(out, glyphs)
	return out
}

// clone returns a deep copy so returned states never alias their input.
func (s State) clone() State {
	out := s
	out.Alphabet = make([]Symbol, len(s.Alphabet))
	copy(out.Alphabet, s.Alphabet)
	return out
}
