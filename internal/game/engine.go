// internal/game/engine.go
//
// Game engine for a single hangman helper session.
// Responsibilities:
//   - Start a fresh game (every symbol untried, empty phrase and clues).
//   - Edit the phrase and clues verbatim.
//   - Toggle a symbol's tried flag.
//
// Every operation takes a State and returns a new one; nothing is retained
// between calls, so the caller owns storage and lifetime.
package game

// New constructs a fresh game over the canonical alphabet.
func New() State {
	alpha := make([]Symbol, len(glyphs))
	for i, g := range glyphs {
		alpha[i] = Symbol{Glyph: g}
	}
	return State{Alphabet: alpha}
}

// SetPhrase replaces the phrase as typed. No trimming, no case folding.
func SetPhrase(s State, text string) State {
	out := s.clone()
	out.Phrase = text
	return out
}

// SetClues replaces the clues as typed.
func SetClues(s State, text string) State {
	out := s.clone()
	out.Clues = text
	return out
}

// ToggleSymbol flips the tried flag of the symbol whose glyph matches exactly.
// A glyph outside the canonical set (including a lowercase letter) leaves the
// state unchanged.
func ToggleSymbol(s State, glyph string) State {
	out := s.clone()
	if sym := out.symbol(glyph); sym != nil {
		sym.Tried = !sym.Tried
	}
	return out
}

// symbol looks a glyph up through the canonical index.
// Returns nil if the glyph is unknown or the alphabet is malformed at that slot.
func (s *State) symbol(glyph string) *Symbol {
	i, ok := glyphIndex[glyph]
	if !ok || i >= len(s.Alphabet) || s.Alphabet[i].Glyph != glyph {
		return nil
	}
	return &s.Alphabet[i]
}
