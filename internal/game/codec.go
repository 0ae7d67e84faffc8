// internal/game/codec.go
//
// Save format for State.
//
//	{"phrase":"...","clues":"...","alphabet":[{"glyph":"A","tried":false}, ...]}
//
// Decode also understands the two older shapes written under the same
// storage key, both keyed by "lettersAvailable":
//   - [{"symbol":"A","selected":true}, ...]  the letter+digit version
//   - ["A","B", ...]                         letters still available (A–Z only)
//
// Older saves are migrated onto the canonical alphabet. An empty
// "lettersAvailable" list is the string shape: nothing left, every letter tried.
//
// Phrase and clues must be valid UTF-8 to round-trip; encoding/json replaces
// invalid bytes with U+FFFD.

package game

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSave is returned by Decode for any blob that is not a valid State.
var ErrCorruptSave = errors.New("corrupt save")

// legacyLetters is the alphabet used by the string-list save shape.
const legacyLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type wireState struct {
	Phrase           string          `json:"phrase"`
	Clues            string          `json:"clues"`
	Alphabet         []Symbol        `json:"alphabet"`
	LettersAvailable json.RawMessage `json:"lettersAvailable"`
}

type legacySymbol struct {
	Symbol   string `json:"symbol"`
	Selected bool   `json:"selected"`
}

// Encode serialises a state. Invalid UTF-8 in phrase or clues is written as
// U+FFFD, so such a state does not decode back to itself.
func Encode(s State) ([]byte, error) {
	return json.Marshal(s)
}

// Decode parses a saved blob. Every failure wraps ErrCorruptSave.
func Decode(data []byte) (State, error) {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}

	switch {
	case w.Alphabet != nil:
		if err := checkAlphabet(w.Alphabet); err != nil {
			return State{}, err
		}
		return State{Phrase: w.Phrase, Clues: w.Clues, Alphabet: w.Alphabet}, nil
	case len(w.LettersAvailable) > 0 && string(w.LettersAvailable) != "null":
		s, err := migrateLegacy(w.LettersAvailable)
		if err != nil {
			return State{}, err
		}
		s.Phrase, s.Clues = w.Phrase, w.Clues
		return s, nil
	default:
		return State{}, fmt.Errorf("%w: no alphabet", ErrCorruptSave)
	}
}

// checkAlphabet enforces one symbol per canonical glyph, in canonical order.
func checkAlphabet(alpha []Symbol) error {
	if len(alpha) != len(glyphs) {
		return fmt.Errorf("%w: alphabet has %d symbols, want %d", ErrCorruptSave, len(alpha), len(glyphs))
	}
	for i, sym := range alpha {
		if sym.Glyph != glyphs[i] {
			return fmt.Errorf("%w: symbol %d is %q, want %q", ErrCorruptSave, i, sym.Glyph, glyphs[i])
		}
	}
	return nil
}

func migrateLegacy(raw json.RawMessage) (State, error) {
	s := New()

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return State{}, fmt.Errorf("%w: lettersAvailable: %v", ErrCorruptSave, err)
	}

	var objs []legacySymbol
	if len(items) > 0 && json.Unmarshal(raw, &objs) == nil {
		for _, o := range objs {
			if sym := s.symbol(o.Symbol); sym != nil {
				sym.Tried = o.Selected
			}
		}
		return s, nil
	}

	var available []string
	if err := json.Unmarshal(raw, &available); err != nil {
		return State{}, fmt.Errorf("%w: lettersAvailable: %v", ErrCorruptSave, err)
	}
	left := make(map[string]struct{}, len(available))
	for _, a := range available {
		left[a] = struct{}{}
	}
	for _, r := range legacyLetters {
		g := string(r)
		if _, ok := left[g]; !ok {
			s.symbol(g).Tried = true
		}
	}
	return s, nil
}
