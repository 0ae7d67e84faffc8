// internal/game/view.go
//
// Read-only views derived from a State. Nothing here is cached: tried flags
// and the phrase can change between calls, so every view is recomputed.

package game

import (
	"regexp"
	"strings"
	"unicode"
)

// lineBreak matches any of the line-break sequences clues may contain.
var lineBreak = regexp.MustCompile(`\r\n|\r|\n`)

// nbsp is how a space in the phrase is written into the export document.
const nbsp = "&nbsp;&nbsp;"

// MaskedPhrase renders the phrase with untried symbols replaced by the
// placeholder, one space between character positions.
//
// Characters that have no symbol in the alphabet (spaces, punctuation) are
// always shown. Original case is kept for revealed characters.
func MaskedPhrase(s State) string {
	return strings.Join(maskRunes(s), " ")
}

// maskRunes returns one rendered cell per rune of the phrase.
func maskRunes(s State) []string {
	runes := []rune(s.Phrase)
	out := make([]string, len(runes))
	for i, r := range runes {
		cell := string(r)
		if sym := s.symbol(string(unicode.ToUpper(r))); sym != nil && !sym.Tried {
			cell = Placeholder
		}
		out[i] = cell
	}
	return out
}

// NotFound lists tried glyphs that do not occur anywhere in the phrase,
// in canonical alphabet order. Never nil.
func NotFound(s State) []string {
	present := make(map[string]struct{}, len(s.Phrase))
	for _, r := range s.Phrase {
		present[string(unicode.ToUpper(r))] = struct{}{}
	}
	out := []string{}
	for _, sym := range s.Alphabet {
		if !sym.Tried {
			continue
		}
		if _, ok := present[sym.Glyph]; !ok {
			out = append(out, sym.Glyph)
		}
	}
	return out
}

// ClueLines splits clues on \r\n, \r or \n. Blank lines are kept, so an
// empty string yields a single empty line.
func ClueLines(clues string) []string {
	return lineBreak.Split(clues, -1)
}

// Export builds the document players paste elsewhere:
//
//	Phrase: C _ T<br>Clues: <ul><li>Animal</li><li>Pet</li></ul><br>Not found: Z
//
// The layout is a compatibility surface. It carries no line breaks because
// the paste target turns CR/LF into paragraphs.
func Export(s State) string {
	cells := maskRunes(s)
	for i, c := range cells {
		if c == " " {
			cells[i] = nbsp
		}
	}

	var b strings.Builder
	b.WriteString("Phrase: ")
	b.WriteString(strings.Join(cells, " "))
	b.WriteString("<br>Clues: <ul>")
	for _, line := range ClueLines(s.Clues) {
		b.WriteString("<li>")
		b.WriteString(line)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	b.WriteString("<br>Not found: ")
	b.WriteString(strings.Join(NotFound(s), ","))
	return b.String()
}
