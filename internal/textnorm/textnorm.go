// Package textnorm provides the whitespace and keyword-matching forms of
// extracted document text.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CollapseWhitespace replaces every run of Unicode whitespace with a single
// space and trims both ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Simplify lower-cases s, folds diacritics ("ü" becomes "u") and keeps only
// letters and digits. The result is meant for membership tests, never display.
func Simplify(s string) string {
	folded := foldMarks(s)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Words splits s on anything that is not a letter or digit and simplifies
// each piece. Combining marks are removed before splitting so decomposed
// umlauts stay inside their word. Empty pieces are dropped.
func Words(s string) []string {
	fields := strings.FieldsFunc(foldMarks(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := Simplify(f); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Folded holds both keyword-matching forms of a text: the simplified
// string for substring tests and its word set for whole-word tests.
type Folded struct {
	Joined string
	Words  map[string]struct{}
}

// Fold computes the Folded form of s.
func Fold(s string) Folded {
	words := Words(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return Folded{Joined: Simplify(s), Words: set}
}

// HasWord reports whether w (already simplified) is one of the words.
func (f Folded) HasWord(w string) bool {
	_, ok := f.Words[w]
	return ok
}

// foldMarks decomposes s and drops combining marks. A transformer chain
// carries state, so one is built per call.
func foldMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
