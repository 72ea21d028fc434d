package portfolio

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes each rune, removes combining marks (diacritics), and
// recomposes, so that "Café" and "Cafe" normalize identically.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldCase is Unicode case folding, which is stable across locales unlike
// locale-aware lowercasing.
var foldCase = cases.Fold()

// Normalize converts raw mark text to its canonical comparison form:
// case-folded, diacritics stripped, punctuation removed, whitespace collapsed
// to single spaces.  The function is pure and locale-independent; both
// portfolio and filing text must pass through it before any similarity
// computation, otherwise scores are not reproducible across platforms.
//
//	Normalize("  ACME Tools, Inc.") == "acme tools inc"
//	Normalize("Café-Brand")         == "cafebrand"
func Normalize(s string) string {
	folded := foldCase.String(s)
	if stripped, _, err := transform.String(stripMarks, folded); err == nil {
		folded = stripped
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped without leaving a boundary:
		// hyphenated and dotted variants collapse onto the plain form.
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
