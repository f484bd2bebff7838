// Package detect implements the scanning half of the engine: title
// normalization, candidate detection against a compiled index, confidence
// scoring, and conflict resolution.
package detect

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a title or alias for matching:
// NFKC (fullwidth forms, compatibility ligatures, ideographic space),
// full case folding (the identity on CJK, so those scripts pass through
// untouched), whitespace collapse, and edge punctuation trim.
// Patterns and titles must go through the exact same function or
// automaton matches silently disappear.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	// A Caser carries internal state, so it cannot be shared across
	// goroutines; construct per call.
	s = cases.Fold().String(s)

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := true // leading whitespace is dropped
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteRune(' ')
				prevSpace = true
			}
			continue
		}
		b.WriteRune(r)
		prevSpace = false
	}

	return strings.TrimFunc(b.String(), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
}
