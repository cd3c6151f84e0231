// Package token canonicalizes label and key strings for the loose matching
// the section resolver depends on.
package token

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks left over after NFD decomposition,
// turning accented characters into their base letters. Chained transformers
// carry state, so a fresh chain is built per call.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
}

// Normalize canonicalizes a label or key string for loose matching.
// It lower-cases using Azerbaijani casing rules (content is authored in AZ),
// decomposes accented characters and drops their diacritic marks, then strips
// every character outside [a-z0-9].
//
// Normalize is pure and stable: the same input always yields the same output.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// cases.Caser is stateful, so a fresh one is created per call.
	lowered := cases.Lower(language.Azerbaijani).String(s)

	decomposed, _, err := transform.String(stripMarks(), lowered)
	if err != nil {
		decomposed = lowered
	}

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsKeyToken reports whether the trimmed value looks like an internal
// placeholder token: one or more characters drawn from [A-Z0-9_] only.
// Such values mark a slot that mirrors its own lookup key and carries no
// real content.
func IsKeyToken(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	for _, r := range t {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return true
}
