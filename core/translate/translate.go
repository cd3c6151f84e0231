package translate

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/forsaj/sitecontent/core/token"
)

var (
	bareURLPattern = regexp.MustCompile(`(?i)^https?://`)
	htmlPattern    = regexp.MustCompile(`(?is)<[a-z].*>`)
)

// CanTranslate reports whether text is worth sending to a translation
// provider. Blank strings, single characters, placeholder key tokens, bare
// URLs and HTML fragments all pass through untranslated.
func CanTranslate(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return false
	}
	if utf8.RuneCountInString(t) < 2 {
		return false
	}
	if token.IsKeyToken(t) {
		return false
	}
	if bareURLPattern.MatchString(t) {
		return false
	}
	if htmlPattern.MatchString(t) {
		return false
	}
	return true
}
