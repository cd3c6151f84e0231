// Package lang defines the supported display languages and the ordered
// lookup-key candidates a semantic key expands to per language.
package lang

import "strings"

// Language is one of the site display languages. Content is authored in AZ;
// the other languages are produced by the translation pipeline.
type Language string

const (
	AZ  Language = "AZ"
	RU  Language = "RU"
	ENG Language = "ENG"
)

// Default is the source language. It never requires translation.
const Default = AZ

// Supported returns all display languages, source language first.
func Supported() []Language {
	return []Language{AZ, RU, ENG}
}

// Parse maps arbitrary input to a supported language.
// Unknown or blank input falls back to the source language.
func Parse(s string) Language {
	switch Language(strings.ToUpper(strings.TrimSpace(s))) {
	case RU:
		return RU
	case ENG:
		return ENG
	default:
		return AZ
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == AZ || l == RU || l == ENG
}

// Code returns the ISO 639-1 code used by translation providers.
func (l Language) Code() string {
	switch l {
	case RU:
		return "ru"
	case ENG:
		return "en"
	default:
		return "az"
	}
}

// Candidates produces the ordered list of lookup keys to try for a semantic
// key in the given language. The source language resolves against the bare
// key only. Other languages try the language-scoped forms first and keep the
// bare key as the final fallback, so content that was never localized still
// resolves to the base entry.
//
// A blank key yields no candidates.
func Candidates(key string, l Language) []string {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if l == Default {
		return []string{key}
	}
	return []string{
		key + "_" + string(l),
		string(l) + "_" + key,
		key + "." + strings.ToLower(string(l)),
		key,
	}
}
