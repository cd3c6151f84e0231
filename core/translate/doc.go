// Package translate populates missing translations on demand through free
// third-party machine translation services, with a durable cache so each
// (language, text) pair costs at most one network round trip per lifetime
// of the cache.
//
// The pipeline is deliberately best-effort and never blocks rendering: the
// facade shows the source-language text on the first miss and re-renders
// when the TranslationUpdated signal fires. Provider order is MyMemory
// first, then the LibreTranslate-compatible endpoints in sequence. When
// everything fails the source text is cached as its own translation for
// the rest of the session, so an unreachable provider degrades to "show
// original language" instead of retrying forever.
//
// Text that is too short, a placeholder key token, a bare URL or an HTML
// fragment always passes through untranslated, as does anything requested
// in the source language.
package translate
