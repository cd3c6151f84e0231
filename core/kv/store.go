package kv

import (
	"context"
	"errors"
)

// Durable client-state keys shared by the public site and the admin panel.
// The admin panel bumps the content version marker after every edit; the
// other two belong to the consuming process.
const (
	ContentVersionKey   = "forsaj_site_content_version"
	SiteLanguageKey     = "forsaj_site_lang"
	TranslationCacheKey = "forsaj_free_translation_cache_v1"
)

var (
	// ErrNotFound is returned when a key has no stored value.
	ErrNotFound = errors.New("kv: key not found")
)

// Store is the durable client-state interface. Implementations must be safe
// for concurrent use. Values are opaque strings; structured state is stored
// as JSON blobs under a single key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
