package translate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/logger"
)

// Store is the durable translation cache: target language -> source text ->
// translated text. Entries are keyed by exact source string and never
// expire; source text is assumed stable under a given key, so entries are
// only ever added. Writes are last-writer-wins, which is acceptable because
// translation is idempotent for the same input.
type Store struct {
	mu      sync.RWMutex
	entries map[lang.Language]map[string]string
	state   kv.Store
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger configures structured logging.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a translation cache persisted through the given durable
// state store. Call Load to hydrate previously persisted entries.
func NewStore(state kv.Store, opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[lang.Language]map[string]string),
		state:   state,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the cache from durable state. A missing or corrupt blob
// starts the cache empty; translations then simply rebuild over time.
func (s *Store) Load(ctx context.Context) {
	blob, err := s.state.Get(ctx, kv.TranslationCacheKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.logger.Warn("translation cache unavailable, starting empty",
				logger.Component("translate"), logger.Error(err))
		}
		return
	}

	parsed := make(map[lang.Language]map[string]string)
	if err := json.Unmarshal([]byte(blob), &parsed); err != nil {
		s.logger.Warn("corrupt translation cache discarded",
			logger.Component("translate"), logger.Error(err))
		return
	}

	s.mu.Lock()
	s.entries = parsed
	s.mu.Unlock()
}

// Get returns the cached translation for (l, text) if present.
func (s *Store) Get(l lang.Language, text string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byLang, ok := s.entries[l]
	if !ok {
		return "", false
	}
	translated, ok := byLang[text]
	return translated, ok
}

// Set records a translation and persists the whole cache. Persistence
// failures are logged and swallowed: the translation still serves the
// current session, it just will not survive a restart.
func (s *Store) Set(ctx context.Context, l lang.Language, text, translated string) {
	blob := s.put(l, text, translated)

	if err := s.state.Set(ctx, kv.TranslationCacheKey, blob); err != nil {
		s.logger.Warn("failed to persist translation cache",
			logger.Component("translate"), logger.Lang(l), logger.Error(err))
	}
}

// SetTransient records a translation in memory only. Used for negative
// caching after every provider failed, so a dead provider is not hammered
// for the rest of the session but a restart still retries.
func (s *Store) SetTransient(l lang.Language, text, translated string) {
	s.put(l, text, translated)
}

// Len reports the number of cached entries for a language.
func (s *Store) Len(l lang.Language) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[l])
}

// put stores the entry and returns the serialized cache for persisting.
func (s *Store) put(l lang.Language, text, translated string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	byLang, ok := s.entries[l]
	if !ok {
		byLang = make(map[string]string)
		s.entries[l] = byLang
	}
	byLang[text] = translated

	blob, err := json.Marshal(s.entries)
	if err != nil {
		// map[string]string marshaling cannot fail in practice.
		return "{}"
	}
	return string(blob)
}
