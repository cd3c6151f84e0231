package translate

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/forsaj/sitecontent/core/event"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/logger"
)

// prefetchTimeout bounds a background translation started by Prefetch.
const prefetchTimeout = 30 * time.Second

// Service is the translation fetcher: cached translations are served
// synchronously; misses go through a single-flight guarded provider chain
// (primary, then fallback). When every provider fails, the source text is
// cached as its own translation so a dead provider degrades to showing the
// original language instead of retrying forever.
type Service struct {
	store    *Store
	primary  Provider
	fallback Provider
	bus      *event.Bus
	logger   *slog.Logger

	group singleflight.Group
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithPrimary replaces the primary provider.
func WithPrimary(p Provider) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.primary = p
		}
	}
}

// WithFallback replaces the fallback provider.
func WithFallback(p Provider) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.fallback = p
		}
	}
}

// WithBus wires the bus used to broadcast TranslationUpdated after a
// translation lands in the store.
func WithBus(b *event.Bus) ServiceOption {
	return func(s *Service) {
		s.bus = b
	}
}

// WithServiceLogger configures structured logging.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a translation service over the given store. Providers
// default to MyMemory with a LibreTranslate fallback.
func NewService(store *Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:    store,
		primary:  NewMyMemory(),
		fallback: NewLibre(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load hydrates the underlying store from durable state.
func (s *Service) Load(ctx context.Context) {
	s.store.Load(ctx)
}

// Cached returns the stored translation for (l, text) if one exists. It
// never triggers network activity.
func (s *Service) Cached(text string, l lang.Language) (string, bool) {
	if l == lang.Default {
		return text, true
	}
	return s.store.Get(l, text)
}

// Translate returns the best known rendering of text in l, fetching from
// the providers when the cache misses. Source-language and untranslatable
// input pass through unchanged with no network activity. Concurrent calls
// for the same (l, text) pair share one provider round trip.
func (s *Service) Translate(ctx context.Context, text string, l lang.Language) string {
	if l == lang.Default || !CanTranslate(text) {
		return text
	}
	if cached, ok := s.store.Get(l, text); ok {
		return cached
	}

	v, _, _ := s.group.Do(string(l)+":"+text, func() (any, error) {
		if cached, ok := s.store.Get(l, text); ok {
			return cached, nil
		}
		return s.fetch(ctx, text, l), nil
	})
	return v.(string)
}

// Prefetch requests a translation in the background and returns
// immediately. The first render of a not-yet-translated string shows the
// source text; TranslationUpdated fires once the translation is stored. The
// operation is allowed to finish even if the initiating consumer is gone.
func (s *Service) Prefetch(text string, l lang.Language) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
		defer cancel()
		s.Translate(ctx, text, l)
	}()
}

func (s *Service) fetch(ctx context.Context, text string, l lang.Language) string {
	translated, err := s.primary.Translate(ctx, text, l)
	if err != nil {
		s.logger.Debug("primary translation provider failed",
			logger.Component("translate"), logger.Provider(s.primary.Name()),
			logger.Lang(l), logger.Error(err))
		translated, err = s.fallback.Translate(ctx, text, l)
	}

	if err != nil || strings.TrimSpace(translated) == "" {
		if err != nil {
			s.logger.Debug("all translation providers failed, caching source text",
				logger.Component("translate"), logger.Lang(l), logger.Error(err))
		}
		// Negative cache: in memory only, so a restart retries.
		s.store.SetTransient(l, text, text)
		return text
	}

	s.store.Set(ctx, l, text, translated)
	if s.bus != nil {
		if err := s.bus.Publish(event.NewSignal(event.TranslationUpdated)); err != nil {
			s.logger.Debug("translation update signal not delivered",
				logger.Component("translate"), logger.Error(err))
		}
	}
	return translated
}
