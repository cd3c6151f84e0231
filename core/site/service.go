package site

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/forsaj/sitecontent/core/content"
	"github.com/forsaj/sitecontent/core/event"
	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/logger"
	"github.com/forsaj/sitecontent/core/snapshot"
	"github.com/forsaj/sitecontent/core/translate"
)

const (
	// DefaultPollInterval bounds content staleness when the admin panel
	// edits from another process: the snapshot is unconditionally
	// invalidated and refetched this often.
	DefaultPollInterval = 15 * time.Second

	// DefaultWatchInterval is how often the durable state markers
	// (content version, language preference) are checked for
	// cross-process changes.
	DefaultWatchInterval = 2 * time.Second
)

// Config holds facade settings loaded from the environment.
type Config struct {
	PollInterval  time.Duration `env:"SITE_CONTENT_POLL_INTERVAL" envDefault:"15s"`
	WatchInterval time.Duration `env:"SITE_STATE_WATCH_INTERVAL" envDefault:"2s"`
	StatePath     string        `env:"SITE_STATE_PATH" envDefault:".forsaj_state.json"`
}

// Service is the content facade: it composes the snapshot cache, the
// translation service, durable state and the signal bus behind the small
// read surface page components consume. Construct one per process and
// inject it; all state lives on the instance, so tests can run isolated
// services side by side.
type Service struct {
	cache      *snapshot.Cache
	translator *translate.Service
	state      kv.Store
	bus        *event.Bus
	logger     *slog.Logger

	pollInterval  time.Duration
	watchInterval time.Duration

	mu          sync.RWMutex
	language    lang.Language
	lastVersion string
}

// Option configures a Service.
type Option func(*Service)

// WithBus wires the signal bus shared with the translation service.
func WithBus(b *event.Bus) Option {
	return func(s *Service) {
		if b != nil {
			s.bus = b
		}
	}
}

// WithLogger configures structured logging.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPollInterval sets the unconditional snapshot refresh interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

// WithWatchInterval sets the durable-state marker check interval.
func WithWatchInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.watchInterval = d
		}
	}
}

// New creates the facade. The language starts at the source language until
// Restore or Run picks up a persisted preference.
func New(cache *snapshot.Cache, translator *translate.Service, state kv.Store, opts ...Option) *Service {
	s := &Service{
		cache:         cache,
		translator:    translator,
		state:         state,
		bus:           event.NewBus(),
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		pollInterval:  DefaultPollInterval,
		watchInterval: DefaultWatchInterval,
		language:      lang.Default,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore hydrates durable client state: the persisted language preference
// and previously cached translations. Missing state leaves the defaults.
func (s *Service) Restore(ctx context.Context) {
	s.translator.Load(ctx)

	saved, err := s.state.Get(ctx, kv.SiteLanguageKey)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.language = lang.Parse(saved)
	s.mu.Unlock()
}

// Load fetches the content snapshot synchronously. Useful at startup when
// the first render should not race the background refresh.
func (s *Service) Load(ctx context.Context) error {
	_, err := s.cache.Get(ctx)
	return err
}

// Language returns the current display language.
func (s *Service) Language() lang.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage switches the display language. Unsupported input falls back
// to the source language. The choice is persisted and LanguageChanged is
// broadcast so every mounted consumer re-resolves its text.
func (s *Service) SetLanguage(ctx context.Context, l lang.Language) {
	if !l.Valid() {
		l = lang.Default
	}

	if err := s.state.Set(ctx, kv.SiteLanguageKey, string(l)); err != nil {
		s.logger.Warn("failed to persist language preference",
			logger.Component("site"), logger.Lang(l), logger.Error(err))
	}

	s.mu.Lock()
	changed := s.language != l
	s.language = l
	s.mu.Unlock()

	if changed {
		s.publish(event.LanguageChanged)
	}
}

// Subscribe attaches a consumer to the facade's signal bus. Consumers
// re-resolve their content on any received signal.
func (s *Service) Subscribe(ctx context.Context) *event.Subscription {
	return s.bus.Subscribe(ctx)
}

// Pages returns the current snapshot, however stale. It never blocks on
// the network; Run and Load keep the snapshot moving.
func (s *Service) Pages() []content.Page {
	pages, _ := s.cache.Cached()
	return pages
}

// GetPage looks a page up by id, case-insensitively. Returns nil when the
// page is absent from the current snapshot.
func (s *Service) GetPage(id string) *content.Page {
	return content.FindPage(s.Pages(), id)
}

// Text resolves the display text for a selector on the given page. For a
// non-source language a cached translation is returned when available;
// otherwise translation is requested in the background and this call
// returns the source-language text.
func (s *Service) Text(pageID string, sel content.Selector, def string) string {
	page := s.GetPage(pageID)
	if page == nil {
		return def
	}

	l := s.Language()
	resolved := content.ResolveSection(page.Sections, sel, l, def)

	if l == lang.Default || !translate.CanTranslate(resolved) {
		return resolved
	}
	if cached, ok := s.translator.Cached(resolved, l); ok {
		return cached
	}
	s.translator.Prefetch(resolved, l)
	return resolved
}

// Image resolves an image slot on the given page. A keyed miss on a page
// that has any configured image yields the first image rather than the
// hardcoded default.
func (s *Service) Image(pageID string, sel content.Selector, defPath string) content.Image {
	page := s.GetPage(pageID)
	if page == nil {
		return content.Image{Path: defPath}
	}
	return content.ResolveImage(page.Images, sel, defPath)
}

// URL resolves the url field of a section on the given page.
func (s *Service) URL(pageID string, sel content.Selector, defURL string) string {
	page := s.GetPage(pageID)
	if page == nil {
		return defURL
	}
	return content.ResolveURL(page.Sections, sel, s.Language(), defURL)
}

// Page returns a view scoped to one page, the form most components use.
func (s *Service) Page(id string) *View {
	return &View{svc: s, pageID: id}
}

// Close tears down the signal bus. In-flight translations are allowed to
// complete; their update signals simply go nowhere.
func (s *Service) Close() {
	s.bus.Close()
}

func (s *Service) publish(t event.Type) {
	if err := s.bus.Publish(event.NewSignal(t)); err != nil {
		s.logger.Debug("signal not delivered",
			logger.Component("site"), slog.String("signal", string(t)), logger.Error(err))
	}
}
