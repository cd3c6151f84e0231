package snapshot

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/forsaj/sitecontent/core/content"
	"github.com/forsaj/sitecontent/core/logger"
)

// DefaultTTL bounds how long a snapshot is served without refetching.
const DefaultTTL = 10 * time.Second

// Source supplies a fresh snapshot of all pages.
type Source interface {
	Fetch(ctx context.Context) ([]content.Page, error)
}

// Cache is a time-boxed snapshot cache with single-flight fetch
// de-duplication: concurrent callers of Get during a miss share one
// underlying fetch. The envelope is replaced atomically, so readers never
// observe a half-updated snapshot, and a failed fetch keeps the previous
// stale snapshot in place so transient backend trouble degrades to stale
// data rather than blank content.
type Cache struct {
	source Source
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.RWMutex
	pages     []content.Page
	fetchedAt time.Time
	loaded    bool

	group singleflight.Group
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithTTL sets the snapshot freshness window. Default 10s.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithCacheLogger configures structured logging.
func WithCacheLogger(l *slog.Logger) CacheOption {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCache creates a snapshot cache over the given source.
func NewCache(source Source, opts ...CacheOption) *Cache {
	c := &Cache{
		source: source,
		ttl:    DefaultTTL,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the snapshot, fetching only when the cached one is older than
// the TTL. On fetch failure the previous snapshot is retained and the error
// is returned to the caller.
func (c *Cache) Get(ctx context.Context) ([]content.Page, error) {
	if pages, ok := c.fresh(); ok {
		return pages, nil
	}

	v, err, _ := c.group.Do("snapshot", func() (any, error) {
		// A waiter that queued behind a completed fetch finds the
		// envelope fresh already.
		if pages, ok := c.fresh(); ok {
			return pages, nil
		}

		pages, err := c.source.Fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.pages = pages
		c.fetchedAt = time.Now()
		c.loaded = true
		c.mu.Unlock()
		return pages, nil
	})
	if err != nil {
		c.logger.Debug("snapshot fetch failed, previous snapshot retained",
			logger.Component("snapshot"), logger.Error(err))
		return nil, err
	}
	return v.([]content.Page), nil
}

// Cached returns the current snapshot regardless of age, and whether any
// snapshot has ever been stored. It never triggers a fetch.
func (c *Cache) Cached() ([]content.Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pages, c.loaded
}

// Invalidate expires the cached snapshot so the next Get refetches. The
// stale snapshot remains readable through Cached until replaced.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}

func (c *Cache) fresh() ([]content.Page, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fetchedAt.IsZero() || time.Since(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.pages, true
}
