package site

import (
	"context"
	"errors"
	"time"

	"github.com/forsaj/sitecontent/core/event"
	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/logger"
)

// Run drives the background refresh loop until ctx is canceled. It restores
// durable state, performs the initial fetch when the cache is cold, then:
//
//   - refetches the snapshot every poll interval, unconditionally, which
//     bounds staleness for multi-process editing;
//   - watches the durable content-version and language markers every watch
//     interval, picking up admin edits and language switches made by a
//     sibling process.
//
// A fetch failure leaves the previous snapshot serving and is only logged;
// content never goes blank once it has loaded once.
func (s *Service) Run(ctx context.Context) error {
	s.Restore(ctx)

	if _, ok := s.cache.Cached(); !ok {
		if err := s.Load(ctx); err != nil {
			if !errors.Is(err, context.Canceled) {
				s.logger.Error("initial content fetch failed",
					logger.Component("site"), logger.Error(err))
			}
		} else {
			s.publish(event.ContentChanged)
		}
	}

	s.mu.Lock()
	s.lastVersion = s.readMarker(ctx, kv.ContentVersionKey)
	s.mu.Unlock()

	poll := time.NewTicker(s.pollInterval)
	defer poll.Stop()
	watch := time.NewTicker(s.watchInterval)
	defer watch.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-poll.C:
			s.refresh(ctx)
		case <-watch.C:
			s.checkMarkers(ctx)
		}
	}
}

// refresh invalidates the snapshot and refetches it, broadcasting
// ContentChanged on success.
func (s *Service) refresh(ctx context.Context) {
	s.cache.Invalidate()
	if err := s.Load(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Error("content refresh failed, serving stale snapshot",
				logger.Component("site"), logger.Error(err))
		}
		return
	}
	s.publish(event.ContentChanged)
}

// checkMarkers reacts to durable-state changes made by sibling processes:
// a bumped content version forces an immediate refresh, a changed language
// preference is adopted and broadcast.
func (s *Service) checkMarkers(ctx context.Context) {
	version := s.readMarker(ctx, kv.ContentVersionKey)
	s.mu.Lock()
	versionChanged := version != s.lastVersion
	s.lastVersion = version
	s.mu.Unlock()
	if versionChanged {
		s.refresh(ctx)
	}

	saved, err := s.state.Get(ctx, kv.SiteLanguageKey)
	if err != nil {
		return
	}
	next := lang.Parse(saved)
	s.mu.Lock()
	langChanged := next != s.language
	s.language = next
	s.mu.Unlock()
	if langChanged {
		s.publish(event.LanguageChanged)
	}
}

func (s *Service) readMarker(ctx context.Context, key string) string {
	v, err := s.state.Get(ctx, key)
	if err != nil {
		return ""
	}
	return v
}
