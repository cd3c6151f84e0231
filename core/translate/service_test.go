package translate_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsaj/sitecontent/core/event"
	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/translate"
)

// fakeProvider answers with a fixed suffix or error and counts calls.
type fakeProvider struct {
	name   string
	suffix string
	err    error
	calls  atomic.Int64
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Translate(_ context.Context, text string, target lang.Language) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return text + f.suffix, nil
}

func newService(t *testing.T, primary, fallback translate.Provider, opts ...translate.ServiceOption) *translate.Service {
	t.Helper()
	store := translate.NewStore(kv.NewMemory())
	all := append([]translate.ServiceOption{
		translate.WithPrimary(primary),
		translate.WithFallback(fallback),
	}, opts...)
	return translate.NewService(store, all...)
}

func TestServiceTranslate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("source language passes through without network", func(t *testing.T) {
		primary := &fakeProvider{name: "p", suffix: " [ru]"}
		svc := newService(t, primary, &fakeProvider{name: "f"})

		got := svc.Translate(ctx, "Salam dünya", lang.AZ)
		assert.Equal(t, "Salam dünya", got)
		assert.Zero(t, primary.calls.Load())
	})

	t.Run("untranslatable text passes through", func(t *testing.T) {
		primary := &fakeProvider{name: "p"}
		svc := newService(t, primary, &fakeProvider{name: "f"})

		assert.Equal(t, "HERO_TEXT", svc.Translate(ctx, "HERO_TEXT", lang.RU))
		assert.Equal(t, "http://forsaj.az", svc.Translate(ctx, "http://forsaj.az", lang.RU))
		assert.Zero(t, primary.calls.Load())
	})

	t.Run("primary provider wins", func(t *testing.T) {
		primary := &fakeProvider{name: "p", suffix: " [ru]"}
		fallback := &fakeProvider{name: "f", suffix: " [fb]"}
		svc := newService(t, primary, fallback)

		got := svc.Translate(ctx, "Salam dünya", lang.RU)
		assert.Equal(t, "Salam dünya [ru]", got)
		assert.EqualValues(t, 1, primary.calls.Load())
		assert.Zero(t, fallback.calls.Load())
	})

	t.Run("second call hits the cache", func(t *testing.T) {
		primary := &fakeProvider{name: "p", suffix: " [ru]"}
		svc := newService(t, primary, &fakeProvider{name: "f"})

		first := svc.Translate(ctx, "Salam dünya", lang.RU)
		second := svc.Translate(ctx, "Salam dünya", lang.RU)

		assert.Equal(t, first, second)
		assert.EqualValues(t, 1, primary.calls.Load(), "repeat translation must not refetch")
	})

	t.Run("fallback covers a failing primary", func(t *testing.T) {
		primary := &fakeProvider{name: "p", err: errors.New("quota exceeded")}
		fallback := &fakeProvider{name: "f", suffix: " [fb]"}
		svc := newService(t, primary, fallback)

		got := svc.Translate(ctx, "Salam dünya", lang.ENG)
		assert.Equal(t, "Salam dünya [fb]", got)
		assert.EqualValues(t, 1, primary.calls.Load())
		assert.EqualValues(t, 1, fallback.calls.Load())
	})

	t.Run("total failure caches the source text", func(t *testing.T) {
		primary := &fakeProvider{name: "p", err: errors.New("down")}
		fallback := &fakeProvider{name: "f", err: errors.New("also down")}
		svc := newService(t, primary, fallback)

		got := svc.Translate(ctx, "Salam dünya", lang.RU)
		assert.Equal(t, "Salam dünya", got)

		// The negative entry prevents any further provider traffic.
		got = svc.Translate(ctx, "Salam dünya", lang.RU)
		assert.Equal(t, "Salam dünya", got)
		assert.EqualValues(t, 1, primary.calls.Load())
		assert.EqualValues(t, 1, fallback.calls.Load())
	})

	t.Run("success broadcasts a translation update", func(t *testing.T) {
		bus := event.NewBus()
		defer bus.Close()
		sub := bus.Subscribe(context.Background())

		svc := newService(t, &fakeProvider{name: "p", suffix: " [ru]"}, &fakeProvider{name: "f"},
			translate.WithBus(bus))

		svc.Translate(ctx, "Salam dünya", lang.RU)

		select {
		case sig := <-sub.Signals():
			assert.Equal(t, event.TranslationUpdated, sig.Type)
		case <-time.After(time.Second):
			t.Fatal("expected a TranslationUpdated signal")
		}
	})

	t.Run("failure broadcasts nothing", func(t *testing.T) {
		bus := event.NewBus()
		defer bus.Close()
		sub := bus.Subscribe(context.Background())

		svc := newService(t, &fakeProvider{name: "p", err: errors.New("down")},
			&fakeProvider{name: "f", err: errors.New("down")},
			translate.WithBus(bus))

		svc.Translate(ctx, "Salam dünya", lang.RU)

		select {
		case <-sub.Signals():
			t.Fatal("no signal expected for a failed translation")
		case <-time.After(50 * time.Millisecond):
		}
	})
}

func TestServiceCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("source language is always cached", func(t *testing.T) {
		svc := newService(t, &fakeProvider{name: "p"}, &fakeProvider{name: "f"})
		got, ok := svc.Cached("Salam", lang.AZ)
		assert.True(t, ok)
		assert.Equal(t, "Salam", got)
	})

	t.Run("miss before translation, hit after", func(t *testing.T) {
		svc := newService(t, &fakeProvider{name: "p", suffix: " [ru]"}, &fakeProvider{name: "f"})

		_, ok := svc.Cached("Salam dünya", lang.RU)
		assert.False(t, ok)

		svc.Translate(ctx, "Salam dünya", lang.RU)

		got, ok := svc.Cached("Salam dünya", lang.RU)
		require.True(t, ok)
		assert.Equal(t, "Salam dünya [ru]", got)
	})
}

func TestServicePrefetch(t *testing.T) {
	t.Parallel()

	primary := &fakeProvider{name: "p", suffix: " [eng]"}
	svc := newService(t, primary, &fakeProvider{name: "f"})

	svc.Prefetch("Salam dünya", lang.ENG)

	assert.Eventually(t, func() bool {
		got, ok := svc.Cached("Salam dünya", lang.ENG)
		return ok && got == "Salam dünya [eng]"
	}, time.Second, 10*time.Millisecond, "background translation should land in the cache")
}
