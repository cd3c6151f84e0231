package translate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/lang"
	"github.com/forsaj/sitecontent/core/translate"
)

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("miss on empty store", func(t *testing.T) {
		store := translate.NewStore(kv.NewMemory())
		_, ok := store.Get(lang.RU, "Salam")
		assert.False(t, ok)
	})

	t.Run("set then get", func(t *testing.T) {
		store := translate.NewStore(kv.NewMemory())
		store.Set(ctx, lang.RU, "Salam", "Привет")

		got, ok := store.Get(lang.RU, "Salam")
		require.True(t, ok)
		assert.Equal(t, "Привет", got)
	})

	t.Run("entries are keyed by exact source string", func(t *testing.T) {
		store := translate.NewStore(kv.NewMemory())
		store.Set(ctx, lang.RU, "Salam", "Привет")

		_, ok := store.Get(lang.RU, "salam")
		assert.False(t, ok)
		_, ok = store.Get(lang.ENG, "Salam")
		assert.False(t, ok)
	})

	t.Run("persists across instances", func(t *testing.T) {
		state := kv.NewMemory()

		first := translate.NewStore(state)
		first.Set(ctx, lang.ENG, "Sürət həvəskarları üçün", "For speed enthusiasts")
		first.Set(ctx, lang.RU, "Qoşul", "Присоединяйся")

		second := translate.NewStore(state)
		second.Load(ctx)

		got, ok := second.Get(lang.ENG, "Sürət həvəskarları üçün")
		require.True(t, ok)
		assert.Equal(t, "For speed enthusiasts", got)

		got, ok = second.Get(lang.RU, "Qoşul")
		require.True(t, ok)
		assert.Equal(t, "Присоединяйся", got)
	})

	t.Run("transient entries serve the session but are not persisted", func(t *testing.T) {
		state := kv.NewMemory()

		first := translate.NewStore(state)
		first.SetTransient(lang.RU, "Salam", "Salam")

		got, ok := first.Get(lang.RU, "Salam")
		require.True(t, ok)
		assert.Equal(t, "Salam", got)

		second := translate.NewStore(state)
		second.Load(ctx)
		_, ok = second.Get(lang.RU, "Salam")
		assert.False(t, ok, "transient entry must not survive a reload")
	})

	t.Run("corrupt persisted blob starts empty", func(t *testing.T) {
		state := kv.NewMemory()
		require.NoError(t, state.Set(ctx, kv.TranslationCacheKey, "{broken"))

		store := translate.NewStore(state)
		store.Load(ctx)
		assert.Zero(t, store.Len(lang.RU))
	})

	t.Run("persist failure still serves the session", func(t *testing.T) {
		store := translate.NewStore(failingStore{})
		store.Set(ctx, lang.RU, "Salam", "Привет")

		got, ok := store.Get(lang.RU, "Salam")
		require.True(t, ok)
		assert.Equal(t, "Привет", got)
	})
}

// failingStore simulates unavailable durable storage.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, error) {
	return "", assert.AnError
}

func (failingStore) Set(context.Context, string, string) error {
	return assert.AnError
}

func (failingStore) Delete(context.Context, string) error {
	return assert.AnError
}
