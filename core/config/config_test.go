package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forsaj/sitecontent/core/config"
)

func TestLoad(t *testing.T) {
	t.Run("parses env tags with defaults", func(t *testing.T) {
		type pollConfig struct {
			Interval time.Duration `env:"TEST_POLL_INTERVAL" envDefault:"15s"`
			Path     string        `env:"TEST_POLL_PATH" envDefault:"/api/site-content"`
		}

		var cfg pollConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 15*time.Second, cfg.Interval)
		assert.Equal(t, "/api/site-content", cfg.Path)
	})

	t.Run("reads environment values", func(t *testing.T) {
		t.Setenv("TEST_BASE_URL", "https://forsaj.example")

		type backendConfig struct {
			BaseURL string `env:"TEST_BASE_URL" envDefault:"http://localhost:3000"`
		}

		var cfg backendConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "https://forsaj.example", cfg.BaseURL)
	})

	t.Run("caches per type", func(t *testing.T) {
		t.Setenv("TEST_CACHED_VALUE", "first")

		type cachedConfig struct {
			Value string `env:"TEST_CACHED_VALUE"`
		}

		var first cachedConfig
		require.NoError(t, config.Load(&first))
		assert.Equal(t, "first", first.Value)

		t.Setenv("TEST_CACHED_VALUE", "second")

		var again cachedConfig
		require.NoError(t, config.Load(&again))
		assert.Equal(t, "first", again.Value, "same type must return the cached value")
	})

	t.Run("invalid value surfaces a parse error", func(t *testing.T) {
		t.Setenv("TEST_BAD_DURATION", "not-a-duration")

		type badConfig struct {
			TTL time.Duration `env:"TEST_BAD_DURATION"`
		}

		var cfg badConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "badConfig")
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on bad environment", func(t *testing.T) {
		t.Setenv("TEST_MUST_DURATION", "nope")

		type mustConfig struct {
			TTL time.Duration `env:"TEST_MUST_DURATION"`
		}

		assert.Panics(t, func() {
			var cfg mustConfig
			config.MustLoad(&cfg)
		})
	})
}
