// Package config provides type-safe environment variable loading with
// per-type caching using Go generics. A .env file is loaded automatically
// on first use; parsing is handled by the caarlos0/env library.
//
// Basic usage:
//
//	import "github.com/forsaj/sitecontent/core/config"
//
//	type BackendConfig struct {
//		BaseURL string        `env:"SITE_CONTENT_BASE_URL" envDefault:"http://localhost:3000"`
//		Timeout time.Duration `env:"SITE_CONTENT_HTTP_TIMEOUT" envDefault:"10s"`
//	}
//
//	func main() {
//		var cfg BackendConfig
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure during startup
//		config.MustLoad(&cfg)
//	}
//
// Each configuration type is parsed once per process; subsequent Load calls
// for the same type return the cached value, so independent packages can
// load their own Config structs without re-reading the environment.
package config
