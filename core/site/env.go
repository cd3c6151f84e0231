package site

import (
	"context"
	"net/http"

	"github.com/forsaj/sitecontent/core/config"
	"github.com/forsaj/sitecontent/core/event"
	"github.com/forsaj/sitecontent/core/kv"
	"github.com/forsaj/sitecontent/core/snapshot"
	"github.com/forsaj/sitecontent/core/translate"
)

// NewFromEnv assembles a fully wired facade from environment configuration.
// Durable state goes to redis when SITE_STATE_REDIS_URL is set, otherwise to
// a local state file, which is the single-process default.
func NewFromEnv(ctx context.Context, opts ...Option) (*Service, error) {
	var siteCfg Config
	if err := config.Load(&siteCfg); err != nil {
		return nil, err
	}
	var snapCfg snapshot.Config
	if err := config.Load(&snapCfg); err != nil {
		return nil, err
	}
	var redisCfg kv.RedisConfig
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}

	var state kv.Store
	if redisCfg.ConnectionURL != "" {
		redisStore, err := kv.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return nil, err
		}
		state = redisStore
	} else {
		state = kv.NewFile(siteCfg.StatePath)
	}

	bus := event.NewBus()

	client := snapshot.NewClient(snapCfg.BaseURL,
		snapshot.WithHTTPClient(&http.Client{Timeout: snapCfg.HTTPTimeout}),
		snapshot.WithVersionStore(state),
	)
	cache := snapshot.NewCache(client, snapshot.WithTTL(snapCfg.CacheTTL))

	store := translate.NewStore(state)
	translator := translate.NewService(store, translate.WithBus(bus))

	wired := append([]Option{
		WithBus(bus),
		WithPollInterval(siteCfg.PollInterval),
		WithWatchInterval(siteCfg.WatchInterval),
	}, opts...)

	return New(cache, translator, state, wired...), nil
}
