package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrEmptyRedisURL is returned when no connection URL is provided.
	ErrEmptyRedisURL = errors.New("kv: empty redis connection URL")

	// ErrRedisNotReady is returned when redis does not answer a ping
	// within the configured attempts.
	ErrRedisNotReady = errors.New("kv: redis did not become ready")
)

// RedisConfig holds connection settings for the shared state backend.
type RedisConfig struct {
	ConnectionURL string        `env:"SITE_STATE_REDIS_URL"`
	RetryAttempts int           `env:"SITE_STATE_REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"SITE_STATE_REDIS_RETRY_INTERVAL" envDefault:"5s"`
}

// Redis is a Store backed by a shared redis instance. It covers the
// multi-process scenario: the admin panel and the public site observe the
// same durable state, so a version bump written by one becomes visible to
// the watch loop of the other.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithKeyPrefix namespaces every key, allowing several deployments to share
// one redis database.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// NewRedis wraps an existing client as a Store.
func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	r := &Redis{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ConnectRedis creates a redis-backed store from configuration, verifying
// connectivity with a ping before returning. Transient startup failures are
// retried on the configured interval.
func ConnectRedis(ctx context.Context, cfg RedisConfig, opts ...RedisOption) (*Redis, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyRedisURL
	}
	redisOpts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, fmt.Errorf("kv: parse redis connection URL: %w", err)
	}

	client := redis.NewClient(redisOpts)

	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return NewRedis(client, opts...), nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			client.Close()
			return nil, ctx.Err()
		case <-time.After(cfg.RetryInterval):
		}
	}
	client.Close()
	return nil, fmt.Errorf("%w: %w", ErrRedisNotReady, lastErr)
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv: redis get: %w", err)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv: redis set: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("kv: redis delete: %w", err)
	}
	return nil
}

// Close releases the underlying client connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
