package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Cache stores recently fetched prices. A miss returns ok=false with a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (decimal.Decimal, bool, error)
	Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error
}

// RedisCache is a Cache backed by Redis string keys.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOptions configures NewRedisCache.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheFromClient(client), nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, prefix: "price:"}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (decimal.Decimal, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Decimal{}, false, nil
	}
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	price, err := decimal.NewFromString(val)
	if err != nil {
		return decimal.Decimal{}, false, fmt.Errorf("redis value for %s: %w", key, err)
	}
	return price, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, price decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, price.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// CachedProvider is a read-through cache in front of another provider.
// Cache failures are logged and bypassed; they never fail a lookup.
type CachedProvider struct {
	inner Provider
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedProvider wraps inner with cache.
func NewCachedProvider(inner Provider, cache Cache, ttl time.Duration, log zerolog.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, cache: cache, ttl: ttl, log: log}
}

// Name implements Provider; cached prices are reported under the inner provider's name.
func (p *CachedProvider) Name() string { return p.inner.Name() }

// Price implements Provider.
func (p *CachedProvider) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	key := p.inner.Name() + ":" + symbol

	price, ok, err := p.cache.Get(ctx, key)
	if err != nil {
		p.log.Warn().Err(err).Str("symbol", symbol).Msg("price cache read failed")
	} else if ok {
		return price, nil
	}

	price, err = p.inner.Price(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}

	if err := p.cache.Set(ctx, key, price, p.ttl); err != nil {
		p.log.Warn().Err(err).Str("symbol", symbol).Msg("price cache write failed")
	}
	return price, nil
}
