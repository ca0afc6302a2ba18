package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	flexerrors "github.com/matzehuels/flexgrid/pkg/errors"
)

// DefaultRedisPrefix namespaces flexgrid keys in a shared Redis database.
const DefaultRedisPrefix = "flexgrid:"

// RedisConfig configures [NewRedisCache].
type RedisConfig struct {
	Addr     string // host:port
	Password string
	DB       int
	// Prefix is prepended to every key. Empty means DefaultRedisPrefix.
	Prefix string
}

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection. Transient
// connection failures are retried with backoff.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (Cache, error) {
	if cfg.Addr == "" {
		return nil, flexerrors.New(flexerrors.ErrCodeInvalidInput, "redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	c := NewRedisCacheFromClient(client, cfg.Prefix)

	err := RetryWithBackoff(ctx, func() error {
		if err := client.Ping(ctx).Err(); err != nil {
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, flexerrors.Wrap(flexerrors.ErrCodeCache, errors.Join(ErrUnavailable, err), "connect to redis at %s", cfg.Addr)
	}
	return c, nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes the client on Close.
func NewRedisCacheFromClient(client redis.UniversalClient, prefix string) *RedisCache {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis get %s", key)
	}
	return data, true, nil
}

// Set stores a value with the given expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis set %s", key)
	}
	return nil
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis del %s", key)
	}
	return nil
}

// Clear deletes every key under the cache prefix. It scans incrementally
// instead of using KEYS so large databases are not blocked.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	const batch = 500
	count := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", batch).Iterator()
	keys := make([]string, 0, batch)
	flush := func() error {
		if len(keys) == 0 {
			return nil
		}
		n, err := c.client.Del(ctx, keys...).Result()
		count += int(n)
		keys = keys[:0]
		return err
	}
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == batch {
			if err := flush(); err != nil {
				return count, flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis clear")
			}
		}
	}
	if err := iter.Err(); err != nil {
		return count, flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis scan")
	}
	if err := flush(); err != nil {
		return count, flexerrors.Wrap(flexerrors.ErrCodeCache, err, "redis clear")
	}
	return count, nil
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
