package upstream

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"posdash/internal/platform/logger"
)

const (
	cacheVersionKey = "posdash:upstream:version"
	keyPrefix       = "posdash:upstream"
)

// Cache stores raw upstream responses in Redis under versioned keys
// A nil Cache, or one without a client, always calls the loader.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewCache returns a cache with the given ttl
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl, log: *logger.Named("upstream.cache")}
}

// Version returns the current key version, initialising it when missing
func (c *Cache) Version(ctx context.Context) (int64, error) {
	if c == nil || c.client == nil {
		return 0, nil
	}
	ver, err := c.client.Get(ctx, cacheVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		if err := c.client.SetNX(ctx, cacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	if ver <= 0 {
		ver = 1
	}
	return ver, nil
}

// BuildKey joins parts under the current version
func (c *Cache) BuildKey(ctx context.Context, parts ...string) (string, error) {
	joined := strings.Join(append([]string{keyPrefix}, parts...), ":")
	if c == nil || c.client == nil {
		return joined, nil
	}
	ver, err := c.Version(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s:v%d", joined, ver), nil
}

// Fetch returns the cached payload for key or loads and stores it
// Redis failures are logged and the loader result is served uncached.
func (c *Cache) Fetch(ctx context.Context, key string, loader func(context.Context) ([]byte, error)) ([]byte, error) {
	if loader == nil {
		return nil, errors.New("upstream cache: loader required")
	}
	if c == nil || c.client == nil {
		return loader(ctx)
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return payload, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("upstream cache read failed")
	}

	payload, err = loader(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("upstream cache write failed")
	}
	return payload, nil
}

// Bump invalidates every cached entry by moving to the next version
func (c *Cache) Bump(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Incr(ctx, cacheVersionKey).Err()
}

// Ping checks the redis connection
func (c *Cache) Ping(ctx context.Context) error {
	if c == nil || c.client == nil {
		return errors.New("upstream cache: no redis client")
	}
	return c.client.Ping(ctx).Err()
}
