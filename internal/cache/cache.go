package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Namespace groups cache entries under a key prefix with a shared TTL
type Namespace struct {
	Prefix string
	TTL    time.Duration
}

// Key returns the full cache key for id
func (n Namespace) Key(id string) string {
	return n.Prefix + id
}

// Cache is a blob cache over Redis. Every failure is logged and reported as a miss.
type Cache struct {
	codec *cache.Cache
}

// New creates a Cache backed by rdb
func New(rdb *redis.Client) *Cache {
	return &Cache{
		codec: cache.New(&cache.Options{
			Redis: rdb,
		}),
	}
}

// Lookup reads id from ns into a new T. A miss or a store error returns false.
func Lookup[T any](ctx context.Context, c *Cache, ns Namespace, id string) (*T, bool) {
	key := ns.Key(id)
	var value T
	if err := c.codec.Get(ctx, key, &value); err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed, treating as miss")
		}
		return nil, false
	}
	return &value, true
}

// Put stores value under id in ns
func Put[T any](ctx context.Context, c *Cache, ns Namespace, id string, value *T) {
	key := ns.Key(id)
	err := c.codec.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: value,
		TTL:   ns.TTL,
	})
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Invalidate deletes id from ns
func Invalidate(ctx context.Context, c *Cache, ns Namespace, id string) {
	key := ns.Key(id)
	if err := c.codec.Delete(ctx, key); err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		log.Warn().Err(err).Str("key", key).Msg("Cache invalidation failed")
	}
}

// ReadThrough returns the cached value for id, or calls load on a miss. A loaded
// value is cached only when load returns it non-nil without error.
func ReadThrough[T any](ctx context.Context, c *Cache, ns Namespace, id string, load func(context.Context) (*T, error)) (*T, bool, error) {
	if value, ok := Lookup[T](ctx, c, ns, id); ok {
		return value, true, nil
	}

	value, err := load(ctx)
	if err != nil {
		return nil, false, err
	}
	if value != nil {
		Put(ctx, c, ns, id, value)
	}
	return value, false, nil
}
