package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redirector/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Redis key prefixes
	ClicksKeyPrefix    = "redirect:clicks:"
	UniqueKeyPrefix    = "redirect:unique:"
	RateLimitKeyPrefix = "ratelimit:"
)

// fixedWindowScript increments the window counter, arms its expiry on the first
// hit and returns the count together with the remaining TTL in milliseconds
var fixedWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
    redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
return {count, ttl}
`)

// RedisRepository handles Redis operations
type RedisRepository struct {
	client *redis.Client
	cfg    *config.RedisConfig
}

// NewRedisRepository creates a new Redis repository
func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("Failed to connect to Redis")
	} else {
		log.Info().Msg("Redis connected successfully")
	}

	return &RedisRepository{
		client: rdb,
		cfg:    cfg,
	}
}

// GetClient returns the Redis client
func (r *RedisRepository) GetClient() *redis.Client {
	return r.client
}

// Ping checks the connection
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// IncrementClicks atomically increments the fast click counter of a code
func (r *RedisRepository) IncrementClicks(ctx context.Context, code string) (int64, error) {
	return r.client.Incr(ctx, r.clicksKey(code)).Result()
}

// GetClicks returns the fast click counter of a code; an absent counter is 0
func (r *RedisRepository) GetClicks(ctx context.Context, code string) (int64, error) {
	count, err := r.client.Get(ctx, r.clicksKey(code)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return count, err
}

// MarkVisitor sets the visitor marker for (code, ip) if absent. It reports
// true when the marker was newly set, i.e. the visitor is unique in the window.
func (r *RedisRepository) MarkVisitor(ctx context.Context, code, ip string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.uniqueKey(code, ip), 1, ttl).Result()
}

// HitWindow counts one hit against the fixed window of identifier and returns
// the count so far and the time left in the window
func (r *RedisRepository) HitWindow(ctx context.Context, identifier string, window time.Duration) (int64, time.Duration, error) {
	res, err := fixedWindowScript.Run(ctx, r.client, []string{RateLimitKeyPrefix + identifier},
		window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("fixed window script error: %w", err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("fixed window script returned %d values", len(res))
	}
	return res[0], time.Duration(res[1]) * time.Millisecond, nil
}

// Close closes the Redis connection
func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Helper functions to build Redis keys

func (r *RedisRepository) clicksKey(code string) string {
	return ClicksKeyPrefix + code
}

func (r *RedisRepository) uniqueKey(code, ip string) string {
	return UniqueKeyPrefix + code + ":" + ip
}
