package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"redirector/internal/config"
)

func newTestRedisRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})

	return &RedisRepository{
		client: client,
		cfg: &config.RedisConfig{
			Addr:     s.Addr(),
			Password: "",
			DB:       0,
		},
	}, s
}

func TestNewRedisRepository(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	cfg := &config.RedisConfig{
		Addr:     s.Addr(),
		Password: "",
		DB:       0,
	}

	repo := NewRedisRepository(cfg)

	assert.NotNil(t, repo)
	assert.NotNil(t, repo.client)
	assert.Equal(t, cfg, repo.cfg)
	assert.NoError(t, repo.Ping(context.Background()))

	// Close connection after test
	repo.Close()
}

func TestRedisRepository_Clicks(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	count, err := repo.GetClicks(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 1; i <= 3; i++ {
		count, err = repo.IncrementClicks(ctx, "promo")
		require.NoError(t, err)
		assert.Equal(t, int64(i), count)
	}

	count, err = repo.GetClicks(ctx, "promo")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// The counter never expires
	assert.Equal(t, time.Duration(0), s.TTL("redirect:clicks:promo"))
}

func TestRedisRepository_IncrementClicks_Concurrent(t *testing.T) {
	repo, _ := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClicks(ctx, "busy")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := repo.GetClicks(ctx, "busy")
	require.NoError(t, err)
	assert.Equal(t, int64(50), count)
}

func TestRedisRepository_MarkVisitor(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	unique, err := repo.MarkVisitor(ctx, "promo", "203.0.113.0", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, unique)
	assert.Equal(t, 24*time.Hour, s.TTL("redirect:unique:promo:203.0.113.0"))

	unique, err = repo.MarkVisitor(ctx, "promo", "203.0.113.0", 24*time.Hour)
	require.NoError(t, err)
	assert.False(t, unique)

	// Another code or another IP is a different visitor
	unique, err = repo.MarkVisitor(ctx, "other", "203.0.113.0", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, unique)

	unique, err = repo.MarkVisitor(ctx, "promo", "198.51.100.0", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, unique)

	// After the window the same visitor counts again
	s.FastForward(24*time.Hour + time.Second)
	unique, err = repo.MarkVisitor(ctx, "promo", "203.0.113.0", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, unique)
}

func TestRedisRepository_HitWindow(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()

	ctx := context.Background()

	count, ttl, err := repo.HitWindow(ctx, "api:app", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, time.Minute, ttl)

	s.FastForward(20 * time.Second)

	count, ttl, err = repo.HitWindow(ctx, "api:app", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, 40*time.Second, ttl)

	s.FastForward(41 * time.Second)

	count, _, err = repo.HitWindow(ctx, "api:app", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRedisRepository_StoreDown(t *testing.T) {
	repo, s := newTestRedisRepo(t)
	defer repo.Close()
	s.Close()

	ctx := context.Background()

	_, err := repo.IncrementClicks(ctx, "promo")
	assert.Error(t, err)
	_, err = repo.MarkVisitor(ctx, "promo", "203.0.113.0", time.Hour)
	assert.Error(t, err)
	_, _, err = repo.HitWindow(ctx, "x", time.Minute)
	assert.Error(t, err)
}
