package service

import (
	"context"
	"testing"
	"time"

	"redirector/internal/cache"
	"redirector/internal/config"
	"redirector/internal/model"
	"redirector/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testCacheConfig = &config.CacheConfig{
	LinkTTL:   5 * time.Minute,
	UniqueTTL: 24 * time.Hour,
}

// testEnv wires the services to an in-memory SQLite database and a miniredis server
type testEnv struct {
	sql   *repository.SQLRepository
	redis *repository.RedisRepository
	mr    *miniredis.Miniredis
	cache *cache.Cache
	bloom *BloomService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	sqlRepo := repository.NewSQLRepositoryWithDB(db)
	require.NoError(t, sqlRepo.AutoMigrate())

	mr := miniredis.RunT(t)
	redisRepo := repository.NewRedisRepository(&config.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { redisRepo.Close() })

	return &testEnv{
		sql:   sqlRepo,
		redis: redisRepo,
		mr:    mr,
		cache: cache.New(redisRepo.GetClient()),
		bloom: NewBloomService(redisRepo.GetClient(), testBloomConfig),
	}
}

func (e *testEnv) linkService(release bool) *LinkService {
	return NewLinkService(e.sql, e.cache, e.bloom, testCacheConfig, release)
}

func (e *testEnv) seedLink(t *testing.T, code string, mutate func(*model.Link)) *model.Link {
	t.Helper()
	link := &model.Link{
		Code:         code,
		TargetURL:    "https://example.com/" + code,
		RedirectType: model.RedirectMonetized,
		DelaySeconds: 5,
		ShowAds:      true,
		Source:       model.SourceManual,
		IsActive:     true,
	}
	if mutate != nil {
		mutate(link)
	}
	require.NoError(t, e.sql.CreateLink(context.Background(), link))
	return link
}

func ptr[T any](v T) *T {
	return &v
}
