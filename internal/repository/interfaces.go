package repository

import (
	"context"
	"time"

	"redirector/internal/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SQLRepositoryInterface defines the interface for durable store operations
type SQLRepositoryInterface interface {
	GetDB() *gorm.DB
	Ping(ctx context.Context) error
	AutoMigrate() error
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByCode(ctx context.Context, code string) (*model.Link, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	UpdateLink(ctx context.Context, id int64, fields map[string]interface{}) error
	ListLinks(ctx context.Context, q model.LinkQuery) ([]model.Link, int64, error)
	SaveClickEvent(ctx context.Context, event *model.ClickEvent) error
	IncrementLinkCounters(ctx context.Context, id int64, unique bool) error
	ListActiveCounters(ctx context.Context) ([]model.LinkCounter, error)
	RaiseClicks(ctx context.Context, id, clicks int64) (bool, error)
	ClicksByDay(ctx context.Context, linkID int64, since time.Time) ([]model.DayCount, error)
	TopValues(ctx context.Context, linkID int64, column string, limit int) ([]model.ValueCount, error)
	GlobalStats(ctx context.Context) (*model.GlobalStats, error)
	GetAPIKeyByHash(ctx context.Context, hash string) (*model.APIKey, error)
	TouchAPIKey(ctx context.Context, id int64, at time.Time) error
	CreateAPIKeyIfAbsent(ctx context.Context, key *model.APIKey) (bool, error)
	Close() error
}

// RedisRepositoryInterface defines the interface for fast store operations
type RedisRepositoryInterface interface {
	GetClient() *redis.Client
	Ping(ctx context.Context) error
	IncrementClicks(ctx context.Context, code string) (int64, error)
	GetClicks(ctx context.Context, code string) (int64, error)
	MarkVisitor(ctx context.Context, code, ip string, ttl time.Duration) (bool, error)
	HitWindow(ctx context.Context, identifier string, window time.Duration) (int64, time.Duration, error)
	Close() error
}

var (
	_ SQLRepositoryInterface   = (*SQLRepository)(nil)
	_ RedisRepositoryInterface = (*RedisRepository)(nil)
)
