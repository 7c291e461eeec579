package service

import (
	"context"
	"time"

	"redirector/internal/model"
)

// LinkStore defines the durable link operations (for testing)
type LinkStore interface {
	CreateLink(ctx context.Context, link *model.Link) error
	GetLinkByCode(ctx context.Context, code string) (*model.Link, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	UpdateLink(ctx context.Context, id int64, fields map[string]interface{}) error
	ListLinks(ctx context.Context, q model.LinkQuery) ([]model.Link, int64, error)
	ClicksByDay(ctx context.Context, linkID int64, since time.Time) ([]model.DayCount, error)
	TopValues(ctx context.Context, linkID int64, column string, limit int) ([]model.ValueCount, error)
	GlobalStats(ctx context.Context) (*model.GlobalStats, error)
}

// ClickStore defines the durable click operations (for testing)
type ClickStore interface {
	SaveClickEvent(ctx context.Context, event *model.ClickEvent) error
	IncrementLinkCounters(ctx context.Context, id int64, unique bool) error
}

// CounterStore defines the durable counter operations used by reconciliation
type CounterStore interface {
	ListActiveCounters(ctx context.Context) ([]model.LinkCounter, error)
	RaiseClicks(ctx context.Context, id, clicks int64) (bool, error)
}

// APIKeyStore defines the durable API key operations (for testing)
type APIKeyStore interface {
	GetAPIKeyByHash(ctx context.Context, hash string) (*model.APIKey, error)
	TouchAPIKey(ctx context.Context, id int64, at time.Time) error
	CreateAPIKeyIfAbsent(ctx context.Context, key *model.APIKey) (bool, error)
}

// FastStore defines the fast counter operations (for testing)
type FastStore interface {
	IncrementClicks(ctx context.Context, code string) (int64, error)
	GetClicks(ctx context.Context, code string) (int64, error)
	MarkVisitor(ctx context.Context, code, ip string, ttl time.Duration) (bool, error)
}

// WindowStore counts hits in fixed windows (for testing)
type WindowStore interface {
	HitWindow(ctx context.Context, identifier string, window time.Duration) (int64, time.Duration, error)
}

// ClickPublisher queues the durable half of a click recording
type ClickPublisher interface {
	SendClickEvent(ctx context.Context, msg *model.ClickEventMessage) error
}

// BloomServiceInterface defines the interface for Bloom Filter operations (for testing)
type BloomServiceInterface interface {
	Add(ctx context.Context, code string) error
	Exists(ctx context.Context, code string) (bool, error)
	IsAvailable(ctx context.Context) bool
}

// LinkServiceInterface defines the interface for link operations
type LinkServiceInterface interface {
	Resolve(ctx context.Context, code string) (*model.Link, error)
	Create(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error)
	Update(ctx context.Context, code string, req *model.UpdateLinkRequest) (*model.Link, error)
	Deactivate(ctx context.Context, code string) error
	List(ctx context.Context, q model.LinkQuery) ([]model.Link, int64, error)
	GetStats(ctx context.Context, code string) (*model.LinkStats, error)
	GlobalStats(ctx context.Context) (*model.GlobalStats, error)
}

// ClickRecorderInterface defines the interface for click recording
type ClickRecorderInterface interface {
	Record(ctx context.Context, linkID int64, code string, in model.ClickInput) model.RecordResult
}

// GeoResolverInterface defines the interface for IP geolocation
type GeoResolverInterface interface {
	Resolve(ctx context.Context, ip, edgeCountry string) model.GeoLocation
	Stats() model.GeoStats
}

// RateLimiterInterface defines the interface for fixed-window rate limiting
type RateLimiterInterface interface {
	Check(ctx context.Context, identifier string, limit int, window time.Duration) model.RateLimitResult
}

// ReconcilerInterface defines the interface for counter reconciliation
type ReconcilerInterface interface {
	Sync(ctx context.Context) (*model.SyncResult, error)
	Status(ctx context.Context) (*model.SyncStatus, error)
}

// APIKeyServiceInterface defines the interface for API key validation
type APIKeyServiceInterface interface {
	Validate(ctx context.Context, rawKey string) (*model.APIKeyValidation, error)
}
