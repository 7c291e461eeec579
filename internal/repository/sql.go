package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"redirector/internal/config"
	"redirector/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a unique index
	ErrDuplicate = errors.New("duplicate record")
)

// groupable columns of click_events
var statColumns = map[string]bool{
	"country":     true,
	"device_type": true,
	"referer":     true,
}

// sortable columns of links
var linkOrderColumns = map[string]string{
	"clicks":    "clicks",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// SQLRepository handles durable storage through GORM
type SQLRepository struct {
	db *gorm.DB
}

// NewSQLRepository opens the configured database and migrates the schema
func NewSQLRepository(cfg *config.DatabaseConfig) (*SQLRepository, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.MySQL.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	repo := NewSQLRepositoryWithDB(db)
	if err := repo.AutoMigrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info().Str("driver", cfg.Driver).Msg("Database connected successfully")

	return repo, nil
}

// NewSQLRepositoryWithDB wraps an already opened connection
func NewSQLRepositoryWithDB(db *gorm.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

// GormConfig returns the GORM settings shared by every dialect
func GormConfig() *gorm.Config {
	// Configure GORM logger
	var gormLogger logger.Interface
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	return &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// AutoMigrate creates or updates the tables
func (r *SQLRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&model.Link{}, &model.ClickEvent{}, &model.APIKey{})
}

// GetDB returns the GORM DB instance
func (r *SQLRepository) GetDB() *gorm.DB {
	return r.db
}

// Ping checks the connection
func (r *SQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateLink inserts a link
func (r *SQLRepository) CreateLink(ctx context.Context, link *model.Link) error {
	err := r.db.WithContext(ctx).Create(link).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

// GetLinkByCode retrieves a link by code regardless of its state
func (r *SQLRepository) GetLinkByCode(ctx context.Context, code string) (*model.Link, error) {
	var link model.Link
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// ExistsByCode checks if a code is taken
func (r *SQLRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// UpdateLink applies column updates to the link with the given id
func (r *SQLRepository) UpdateLink(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ListLinks returns one page of active links and the total matching count
func (r *SQLRepository) ListLinks(ctx context.Context, q model.LinkQuery) ([]model.Link, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("is_active = ?", true)

	if q.Source != "" {
		query = query.Where("source = ?", q.Source)
	}
	if q.SourceApp != "" {
		query = query.Where("source_app = ?", q.SourceApp)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		query = query.Where("(LOWER(code) LIKE ? OR LOWER(title) LIKE ? OR LOWER(target_url) LIKE ?)", pattern, pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := linkOrderColumns[q.OrderBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(q.Order, "asc") {
		direction = "ASC"
	}

	var links []model.Link
	err := query.
		Order(column + " " + direction).
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&links).Error
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

// SaveClickEvent inserts a click event
func (r *SQLRepository) SaveClickEvent(ctx context.Context, event *model.ClickEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// IncrementLinkCounters adds one click, and one unique click when unique is set
func (r *SQLRepository) IncrementLinkCounters(ctx context.Context, id int64, unique bool) error {
	columns := map[string]interface{}{
		"clicks": gorm.Expr("clicks + ?", 1),
	}
	if unique {
		columns["unique_clicks"] = gorm.Expr("unique_clicks + ?", 1)
	}
	return r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ?", id).
		UpdateColumns(columns).Error
}

// ListActiveCounters returns the durable click count of every active link
func (r *SQLRepository) ListActiveCounters(ctx context.Context) ([]model.LinkCounter, error) {
	var counters []model.LinkCounter
	err := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Select("id", "code", "clicks").
		Where("is_active = ?", true).
		Order("id").
		Find(&counters).Error
	return counters, err
}

// RaiseClicks sets the durable click count to clicks unless it is already at
// least that high. It reports whether a row changed.
func (r *SQLRepository) RaiseClicks(ctx context.Context, id, clicks int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ? AND clicks < ?", id, clicks).
		UpdateColumn("clicks", clicks)
	return result.RowsAffected > 0, result.Error
}

// ClicksByDay counts the clicks of a link per calendar day since the given instant
func (r *SQLRepository) ClicksByDay(ctx context.Context, linkID int64, since time.Time) ([]model.DayCount, error) {
	day := r.dayExpr("clicked_at")

	var rows []struct {
		Day   string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ClickEvent{}).
		Select(day+" AS day, COUNT(*) AS total").
		Where("link_id = ? AND clicked_at >= ?", linkID, since).
		Group(day).
		Order("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.DayCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.DayCount{Date: row.Day, Count: row.Total})
	}
	return out, nil
}

// TopValues returns the most frequent non-empty values of a click_events column
func (r *SQLRepository) TopValues(ctx context.Context, linkID int64, column string, limit int) ([]model.ValueCount, error) {
	if !statColumns[column] {
		return nil, fmt.Errorf("column %q cannot be grouped", column)
	}

	var rows []struct {
		Value string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.ClickEvent{}).
		Select(column+" AS value, COUNT(*) AS total").
		Where("link_id = ? AND "+column+" IS NOT NULL AND "+column+" <> ''", linkID).
		Group(column).
		Order("total DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]model.ValueCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, model.ValueCount{Value: row.Value, Count: row.Total})
	}
	return out, nil
}

// GlobalStats summarizes every link
func (r *SQLRepository) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	var stats model.GlobalStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Link{}).Count(&stats.TotalLinks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Link{}).Where("is_active = ?", true).Count(&stats.ActiveLinks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Link{}).Select("COALESCE(SUM(clicks), 0)").Scan(&stats.TotalClicks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Link{}).Where("commentary IS NOT NULL AND commentary <> ''").Count(&stats.LinksWithCommentary).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetAPIKeyByHash retrieves an API key by the hash of the raw key
func (r *SQLRepository) GetAPIKeyByHash(ctx context.Context, hash string) (*model.APIKey, error) {
	var key model.APIKey
	err := r.db.WithContext(ctx).
		Where("key_hash = ?", hash).
		First(&key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

// TouchAPIKey records a use of the key
func (r *SQLRepository) TouchAPIKey(ctx context.Context, id int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.APIKey{}).
		Where("id = ?", id).
		UpdateColumn("last_used_at", at).Error
}

// CreateAPIKeyIfAbsent inserts key unless one with the same hash exists.
// It reports whether a row was inserted.
func (r *SQLRepository) CreateAPIKeyIfAbsent(ctx context.Context, key *model.APIKey) (bool, error) {
	exists, err := r.apiKeyExists(ctx, key.KeyHash)
	if err != nil || exists {
		return false, err
	}

	err = r.db.WithContext(ctx).Create(key).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return err == nil, err
}

func (r *SQLRepository) apiKeyExists(ctx context.Context, hash string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.APIKey{}).
		Where("key_hash = ?", hash).
		Count(&count).Error
	return count > 0, err
}

// Close closes the database connection
func (r *SQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// dayExpr formats a timestamp column as YYYY-MM-DD in the current dialect
func (r *SQLRepository) dayExpr(column string) string {
	switch r.db.Dialector.Name() {
	case "postgres":
		return "TO_CHAR(" + column + ", 'YYYY-MM-DD')"
	case "sqlite":
		return "strftime('%Y-%m-%d', " + column + ")"
	default:
		return "DATE_FORMAT(" + column + ", '%Y-%m-%d')"
	}
}
