package repository

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"redirector/internal/config"
	"redirector/internal/model"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return gormDB, mock
}

func newSQLiteRepo(t *testing.T) *SQLRepository {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	repo := NewSQLRepositoryWithDB(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func seedLink(t *testing.T, repo *SQLRepository, code string, mutate func(*model.Link)) *model.Link {
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
	require.NoError(t, repo.CreateLink(context.Background(), link))
	return link
}

func TestNewSQLRepository_UnknownDriver(t *testing.T) {
	_, err := NewSQLRepository(&config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestSQLRepository_CreateLink(t *testing.T) {
	db, mock := newTestDB(t)

	repo := NewSQLRepositoryWithDB(db)
	ctx := context.Background()

	t.Run("create link successfully", func(t *testing.T) {
		link := &model.Link{
			Code:         "promo",
			TargetURL:    "https://example.com",
			RedirectType: model.RedirectMonetized,
			Source:       model.SourceManual,
			IsActive:     true,
		}

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `links`")).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateLink(ctx, link)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), link.ID)
	})

	t.Run("duplicate code", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `links`")).
			WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'promo'"})
		mock.ExpectRollback()

		err := repo.CreateLink(ctx, &model.Link{Code: "promo"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("other error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `links`")).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := repo.CreateLink(ctx, &model.Link{Code: "other"})
		assert.ErrorIs(t, err, assert.AnError)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_GetLinkByCode(t *testing.T) {
	db, mock := newTestDB(t)

	repo := NewSQLRepositoryWithDB(db)
	ctx := context.Background()

	t.Run("get existing link", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "code", "target_url", "redirect_type", "is_active", "clicks"}).
			AddRow(1, "promo", "https://example.com", "DIRECT", false, 12)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `links` WHERE code = ? ORDER BY `links`.`id` LIMIT ?")).
			WithArgs("promo", 1).
			WillReturnRows(rows)

		link, err := repo.GetLinkByCode(ctx, "promo")
		require.NoError(t, err)
		assert.Equal(t, "promo", link.Code)
		assert.Equal(t, model.RedirectDirect, link.RedirectType)
		assert.False(t, link.IsActive)
		assert.Equal(t, int64(12), link.Clicks)
	})

	t.Run("link not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `links` WHERE code = ?")).
			WithArgs("missing", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		link, err := repo.GetLinkByCode(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, link)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_IncrementLinkCounters(t *testing.T) {
	db, mock := newTestDB(t)

	repo := NewSQLRepositoryWithDB(db)
	ctx := context.Background()

	t.Run("repeat visitor", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `links` SET `clicks`=clicks + ? WHERE id = ?")).
			WithArgs(1, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.IncrementLinkCounters(ctx, 42, false))
	})

	t.Run("unique visitor", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `links` SET `clicks`=clicks + ?,`unique_clicks`=unique_clicks + ? WHERE id = ?")).
			WithArgs(1, 1, 42).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.IncrementLinkCounters(ctx, 42, true))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_RaiseClicks(t *testing.T) {
	db, mock := newTestDB(t)

	repo := NewSQLRepositoryWithDB(db)
	ctx := context.Background()

	t.Run("durable count behind", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `links` SET `clicks`=? WHERE id = ? AND clicks < ?")).
			WithArgs(100, 7, 100).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		changed, err := repo.RaiseClicks(ctx, 7, 100)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("durable count already ahead", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("UPDATE `links` SET `clicks`=? WHERE id = ? AND clicks < ?")).
			WithArgs(80, 7, 80).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		changed, err := repo.RaiseClicks(ctx, 7, 80)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_SaveClickEvent(t *testing.T) {
	db, mock := newTestDB(t)

	repo := NewSQLRepositoryWithDB(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `click_events`")).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.SaveClickEvent(context.Background(), &model.ClickEvent{LinkID: 1})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRepository_UpdateAndList(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	seedLink(t, repo, "alpha", func(l *model.Link) { l.Title = "Black Friday"; l.Clicks = 5 })
	seedLink(t, repo, "beta", func(l *model.Link) { l.Source = model.SourceBlog; l.SourceApp = "wp"; l.Clicks = 50 })
	seedLink(t, repo, "gamma", func(l *model.Link) { l.TargetURL = "https://shop.example.com/FRIDAY"; l.Clicks = 20 })
	hidden := seedLink(t, repo, "hidden", nil)

	require.NoError(t, repo.UpdateLink(ctx, hidden.ID, map[string]interface{}{"is_active": false}))

	t.Run("active only, ordered by clicks", func(t *testing.T) {
		links, total, err := repo.ListLinks(ctx, model.LinkQuery{Page: 1, Limit: 10, OrderBy: "clicks", Order: "desc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, links, 3)
		assert.Equal(t, "beta", links[0].Code)
		assert.Equal(t, "gamma", links[1].Code)
		assert.Equal(t, "alpha", links[2].Code)
	})

	t.Run("pagination keeps the total", func(t *testing.T) {
		links, total, err := repo.ListLinks(ctx, model.LinkQuery{Page: 2, Limit: 2, OrderBy: "clicks", Order: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, links, 1)
		assert.Equal(t, "beta", links[0].Code)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		links, total, err := repo.ListLinks(ctx, model.LinkQuery{Page: 1, Limit: 10, Search: "friday"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		codes := []string{links[0].Code, links[1].Code}
		assert.ElementsMatch(t, []string{"alpha", "gamma"}, codes)
	})

	t.Run("source filters", func(t *testing.T) {
		links, total, err := repo.ListLinks(ctx, model.LinkQuery{Page: 1, Limit: 10, Source: model.SourceBlog, SourceApp: "wp"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "beta", links[0].Code)
	})

	t.Run("deactivated link still readable by code", func(t *testing.T) {
		link, err := repo.GetLinkByCode(ctx, "hidden")
		require.NoError(t, err)
		assert.False(t, link.IsActive)

		exists, err := repo.ExistsByCode(ctx, "hidden")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("duplicate code maps to ErrDuplicate", func(t *testing.T) {
		err := repo.CreateLink(ctx, &model.Link{Code: "alpha", TargetURL: "https://x.example", RedirectType: model.RedirectDirect, Source: model.SourceAPI})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestSQLRepository_Counters(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	link := seedLink(t, repo, "count", func(l *model.Link) { l.Clicks = 80 })
	seedLink(t, repo, "off", func(l *model.Link) { l.IsActive = false })

	require.NoError(t, repo.IncrementLinkCounters(ctx, link.ID, true))
	require.NoError(t, repo.IncrementLinkCounters(ctx, link.ID, false))

	got, err := repo.GetLinkByCode(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, int64(82), got.Clicks)
	assert.Equal(t, int64(1), got.UniqueClicks)

	counters, err := repo.ListActiveCounters(ctx)
	require.NoError(t, err)
	require.Len(t, counters, 1)
	assert.Equal(t, model.LinkCounter{ID: link.ID, Code: "count", Clicks: 82}, counters[0])

	changed, err := repo.RaiseClicks(ctx, link.ID, 100)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.RaiseClicks(ctx, link.ID, 90)
	require.NoError(t, err)
	assert.False(t, changed)

	got, err = repo.GetLinkByCode(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Clicks)
}

func TestSQLRepository_Aggregates(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	link := seedLink(t, repo, "stats", func(l *model.Link) { l.Commentary = "worth it"; l.Clicks = 4 })
	seedLink(t, repo, "plain", func(l *model.Link) { l.Clicks = 6; l.IsActive = false })

	now := time.Now().UTC()
	yesterday := now.AddDate(0, 0, -1)
	events := []model.ClickEvent{
		{LinkID: link.ID, Country: "Brazil", DeviceType: "mobile", Referer: "https://t.co", ClickedAt: now},
		{LinkID: link.ID, Country: "Brazil", DeviceType: "desktop", ClickedAt: now},
		{LinkID: link.ID, Country: "Portugal", DeviceType: "mobile", Referer: "https://t.co", ClickedAt: yesterday},
		{LinkID: link.ID, DeviceType: "mobile", ClickedAt: now.AddDate(0, 0, -40)},
	}
	for i := range events {
		require.NoError(t, repo.SaveClickEvent(ctx, &events[i]))
	}

	days, err := repo.ClicksByDay(ctx, link.ID, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, []model.DayCount{
		{Date: yesterday.Format("2006-01-02"), Count: 1},
		{Date: now.Format("2006-01-02"), Count: 2},
	}, days)

	countries, err := repo.TopValues(ctx, link.ID, "country", 10)
	require.NoError(t, err)
	assert.Equal(t, []model.ValueCount{{Value: "Brazil", Count: 2}, {Value: "Portugal", Count: 1}}, countries)

	devices, err := repo.TopValues(ctx, link.ID, "device_type", 1)
	require.NoError(t, err)
	assert.Equal(t, []model.ValueCount{{Value: "mobile", Count: 3}}, devices)

	referers, err := repo.TopValues(ctx, link.ID, "referer", 10)
	require.NoError(t, err)
	assert.Equal(t, []model.ValueCount{{Value: "https://t.co", Count: 2}}, referers)

	_, err = repo.TopValues(ctx, link.ID, "ip; DROP TABLE links", 10)
	assert.Error(t, err)

	stats, err := repo.GlobalStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &model.GlobalStats{TotalLinks: 2, ActiveLinks: 1, TotalClicks: 10, LinksWithCommentary: 1}, stats)
}

func TestSQLRepository_APIKeys(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	key := &model.APIKey{KeyHash: strings.Repeat("a", 64), Name: "tv_app_wp", CanCreate: true, IsActive: true}
	created, err := repo.CreateAPIKeyIfAbsent(ctx, key)
	require.NoError(t, err)
	assert.True(t, created)

	again := &model.APIKey{KeyHash: strings.Repeat("a", 64), Name: "renamed", IsActive: true}
	created, err = repo.CreateAPIKeyIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)

	got, err := repo.GetAPIKeyByHash(ctx, strings.Repeat("a", 64))
	require.NoError(t, err)
	assert.Equal(t, "tv_app_wp", got.Name)
	assert.True(t, got.CanCreate)
	assert.False(t, got.CanDelete)
	assert.Nil(t, got.LastUsedAt)

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.TouchAPIKey(ctx, got.ID, at))

	got, err = repo.GetAPIKeyByHash(ctx, strings.Repeat("a", 64))
	require.NoError(t, err)
	require.NotNil(t, got.LastUsedAt)
	assert.True(t, at.Equal(*got.LastUsedAt))

	_, err = repo.GetAPIKeyByHash(ctx, strings.Repeat("b", 64))
	assert.ErrorIs(t, err, ErrNotFound)
}
