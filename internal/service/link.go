package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redirector/internal/cache"
	"redirector/internal/config"
	"redirector/internal/encoder"
	"redirector/internal/metrics"
	"redirector/internal/model"
	"redirector/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// LinkCachePrefix namespaces cached link records
	LinkCachePrefix = "redirect:link:"

	defaultPageSize = 20
	maxPageSize     = 100

	statsWindowDays   = 30
	topCountriesLimit = 10
	topDevicesLimit   = 5
	topReferersLimit  = 10

	attemptsPerLength = 5
	maxGeneratedLen   = 12
)

// LinkService resolves codes and administers links
type LinkService struct {
	store    LinkStore
	cache    *cache.Cache
	bloomSvc BloomServiceInterface
	encoder  *encoder.Base62Encoder
	validate *validator.Validate
	linkNS   cache.Namespace
	release  bool
}

// NewLinkService creates a new Link Service
func NewLinkService(
	store LinkStore,
	c *cache.Cache,
	bloomSvc BloomServiceInterface,
	cacheCfg *config.CacheConfig,
	release bool,
) *LinkService {
	return &LinkService{
		store:    store,
		cache:    c,
		bloomSvc: bloomSvc,
		encoder:  encoder.NewBase62Encoder(),
		validate: newValidator(),
		linkNS:   cache.Namespace{Prefix: LinkCachePrefix, TTL: cacheCfg.LinkTTL},
		release:  release,
	}
}

// Resolve returns the link behind code if it is active and not expired.
// Only resolvable links are cached.
func (s *LinkService) Resolve(ctx context.Context, code string) (*model.Link, error) {
	link, hit, err := cache.ReadThrough(ctx, s.cache, s.linkNS, code, func(ctx context.Context) (*model.Link, error) {
		link, err := s.store.GetLinkByCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load link %q: %w", code, err)
		}
		if !link.IsResolvable(time.Now()) {
			return nil, nil
		}
		return link, nil
	})
	if err != nil {
		return nil, err
	}

	if link == nil {
		metrics.LinkLookups.WithLabelValues("not_found").Inc()
		return nil, ErrLinkNotFound
	}

	if hit {
		// Expiry may have passed since the entry was cached
		if !link.IsResolvable(time.Now()) {
			cache.Invalidate(ctx, s.cache, s.linkNS, code)
			metrics.LinkLookups.WithLabelValues("not_found").Inc()
			return nil, ErrLinkNotFound
		}
		metrics.LinkLookups.WithLabelValues("cache_hit").Inc()
	} else {
		metrics.LinkLookups.WithLabelValues("store_hit").Inc()
	}

	return link, nil
}

// Create validates req and stores a new link
func (s *LinkService) Create(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error) {
	if err := s.validateCreate(req); err != nil {
		return nil, err
	}

	link := &model.Link{
		TargetURL:    req.TargetURL,
		Title:        req.Title,
		Description:  req.Description,
		Commentary:   req.Commentary,
		ImageURL:     req.ImageURL,
		RedirectType: model.RedirectMonetized,
		DelaySeconds: 5,
		ShowAds:      true,
		Source:       model.SourceManual,
		SourceApp:    req.SourceApp,
		SourceURL:    req.SourceURL,
		Campaign:     req.Campaign,
		ExpiresAt:    req.ExpiresAt,
		IsActive:     true,
	}
	if req.RedirectType != "" {
		link.RedirectType = model.RedirectType(req.RedirectType)
	}
	if req.DelaySeconds != nil {
		link.DelaySeconds = *req.DelaySeconds
	}
	if req.ShowAds != nil {
		link.ShowAds = *req.ShowAds
	}
	if req.Source != "" {
		link.Source = model.LinkSource(req.Source)
	}
	if err := link.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if req.Code != "" {
		link.Code = req.Code
		exists, err := s.store.ExistsByCode(ctx, req.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to check code: %w", err)
		}
		if exists {
			return nil, ErrLinkExists
		}
		if err := s.store.CreateLink(ctx, link); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrLinkExists
			}
			log.Error().Err(err).Str("code", link.Code).Msg("Failed to save link")
			return nil, fmt.Errorf("failed to save link: %w", err)
		}
	} else if err := s.createWithGeneratedCode(ctx, link); err != nil {
		return nil, err
	}

	// Add to Bloom Filter
	if err := s.bloomSvc.Add(ctx, link.Code); err != nil {
		log.Warn().Err(err).Str("code", link.Code).Msg("Failed to add to Bloom Filter")
	}

	return link, nil
}

// createWithGeneratedCode picks a free random code, growing the length when
// collisions keep happening, and inserts the link under it
func (s *LinkService) createWithGeneratedCode(ctx context.Context, link *model.Link) error {
	length := encoder.DefaultLength
	for attempt := 1; ; attempt++ {
		if attempt > attemptsPerLength {
			attempt = 1
			length++
			if length > maxGeneratedLen {
				return ErrCodeSpaceExhausted
			}
			log.Warn().
				Int("length", length).
				Uint64("capacity", s.encoder.MaxCapacity(length)).
				Msg("Code collisions persist, growing code length")
		}

		code, err := s.encoder.Random(length)
		if err != nil {
			return fmt.Errorf("failed to generate code: %w", err)
		}

		taken, err := s.codeTaken(ctx, code)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		link.Code = code
		err = s.store.CreateLink(ctx, link)
		if errors.Is(err, repository.ErrDuplicate) {
			continue
		}
		if err != nil {
			log.Error().Err(err).Str("code", code).Msg("Failed to save link")
			return fmt.Errorf("failed to save link: %w", err)
		}
		return nil
	}
}

// codeTaken consults the Bloom Filter first and the durable store only when
// the filter cannot rule the code out
func (s *LinkService) codeTaken(ctx context.Context, code string) (bool, error) {
	maybe, err := s.bloomSvc.Exists(ctx, code)
	if err != nil {
		log.Warn().Err(err).Str("code", code).Msg("Bloom Filter check failed")
		maybe = true
	}
	if !maybe {
		return false, nil
	}

	exists, err := s.store.ExistsByCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to check code: %w", err)
	}
	return exists, nil
}

// Update applies a partial update. The code itself never changes.
func (s *LinkService) Update(ctx context.Context, code string, req *model.UpdateLinkRequest) (*model.Link, error) {
	fields, err := s.updateFields(req)
	if err != nil {
		return nil, err
	}

	link, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		if err := s.store.UpdateLink(ctx, link.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update link %q: %w", code, err)
		}
	}
	cache.Invalidate(ctx, s.cache, s.linkNS, code)

	return s.lookup(ctx, code)
}

// Deactivate soft-deletes a link
func (s *LinkService) Deactivate(ctx context.Context, code string) error {
	link, err := s.lookup(ctx, code)
	if err != nil {
		return err
	}

	if err := s.store.UpdateLink(ctx, link.ID, map[string]interface{}{"is_active": false}); err != nil {
		return fmt.Errorf("failed to deactivate link %q: %w", code, err)
	}
	cache.Invalidate(ctx, s.cache, s.linkNS, code)

	return nil
}

// List returns a page of active links
func (s *LinkService) List(ctx context.Context, q model.LinkQuery) ([]model.Link, int64, error) {
	q = NormalizeQuery(q)
	if q.Source != "" {
		if err := checkSource(string(q.Source)); err != nil {
			return nil, 0, err
		}
	}

	links, total, err := s.store.ListLinks(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	return links, total, nil
}

// NormalizeQuery clamps the page to at least 1 and the page size to 1..100,
// defaulting to 20
func NormalizeQuery(q model.LinkQuery) model.LinkQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

// GetStats aggregates the clicks of one link
func (s *LinkService) GetStats(ctx context.Context, code string) (*model.LinkStats, error) {
	link, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	stats := &model.LinkStats{Link: link}
	since := time.Now().UTC().AddDate(0, 0, -statsWindowDays)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.ClicksByDay, err = s.store.ClicksByDay(gctx, link.ID, since)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TopCountries, err = s.store.TopValues(gctx, link.ID, "country", topCountriesLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TopDevices, err = s.store.TopValues(gctx, link.ID, "device_type", topDevicesLimit)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TopReferers, err = s.store.TopValues(gctx, link.ID, "referer", topReferersLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to aggregate stats for %q: %w", code, err)
	}

	return stats, nil
}

// GlobalStats summarizes every link
func (s *LinkService) GlobalStats(ctx context.Context) (*model.GlobalStats, error) {
	stats, err := s.store.GlobalStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load global stats: %w", err)
	}
	return stats, nil
}

// lookup reads a link in any state straight from the durable store
func (s *LinkService) lookup(ctx context.Context, code string) (*model.Link, error) {
	link, err := s.store.GetLinkByCode(ctx, code)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load link %q: %w", code, err)
	}
	return link, nil
}

func (s *LinkService) validateCreate(req *model.CreateLinkRequest) error {
	if err := structError(s.validate, req); err != nil {
		return err
	}
	if err := checkTargetURL(req.TargetURL, s.release); err != nil {
		return err
	}
	if req.Code != "" {
		if err := checkCode(s.encoder, req.Code); err != nil {
			return err
		}
	}
	if req.RedirectType != "" {
		if err := checkRedirectType(req.RedirectType); err != nil {
			return err
		}
	}
	if req.Source != "" {
		if err := checkSource(req.Source); err != nil {
			return err
		}
	}
	return nil
}

// updateFields validates req and maps the fields it sets to columns
func (s *LinkService) updateFields(req *model.UpdateLinkRequest) (map[string]interface{}, error) {
	if err := structError(s.validate, req); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.TargetURL != nil {
		if err := checkTargetURL(*req.TargetURL, s.release); err != nil {
			return nil, err
		}
		fields["target_url"] = *req.TargetURL
	}
	if req.RedirectType != nil {
		if err := checkRedirectType(*req.RedirectType); err != nil {
			return nil, err
		}
		fields["redirect_type"] = *req.RedirectType
	}
	if req.Source != nil {
		if err := checkSource(*req.Source); err != nil {
			return nil, err
		}
		fields["source"] = *req.Source
	}
	if req.Password != nil {
		var l model.Link
		if err := l.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		fields["password"] = l.Password
	}

	setString := func(column string, v *string) {
		if v != nil {
			fields[column] = *v
		}
	}
	setString("title", req.Title)
	setString("description", req.Description)
	setString("commentary", req.Commentary)
	setString("image_url", req.ImageURL)
	setString("source_app", req.SourceApp)
	setString("source_url", req.SourceURL)
	setString("campaign", req.Campaign)

	if req.DelaySeconds != nil {
		fields["delay_seconds"] = *req.DelaySeconds
	}
	if req.ShowAds != nil {
		fields["show_ads"] = *req.ShowAds
	}
	if req.ExpiresAt != nil {
		fields["expires_at"] = *req.ExpiresAt
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	return fields, nil
}
