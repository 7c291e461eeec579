package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"redirector/internal/cache"
	"redirector/internal/config"
	"redirector/internal/metrics"
	"redirector/internal/model"
	"redirector/pkg/util"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// GeoCachePrefix namespaces cached provider answers, keyed by raw IP
const GeoCachePrefix = "redirect:geo:"

// edge values that carry no country
var edgeUnknown = map[string]bool{"": true, "XX": true, "T1": true}

// GeoResolver turns an IP into a location. It prefers the country the edge
// supplied, then the cache, then a budgeted call to an external provider.
type GeoResolver struct {
	cfg    config.GeoConfig
	client *http.Client
	cache  *cache.Cache
	ns     cache.Namespace
	now    func() time.Time

	mu            sync.Mutex
	windowStart   time.Time
	windowCalls   int
	externalCalls int64
	edgeHits      int64
	cacheHits     int64
}

// NewGeoResolver creates a resolver with its own call budget
func NewGeoResolver(cfg *config.GeoConfig, c *cache.Cache) *GeoResolver {
	return &GeoResolver{
		cfg:    *cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  c,
		ns:     cache.Namespace{Prefix: GeoCachePrefix, TTL: cfg.CacheTTL},
		now:    time.Now,
	}
}

// Resolve never fails; anything it cannot determine is left nil
func (g *GeoResolver) Resolve(ctx context.Context, ip, edgeCountry string) model.GeoLocation {
	if ip == "" || !util.IsPublicIP(ip) {
		metrics.GeoLookups.WithLabelValues("skipped").Inc()
		return model.GeoLocation{}
	}

	edgeCountry = strings.ToUpper(strings.TrimSpace(edgeCountry))
	if !edgeUnknown[edgeCountry] {
		g.mu.Lock()
		g.edgeHits++
		g.mu.Unlock()
		metrics.GeoLookups.WithLabelValues("edge").Inc()

		name := CountryName(edgeCountry)
		return model.GeoLocation{Country: &name}
	}

	if cached, ok := cache.Lookup[model.GeoLocation](ctx, g.cache, g.ns, ip); ok {
		g.mu.Lock()
		g.cacheHits++
		g.mu.Unlock()
		metrics.GeoLookups.WithLabelValues("cache").Inc()
		return *cached
	}

	if !g.reserveCall() {
		metrics.GeoLookups.WithLabelValues("budget_exhausted").Inc()
		log.Debug().Str("ip", ip).Msg("Geo lookup budget exhausted, skipping")
		return model.GeoLocation{}
	}

	loc, err := g.lookup(ctx, ip)
	if err != nil {
		metrics.GeoLookups.WithLabelValues("failed").Inc()
		log.Warn().Err(err).Str("ip", ip).Msg("Geo lookup failed")
		return model.GeoLocation{}
	}

	metrics.GeoLookups.WithLabelValues("external").Inc()
	cache.Put(ctx, g.cache, g.ns, ip, &loc)
	return loc
}

// Stats reports lifetime counters and the current window
func (g *GeoResolver) Stats() model.GeoStats {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollWindow()
	return model.GeoStats{
		ExternalCalls: g.externalCalls,
		EdgeHits:      g.edgeHits,
		CacheHits:     g.cacheHits,
		WindowCalls:   g.windowCalls,
		WindowResetAt: g.windowStart.Add(g.cfg.Window),
	}
}

// reserveCall takes one call from the current window's budget
func (g *GeoResolver) reserveCall() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollWindow()
	if g.windowCalls >= g.cfg.MaxPerWindow {
		return false
	}
	g.windowCalls++
	g.externalCalls++
	return true
}

// rollWindow starts a new window once the current one has elapsed.
// Callers hold mu.
func (g *GeoResolver) rollWindow() {
	now := g.now()
	if g.windowStart.IsZero() || !now.Before(g.windowStart.Add(g.cfg.Window)) {
		g.windowStart = now
		g.windowCalls = 0
	}
}

func (g *GeoResolver) lookup(ctx context.Context, ip string) (model.GeoLocation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(g.cfg.ProviderURL, ip), nil)
	if err != nil {
		return model.GeoLocation{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return model.GeoLocation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.GeoLocation{}, fmt.Errorf("provider returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return model.GeoLocation{}, err
	}
	if !gjson.ValidBytes(body) {
		return model.GeoLocation{}, fmt.Errorf("provider returned invalid JSON")
	}

	result := gjson.ParseBytes(body)
	if g.cfg.StatusField != "" {
		if status := result.Get(g.cfg.StatusField).String(); status != g.cfg.StatusOK {
			return model.GeoLocation{}, fmt.Errorf("provider status %q", status)
		}
	}

	return model.GeoLocation{
		Country: field(result, g.cfg.CountryField),
		Region:  field(result, g.cfg.RegionField),
		City:    field(result, g.cfg.CityField),
	}, nil
}

func field(result gjson.Result, path string) *string {
	if path == "" {
		return nil
	}
	v := result.Get(path)
	if !v.Exists() || v.String() == "" {
		return nil
	}
	s := v.String()
	return &s
}
