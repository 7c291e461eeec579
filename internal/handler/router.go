package handler

import (
	"net/http"
	"time"

	"redirector/internal/config"
	"redirector/internal/model"
	"redirector/internal/service"
	"redirector/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services are the dependencies the HTTP surface needs
type Services struct {
	Links      service.LinkServiceInterface
	Recorder   service.ClickRecorderInterface
	Geo        service.GeoResolverInterface
	Limiter    service.RateLimiterInterface
	Reconciler service.ReconcilerInterface
	APIKeys    service.APIKeyServiceInterface
	Bloom      service.BloomServiceInterface
	DB         Pinger
	Redis      Pinger
	Metrics    http.Handler
}

// NewRouter builds the gin engine with every route and middleware
func NewRouter(cfg *config.Config, s Services) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger("/health", "/metrics"))
	router.Use(middleware.Recovery())
	router.Use(middleware.Throttle(cfg.RateLimit.GlobalRPS, cfg.RateLimit.GlobalBurst))
	router.Use(middleware.SecurityHeaders(cfg.Server.Release()))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	links := NewLinkHandler(s.Links, s.Recorder, s.Geo, cfg.Server.BaseURL, cfg.Geo.EdgeHeader)
	track := NewTrackHandler(s.Links, s.Recorder, s.Geo, cfg.Geo.EdgeHeader)
	sync := NewSyncHandler(s.Reconciler)
	health := NewHealthHandler(s.DB, s.Redis, s.Geo, s.Bloom)

	key := func(capability model.Capability) gin.HandlerFunc {
		return RequireAPIKey(s.APIKeys, capability)
	}
	limit := func(n int, window time.Duration, by KeyFunc) gin.HandlerFunc {
		return RateLimit(s.Limiter, n, window, by)
	}

	router.GET("/link/:code", links.Visit)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/links", key(model.CapRead), links.List)
		v1.POST("/links", key(model.CapCreate), limit(cfg.RateLimit.CreateLimit, cfg.RateLimit.CreateWindow, ByAppName), links.Create)
		v1.GET("/links/:code", links.Get)
		v1.PATCH("/links/:code", key(model.CapUpdate), links.Update)
		v1.DELETE("/links/:code", key(model.CapDelete), links.Deactivate)
		v1.GET("/links/:code/stats", links.Stats)
		v1.GET("/stats", key(model.CapRead), links.GlobalStats)

		v1.POST("/analytics/track", limit(cfg.RateLimit.TrackLimit, cfg.RateLimit.TrackWindow, ByClientIP), track.Track)

		v1.POST("/sync", key(model.CapUpdate), sync.Sync)
		v1.GET("/sync", key(model.CapRead), sync.Status)
	}

	router.GET("/health", health.Health)
	if s.Metrics != nil {
		router.GET("/metrics", gin.WrapH(s.Metrics))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
