package handler

import (
	"context"
	"net/http"
	"time"

	"redirector/internal/model"
	"redirector/internal/service"

	"github.com/gin-gonic/gin"
)

// Pinger is a store that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the state of the stores and the geo budget
type HealthHandler struct {
	db    Pinger
	redis Pinger
	geo   service.GeoResolverInterface
	bloom service.BloomServiceInterface
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db, redis Pinger, geo service.GeoResolverInterface, bloom service.BloomServiceInterface) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, geo: geo, bloom: bloom}
}

// HealthReport is the body of GET /health
type HealthReport struct {
	Status   string         `json:"status"`
	Time     string         `json:"time"`
	Database string         `json:"database"`
	Redis    string         `json:"redis"`
	Bloom    string         `json:"bloom"`
	Geo      model.GeoStats `json:"geo"`
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Success 200 {object} HealthReport
// @Failure 503 {object} HealthReport
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	report := HealthReport{
		Status:   "ok",
		Time:     time.Now().Format(time.RFC3339),
		Database: "ok",
		Redis:    "ok",
		Bloom:    "redis",
		Geo:      h.geo.Stats(),
	}
	status := http.StatusOK

	if err := h.db.Ping(ctx); err != nil {
		report.Database = err.Error()
		report.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	// Every fast-store call has a fallback, so Redis alone only degrades
	if err := h.redis.Ping(ctx); err != nil {
		report.Redis = err.Error()
		if report.Status == "ok" {
			report.Status = "degraded"
		}
	}
	if !h.bloom.IsAvailable(ctx) {
		report.Bloom = "local"
	}

	c.JSON(status, report)
}
