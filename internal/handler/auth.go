package handler

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"redirector/internal/model"
	"redirector/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	// APIKeyHeader carries the raw API key
	APIKeyHeader = "X-API-Key"
	// ContextAppName is the gin context key holding the authenticated app
	ContextAppName = "appName"
)

// RequireAPIKey rejects requests without a valid key granting capability
func RequireAPIKey(keys service.APIKeyServiceInterface, capability model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(APIKeyHeader)
		if raw == "" {
			fail(c, http.StatusUnauthorized, "API key required")
			return
		}

		v, err := keys.Validate(c.Request.Context(), raw)
		if err != nil {
			log.Error().Err(err).Msg("API key validation failed")
			fail(c, http.StatusInternalServerError, "Failed to validate API key")
			return
		}
		if !v.Valid {
			fail(c, http.StatusUnauthorized, "Invalid API key")
			return
		}
		if !v.Key.Can(capability) {
			fail(c, http.StatusForbidden, "API key lacks "+string(capability)+" permission")
			return
		}

		c.Set(ContextAppName, v.AppName)
		c.Next()
	}
}

// KeyFunc derives the rate limit identifier of a request
type KeyFunc func(c *gin.Context) string

// ByAppName limits per authenticated application
func ByAppName(c *gin.Context) string {
	return "api:" + c.GetString(ContextAppName)
}

// ByClientIP limits per visitor address
func ByClientIP(c *gin.Context) string {
	return "track:" + clientIP(c)
}

// RateLimit enforces limit requests per window for each identifier
func RateLimit(limiter service.RateLimiterInterface, limit int, window time.Duration, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := limiter.Check(c.Request.Context(), key(c), limit, window)

		resetAt := time.Now().Add(res.ResetIn)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !res.Allowed {
			retry := int(math.Ceil(res.ResetIn.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			fail(c, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		c.Next()
	}
}
