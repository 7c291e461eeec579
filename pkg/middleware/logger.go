package middleware

import (
	"time"

	"redirector/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

// Logger returns a gin middleware for logging. It assigns each request an id
// and logs client errors at warn and server errors at error level.
func Logger(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := util.RedactQuery(c.Request.URL.RawQuery)

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = util.GenerateUUID()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		if skip[path] {
			return
		}

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		ip := util.ClientIP(c.Request.Header)
		if ip == "" {
			ip = c.ClientIP()
		}

		event.
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", util.AnonymizeIP(ip)).
			Str("user_agent", c.Request.UserAgent()).
			Msg("HTTP request")
	}
}
