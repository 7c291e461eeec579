package service

import (
	"context"
	"time"

	"redirector/internal/metrics"
	"redirector/internal/model"

	"github.com/rs/zerolog/log"
)

// RateLimiter applies fixed-window limits stored in the fast store
type RateLimiter struct {
	store WindowStore
}

// NewRateLimiter creates a new Rate Limiter
func NewRateLimiter(store WindowStore) *RateLimiter {
	return &RateLimiter{store: store}
}

// Check counts one hit for identifier. When the store is unreachable the hit
// is allowed with the full budget.
func (rl *RateLimiter) Check(ctx context.Context, identifier string, limit int, window time.Duration) model.RateLimitResult {
	count, ttl, err := rl.store.HitWindow(ctx, identifier, window)
	if err != nil {
		log.Warn().Err(err).Str("identifier", identifier).Msg("Rate limit check failed, allowing request")
		metrics.RateLimitDecisions.WithLabelValues("fail_open").Inc()
		return model.RateLimitResult{Allowed: true, Remaining: limit, ResetIn: window}
	}

	if ttl <= 0 {
		ttl = window
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	allowed := count <= int64(limit)
	if allowed {
		metrics.RateLimitDecisions.WithLabelValues("allowed").Inc()
	} else {
		metrics.RateLimitDecisions.WithLabelValues("denied").Inc()
	}

	return model.RateLimitResult{
		Allowed:   allowed,
		Remaining: remaining,
		ResetIn:   ttl,
	}
}
