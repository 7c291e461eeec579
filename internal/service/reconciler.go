package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"redirector/internal/config"
	"redirector/internal/metrics"
	"redirector/internal/model"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const reconcilerLockKey = "redirect:reconciler:lock"

// Reconciler raises durable click counts that lag behind the fast counters
type Reconciler struct {
	durable CounterStore
	fast    FastStore
	locker  *redislock.Client
	cfg     config.ReconcilerConfig
	cron    *cron.Cron
}

// NewReconciler creates a reconciler. locker may be nil when Start is never called.
func NewReconciler(durable CounterStore, fast FastStore, locker *redislock.Client, cfg *config.ReconcilerConfig) *Reconciler {
	return &Reconciler{
		durable: durable,
		fast:    fast,
		locker:  locker,
		cfg:     *cfg,
	}
}

// Sync copies every fast count that exceeds its durable count into the durable store
func (r *Reconciler) Sync(ctx context.Context) (*model.SyncResult, error) {
	counters, err := r.durable.ListActiveCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active links: %w", err)
	}

	result := &model.SyncResult{TotalLinks: len(counters), Errors: []string{}}
	for _, c := range counters {
		fast, err := r.fast.GetClicks(ctx, c.Code)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Code, err))
			continue
		}
		if fast <= c.Clicks {
			continue
		}

		raised, err := r.durable.RaiseClicks(ctx, c.ID, fast)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Code, err))
			continue
		}
		if raised {
			result.Synced++
			metrics.ReconciledLinks.Inc()
		}
	}

	log.Info().
		Int("total", result.TotalLinks).
		Int("synced", result.Synced).
		Int("errors", len(result.Errors)).
		Msg("Counter reconciliation finished")

	return result, nil
}

// Status lists links whose fast and durable counts differ, without writing
func (r *Reconciler) Status(ctx context.Context) (*model.SyncStatus, error) {
	counters, err := r.durable.ListActiveCounters(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active links: %w", err)
	}

	status := &model.SyncStatus{TotalLinks: len(counters), Details: []model.Discrepancy{}}
	for _, c := range counters {
		fast, err := r.fast.GetClicks(ctx, c.Code)
		if err != nil {
			log.Warn().Err(err).Str("code", c.Code).Msg("Failed to read fast counter")
			continue
		}
		if fast == c.Clicks {
			continue
		}
		status.Details = append(status.Details, model.Discrepancy{
			Code:         c.Code,
			FastCount:    fast,
			DurableCount: c.Clicks,
			Difference:   fast - c.Clicks,
		})
	}
	status.Discrepancies = len(status.Details)

	return status, nil
}

// Start schedules Sync. Only the instance holding the lock runs each tick.
func (r *Reconciler) Start() error {
	if r.cfg.Schedule == "" {
		log.Info().Msg("Reconciler schedule empty, not scheduling")
		return nil
	}

	r.cron = cron.New()
	if _, err := r.cron.AddFunc(r.cfg.Schedule, r.runLocked); err != nil {
		return fmt.Errorf("invalid reconciler schedule %q: %w", r.cfg.Schedule, err)
	}
	r.cron.Start()

	log.Info().Str("schedule", r.cfg.Schedule).Msg("Reconciler scheduled")
	return nil
}

// Stop waits for a running Sync to finish
func (r *Reconciler) Stop() {
	if r.cron == nil {
		return
	}
	<-r.cron.Stop().Done()
}

func (r *Reconciler) runLocked() {
	ctx, cancel := context.WithTimeout(context.Background(), r.cfg.LockTTL)
	defer cancel()

	lock, err := r.locker.Obtain(ctx, reconcilerLockKey, r.cfg.LockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		log.Debug().Msg("Reconciler lock held elsewhere, skipping")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to obtain reconciler lock")
		return
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			log.Warn().Err(err).Msg("Failed to release reconciler lock")
		}
	}()

	start := time.Now()
	if _, err := r.Sync(ctx); err != nil {
		log.Error().Err(err).Msg("Scheduled reconciliation failed")
		return
	}
	log.Debug().Dur("elapsed", time.Since(start)).Msg("Scheduled reconciliation done")
}
