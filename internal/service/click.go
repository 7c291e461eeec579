package service

import (
	"context"
	"errors"
	"time"

	"redirector/internal/metrics"
	"redirector/internal/model"

	"github.com/rs/zerolog/log"
)

// ClickRecorder counts clicks in the fast store and persists them durably.
// Recording never fails its caller: every step that fails is logged and
// listed in the result.
type ClickRecorder struct {
	fast      FastStore
	clicks    ClickStore
	publisher ClickPublisher
	uniqueTTL time.Duration
}

// NewClickRecorder creates a recorder. A nil publisher writes the durable
// half inline.
func NewClickRecorder(fast FastStore, clicks ClickStore, publisher ClickPublisher, uniqueTTL time.Duration) *ClickRecorder {
	return &ClickRecorder{
		fast:      fast,
		clicks:    clicks,
		publisher: publisher,
		uniqueTTL: uniqueTTL,
	}
}

// Record counts one click on link linkID with code code
func (r *ClickRecorder) Record(ctx context.Context, linkID int64, code string, in model.ClickInput) model.RecordResult {
	var res model.RecordResult

	count, err := r.fast.IncrementClicks(ctx, code)
	if err != nil {
		log.Error().Err(err).Str("code", code).Msg("Failed to increment fast click counter")
		res.Fail(model.StepFastCounter, err)
	} else {
		res.FastCount = count
	}

	res.Unique = true
	if in.IP != "" {
		first, err := r.fast.MarkVisitor(ctx, code, in.IP, r.uniqueTTL)
		if err != nil {
			log.Warn().Err(err).Str("code", code).Msg("Failed to mark visitor, counting as unique")
			res.Fail(model.StepUniqueMarker, err)
		} else {
			res.Unique = first
		}
	}

	event := in.Event(linkID)

	if r.publisher != nil {
		err := r.publisher.SendClickEvent(ctx, &model.ClickEventMessage{
			LinkID: linkID,
			Code:   code,
			Unique: res.Unique,
			Event:  event,
		})
		if err == nil {
			res.Queued = true
		} else {
			log.Warn().Err(err).Str("code", code).Msg("Failed to queue click event, writing directly")
			res.Fail(model.StepPublish, err)
		}
	}

	if !res.Queued {
		r.persist(ctx, linkID, code, res.Unique, event, &res)
	}

	observe(&res)
	return res
}

// Apply writes a queued click event. It asks for redelivery only when neither
// durable write succeeded, so a partial success is never written twice.
func (r *ClickRecorder) Apply(ctx context.Context, msg *model.ClickEventMessage) error {
	var res model.RecordResult
	r.persist(ctx, msg.LinkID, msg.Code, msg.Unique, msg.Event, &res)

	for _, f := range res.Failures {
		metrics.RecordFailures.WithLabelValues(string(f.Step)).Inc()
	}

	if res.Failed(model.StepDurableEvent) && res.Failed(model.StepDurableCounter) {
		return errors.Join(res.Failures[0].Err, res.Failures[1].Err)
	}
	return nil
}

func (r *ClickRecorder) persist(ctx context.Context, linkID int64, code string, unique bool, event *model.ClickEvent, res *model.RecordResult) {
	if err := r.clicks.SaveClickEvent(ctx, event); err != nil {
		log.Error().Err(err).Str("code", code).Int64("link_id", linkID).Msg("Failed to save click event")
		res.Fail(model.StepDurableEvent, err)
	}

	if err := r.clicks.IncrementLinkCounters(ctx, linkID, unique); err != nil {
		log.Error().Err(err).Str("code", code).Int64("link_id", linkID).Msg("Failed to increment durable counters")
		res.Fail(model.StepDurableCounter, err)
	}
}

func observe(res *model.RecordResult) {
	visitor := "repeat"
	if res.Unique {
		visitor = "unique"
	}
	metrics.ClicksRecorded.WithLabelValues(visitor).Inc()

	for _, f := range res.Failures {
		metrics.RecordFailures.WithLabelValues(string(f.Step)).Inc()
	}
}
