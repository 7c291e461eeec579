package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"redirector/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// brokenClickStore fails every durable write
type brokenClickStore struct{}

func (brokenClickStore) SaveClickEvent(context.Context, *model.ClickEvent) error { return errStoreDown }
func (brokenClickStore) IncrementLinkCounters(context.Context, int64, bool) error { return errStoreDown }

// halfClickStore saves events but cannot update counters
type halfClickStore struct{ saved int }

func (h *halfClickStore) SaveClickEvent(context.Context, *model.ClickEvent) error {
	h.saved++
	return nil
}
func (h *halfClickStore) IncrementLinkCounters(context.Context, int64, bool) error {
	return errStoreDown
}

// capturePublisher keeps published messages, or fails when err is set
type capturePublisher struct {
	mu   sync.Mutex
	msgs []*model.ClickEventMessage
	err  error
}

func (p *capturePublisher) SendClickEvent(_ context.Context, msg *model.ClickEventMessage) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func TestClickRecorder_Record(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	link := env.seedLink(t, "click1", nil)

	rec := NewClickRecorder(env.redis, env.sql, nil, testCacheConfig.UniqueTTL)

	res := rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "203.0.113.0", DeviceType: "Mobile"})
	assert.EqualValues(t, 1, res.FastCount)
	assert.True(t, res.Unique)
	assert.False(t, res.Queued)
	assert.Empty(t, res.Failures)

	res = rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "203.0.113.0"})
	assert.EqualValues(t, 2, res.FastCount)
	assert.False(t, res.Unique)

	stored, err := env.sql.GetLinkByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stored.Clicks)
	assert.EqualValues(t, 1, stored.UniqueClicks)

	top, err := env.sql.TopValues(ctx, link.ID, "device_type", 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Mobile", top[0].Value)
}

func TestClickRecorder_UniquenessWindow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	link := env.seedLink(t, "uniq01", nil)
	other := env.seedLink(t, "uniq02", nil)

	rec := NewClickRecorder(env.redis, env.sql, nil, testCacheConfig.UniqueTTL)

	assert.True(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "198.51.100.0"}).Unique)
	assert.False(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "198.51.100.0"}).Unique)
	assert.True(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "192.0.2.0"}).Unique)
	assert.True(t, rec.Record(ctx, other.ID, other.Code, model.ClickInput{IP: "198.51.100.0"}).Unique)

	// No IP means no marker, so the click counts as unique
	assert.True(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{}).Unique)
	assert.True(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{}).Unique)

	env.mr.FastForward(24*time.Hour + time.Second)
	assert.True(t, rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "198.51.100.0"}).Unique)
}

func TestClickRecorder_DurableStoreDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rec := NewClickRecorder(env.redis, brokenClickStore{}, nil, testCacheConfig.UniqueTTL)

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := rec.Record(ctx, 42, "busy01", model.ClickInput{IP: "203.0.113.0"})
			assert.True(t, res.Failed(model.StepDurableEvent))
			assert.True(t, res.Failed(model.StepDurableCounter))
			assert.False(t, res.Failed(model.StepFastCounter))
		}()
	}
	wg.Wait()

	count, err := env.redis.GetClicks(ctx, "busy01")
	require.NoError(t, err)
	assert.EqualValues(t, n, count)
}

func TestClickRecorder_FastStoreDown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	link := env.seedLink(t, "nofast", nil)

	rec := NewClickRecorder(env.redis, env.sql, nil, testCacheConfig.UniqueTTL)
	env.mr.Close()

	res := rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "203.0.113.0"})
	assert.Zero(t, res.FastCount)
	assert.True(t, res.Unique)
	assert.True(t, res.Failed(model.StepFastCounter))
	assert.True(t, res.Failed(model.StepUniqueMarker))
	assert.False(t, res.Failed(model.StepDurableEvent))

	stored, err := env.sql.GetLinkByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.Clicks)
	assert.EqualValues(t, 1, stored.UniqueClicks)
}

func TestClickRecorder_Publisher(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	link := env.seedLink(t, "queue1", nil)

	pub := &capturePublisher{}
	rec := NewClickRecorder(env.redis, env.sql, pub, testCacheConfig.UniqueTTL)

	res := rec.Record(ctx, link.ID, link.Code, model.ClickInput{IP: "203.0.113.0", Referer: "https://t.co/"})
	assert.True(t, res.Queued)
	assert.EqualValues(t, 1, res.FastCount)

	require.Len(t, pub.msgs, 1)
	msg := pub.msgs[0]
	assert.Equal(t, link.ID, msg.LinkID)
	assert.Equal(t, "queue1", msg.Code)
	assert.True(t, msg.Unique)
	assert.Equal(t, "https://t.co/", msg.Event.Referer)

	// Nothing durable until the consumer applies the message
	stored, err := env.sql.GetLinkByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.Zero(t, stored.Clicks)

	require.NoError(t, rec.Apply(ctx, msg))

	stored, err = env.sql.GetLinkByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.Clicks)
	assert.EqualValues(t, 1, stored.UniqueClicks)
}

func TestClickRecorder_PublishFailureFallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	link := env.seedLink(t, "queue2", nil)

	rec := NewClickRecorder(env.redis, env.sql, &capturePublisher{err: errors.New("broker down")}, testCacheConfig.UniqueTTL)

	res := rec.Record(ctx, link.ID, link.Code, model.ClickInput{})
	assert.False(t, res.Queued)
	assert.True(t, res.Failed(model.StepPublish))

	stored, err := env.sql.GetLinkByCode(ctx, link.Code)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stored.Clicks)
}

func TestClickRecorder_ApplyRetries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	msg := &model.ClickEventMessage{LinkID: 1, Code: "retry1", Event: &model.ClickEvent{LinkID: 1}}

	broken := NewClickRecorder(env.redis, brokenClickStore{}, nil, time.Hour)
	assert.ErrorIs(t, broken.Apply(ctx, msg), errStoreDown)

	half := &halfClickStore{}
	partial := NewClickRecorder(env.redis, half, nil, time.Hour)
	assert.NoError(t, partial.Apply(ctx, msg))
	assert.Equal(t, 1, half.saved)
}
