package mq

import (
	"context"
	"fmt"

	"redirector/internal/config"
	"redirector/internal/model"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/consumer"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/rs/zerolog/log"
)

// ClickEventHandler applies a queued click event
type ClickEventHandler func(ctx context.Context, msg *model.ClickEventMessage) error

// Consumer handles message consumption from RocketMQ
type Consumer struct {
	client  rocketmq.PushConsumer
	topic   string
	group   string
	handler ClickEventHandler
	started bool
}

// consumeBatchSize is one so a redelivered batch never replays an event
// that was already applied.
const consumeBatchSize = 1

// NewConsumer creates a new RocketMQ consumer
func NewConsumer(cfg *config.RocketMQConfig, handler ClickEventHandler) (*Consumer, error) {
	c, err := rocketmq.NewPushConsumer(
		consumer.WithNameServer([]string{cfg.NameServer}),
		consumer.WithConsumerModel(consumer.Clustering),
		consumer.WithGroupName(cfg.Group),
		consumer.WithConsumeMessageBatchMaxSize(consumeBatchSize),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RocketMQ consumer: %w", err)
	}

	return &Consumer{
		client:  c,
		topic:   cfg.Topic,
		group:   cfg.Group,
		handler: handler,
	}, nil
}

// Subscribe subscribes to the topic and starts consuming messages
func (c *Consumer) Subscribe() error {
	if c.started {
		return nil
	}

	selector := consumer.MessageSelector{Type: consumer.TAG, Expression: ClickEventTag}
	if err := c.client.Subscribe(c.topic, selector, c.consume); err != nil {
		return fmt.Errorf("failed to subscribe to topic: %w", err)
	}

	if err := c.client.Start(); err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	c.started = true
	log.Info().Str("topic", c.topic).Str("group", c.group).Msg("RocketMQ consumer started")

	return nil
}

// consume applies a batch. Undecodable messages are dropped since a retry
// cannot fix them; handler failures ask the broker to redeliver.
func (c *Consumer) consume(ctx context.Context, msgs ...*primitive.MessageExt) (consumer.ConsumeResult, error) {
	for _, msg := range msgs {
		event, err := decodeClickEvent(msg.Body)
		if err != nil {
			log.Error().Err(err).Str("msg_id", msg.MsgId).Msg("Dropping malformed click event")
			continue
		}

		log.Debug().
			Str("msg_id", msg.MsgId).
			Str("code", event.Code).
			Msg("Processing click event")

		if c.handler != nil {
			if err := c.handler(ctx, event); err != nil {
				log.Error().Err(err).Str("msg_id", msg.MsgId).Msg("Handler failed")
				return consumer.ConsumeRetryLater, err
			}
		}
	}
	return consumer.ConsumeSuccess, nil
}

// Close closes the consumer
func (c *Consumer) Close() error {
	if c != nil && c.client != nil {
		return c.client.Shutdown()
	}
	return nil
}
