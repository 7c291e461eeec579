package mq

import (
	"context"
	"fmt"
	"strconv"

	"redirector/internal/config"
	"redirector/internal/model"

	"github.com/apache/rocketmq-client-go/v2"
	"github.com/apache/rocketmq-client-go/v2/primitive"
	"github.com/apache/rocketmq-client-go/v2/producer"
	"github.com/rs/zerolog/log"
)

// ClickEventTag tags click event messages on the topic
const ClickEventTag = "click_event"

// Producer handles message production to RocketMQ
type Producer struct {
	client rocketmq.Producer
	topic  string
}

// NewProducer creates a new RocketMQ producer
func NewProducer(cfg *config.RocketMQConfig) (*Producer, error) {
	p, err := rocketmq.NewProducer(
		producer.WithNameServer([]string{cfg.NameServer}),
		producer.WithRetry(3),
		producer.WithGroupName(cfg.Group+"_producer"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RocketMQ producer: %w", err)
	}

	if err := p.Start(); err != nil {
		return nil, fmt.Errorf("failed to start RocketMQ producer: %w", err)
	}

	log.Info().Str("topic", cfg.Topic).Msg("RocketMQ producer started")

	return &Producer{
		client: p,
		topic:  cfg.Topic,
	}, nil
}

// SendClickEvent publishes the durable half of a click recording
func (p *Producer) SendClickEvent(ctx context.Context, msg *model.ClickEventMessage) error {
	if p == nil {
		return ErrProducerDisabled
	}

	m, err := newClickEventMessage(p.topic, msg)
	if err != nil {
		return err
	}

	result, err := p.client.SendSync(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	log.Debug().
		Str("msg_id", result.MsgID).
		Str("code", msg.Code).
		Msg("Click event sent to RocketMQ")

	return nil
}

// Close closes the producer
func (p *Producer) Close() error {
	if p != nil && p.client != nil {
		return p.client.Shutdown()
	}
	return nil
}

func newClickEventMessage(topic string, msg *model.ClickEventMessage) (*primitive.Message, error) {
	body, err := encodeClickEvent(msg)
	if err != nil {
		return nil, err
	}

	m := primitive.NewMessage(topic, body)
	m.WithTag(ClickEventTag)
	m.WithKeys([]string{msg.Code, strconv.FormatInt(msg.LinkID, 10)})
	return m, nil
}
