package mq

import (
	"context"

	"redirector/internal/model"
)

// ProducerInterface defines the interface for message production
type ProducerInterface interface {
	SendClickEvent(ctx context.Context, msg *model.ClickEventMessage) error
	Close() error
}

// ConsumerInterface defines the interface for message consumption
type ConsumerInterface interface {
	Subscribe() error
	Close() error
}

var (
	_ ProducerInterface = (*Producer)(nil)
	_ ConsumerInterface = (*Consumer)(nil)
)
