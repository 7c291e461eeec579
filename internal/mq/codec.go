package mq

import (
	"encoding/json"
	"errors"
	"fmt"

	"redirector/internal/model"
)

// ErrProducerDisabled is returned when publishing without a configured producer
var ErrProducerDisabled = errors.New("rocketmq producer disabled")

func encodeClickEvent(msg *model.ClickEventMessage) ([]byte, error) {
	if msg == nil || msg.Event == nil {
		return nil, errors.New("click event message without event")
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return body, nil
}

func decodeClickEvent(body []byte) (*model.ClickEventMessage, error) {
	var msg model.ClickEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if msg.Event == nil {
		return nil, errors.New("click event message without event")
	}
	return &msg, nil
}
