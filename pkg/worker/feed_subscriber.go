package worker

import (
	"context"
	"encoding/json"

	"github.com/vetdesk/booking-api/pkg/logger"
	"github.com/vetdesk/booking-api/pkg/messaging"
)

// FeedHandler reacts to one change-feed event.
type FeedHandler interface {
	HandleFeedEvent(eventType string, payload map[string]interface{}) error
}

// FeedSubscriber pipes change-feed messages into a handler. The cache uses
// it to invalidate entries when admin edits land.
type FeedSubscriber struct {
	broker  messaging.Broker
	handler FeedHandler
	logger  *logger.Logger
}

func NewFeedSubscriber(broker messaging.Broker, handler FeedHandler, logger *logger.Logger) *FeedSubscriber {
	return &FeedSubscriber{broker: broker, handler: handler, logger: logger}
}

func (s *FeedSubscriber) Start(ctx context.Context) error {
	messages, err := s.broker.Subscribe(ctx, FeedChannel)
	if err != nil {
		return err
	}

	s.logger.Info("Starting change-feed subscriber")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Shutting down change-feed subscriber")
			return nil
		case raw, ok := <-messages:
			if !ok {
				return nil
			}
			s.dispatch(raw)
		}
	}
}

func (s *FeedSubscriber) dispatch(raw []byte) {
	var msg struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		s.logger.Error(err, "Failed to decode change-feed message")
		return
	}

	if err := s.handler.HandleFeedEvent(msg.Type, msg.Payload); err != nil {
		s.logger.Error(err, "Failed to handle change-feed event", "event_type", msg.Type)
	}
}
