package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Excommunicode/ShareHub/internal/events"
	"github.com/Excommunicode/ShareHub/internal/platform/kafka"
)

// Transactor runs fn inside one database transaction carried by the context.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher publishes CloudEvents to a topic.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event kafka.CloudEvent) error
}

func utcNow() time.Time { return time.Now().UTC() }

// publishEvent is best-effort: failures are logged and never returned to the caller.
func publishEvent(ctx context.Context, producer EventPublisher, logger *zap.Logger, topic, eventType, key string, data interface{}) {
	if producer == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, key, data)
	if err != nil {
		logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
