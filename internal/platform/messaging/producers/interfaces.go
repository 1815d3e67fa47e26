package producers

import (
	"context"

	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes ledger events to the primary topic
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, event shared.LedgerEvent) error
	Close() error
}

// DeadLetterPublisher handles publishing rejected import payloads to a Dead Letter Queue
type DeadLetterPublisher interface {
	PublishToDLQ(ctx context.Context, key string, payload []byte, reason string) error
	Close() error
}

// KafkaWriter wraps kafka.Writer methods for testing
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}
