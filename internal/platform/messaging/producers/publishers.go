package producers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/domain/shared"
)

// NoopPublisher stands in for Kafka when event publishing is disabled
type NoopPublisher struct{}

func (NoopPublisher) PublishLedgerEvent(context.Context, shared.LedgerEvent) error { return nil }

func (NoopPublisher) PublishToDLQ(context.Context, string, []byte, string) error { return nil }

func (NoopPublisher) Close() error { return nil }

// Publishers bundles the event and dead-letter sides
type Publishers struct {
	Events     EventPublisher
	DeadLetter DeadLetterPublisher
}

// NewPublishers connects to Kafka when enabled and falls back to no-ops otherwise.
// A DLQ topic left empty yields a no-op dead-letter side.
func NewPublishers(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*Publishers, error) {
	if !cfg.Enabled {
		logger.Info("kafka publishing disabled")
		return &Publishers{Events: NoopPublisher{}, DeadLetter: NoopPublisher{}}, nil
	}

	events, err := NewLedgerEventProducer(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("ledger event producer: %w", err)
	}

	p := &Publishers{Events: events, DeadLetter: NoopPublisher{}}

	dlq, err := NewDLQProducer(ctx, logger, cfg)
	if err != nil {
		_ = events.Close()
		return nil, fmt.Errorf("dlq producer: %w", err)
	}
	if dlq != nil {
		p.DeadLetter = dlq
	}
	return p, nil
}

// Close closes both sides and returns the first error
func (p *Publishers) Close() error {
	errEvents := p.Events.Close()
	errDLQ := p.DeadLetter.Close()
	if errEvents != nil {
		return errEvents
	}
	return errDLQ
}
