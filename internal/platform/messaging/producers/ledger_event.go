package producers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// LedgerEventProducer publishes import notifications keyed by event kind
type LedgerEventProducer struct {
	logger *slog.Logger
	writer KafkaWriter
	topic  string
}

// NewLedgerEventProducer ensures the ledger topic exists and opens an async writer
func NewLedgerEventProducer(ctx context.Context, logger *slog.Logger, cfg *config.KafkaConfig) (*LedgerEventProducer, error) {
	if cfg.LedgerTopic == "" {
		return nil, fmt.Errorf("kafka ledger topic is not configured")
	}

	brokers := cfg.BrokerList()
	if err := ensureTopic(brokers, cfg.LedgerTopic, cfg.NumPartitions, cfg.ReplicationFactor, logger); err != nil {
		return nil, fmt.Errorf("failed to ensure ledger topic %s exists: %w", cfg.LedgerTopic, err)
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        cfg.LedgerTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
		WriteTimeout: cfg.WriteTimeout,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("Failed to write ledger events asynchronously", "topic", cfg.LedgerTopic, "error", err, "count", len(messages))
			} else {
				logger.Debug("Wrote ledger events asynchronously", "topic", cfg.LedgerTopic, "count", len(messages))
			}
		},
	}

	return &LedgerEventProducer{
		logger: logger,
		writer: writer,
		topic:  cfg.LedgerTopic,
	}, nil
}

func (p *LedgerEventProducer) PublishLedgerEvent(ctx context.Context, event shared.LedgerEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-kind", Value: []byte(event.Kind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish ledger event",
			"topic", p.topic,
			"event_id", event.EventID,
			"error", err,
		)
		return fmt.Errorf("failed to publish ledger event to %s: %w", p.topic, err)
	}

	p.logger.Debug("Published ledger event",
		"topic", p.topic,
		"event_id", event.EventID,
		"kind", event.Kind,
	)
	return nil
}

func (p *LedgerEventProducer) Close() error {
	p.logger.Info("Closing ledger event producer", "topic", p.topic)
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer for topic %s: %w", p.topic, err)
	}
	return nil
}
