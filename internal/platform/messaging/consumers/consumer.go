package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/segmentio/kafka-go"
)

// EventHandler receives one decoded ledger event
type EventHandler func(ctx context.Context, event shared.LedgerEvent) error

// KafkaReader wraps kafka.Reader methods for testing
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LedgerEventConsumer reads the ledger topic as a member of a consumer group
type LedgerEventConsumer struct {
	reader     KafkaReader
	logger     *slog.Logger
	retryDelay time.Duration
}

// NewLedgerEventConsumer builds a group reader starting from the first offset
func NewLedgerEventConsumer(logger *slog.Logger, cfg *config.KafkaConfig) (*LedgerEventConsumer, error) {
	if !cfg.Enabled {
		return nil, errors.New("kafka is disabled, set KAFKA_ENABLED=true to read ledger events")
	}
	if cfg.LedgerTopic == "" {
		return nil, errors.New("kafka ledger topic is not configured")
	}
	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, errors.New("no kafka brokers configured")
	}

	return &LedgerEventConsumer{
		logger:     logger,
		retryDelay: time.Second,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:     brokers,
			Topic:       cfg.LedgerTopic,
			GroupID:     cfg.ConsumerGroup,
			MinBytes:    cfg.MinBytes,
			MaxBytes:    cfg.MaxBytes,
			MaxWait:     cfg.MaxWait,
			StartOffset: kafka.FirstOffset,
		}),
	}, nil
}

// Run fetches events until ctx is canceled. Undecodable messages are committed
// and skipped; messages the handler fails on are left uncommitted.
func (c *LedgerEventConsumer) Run(ctx context.Context, handler EventHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Context canceled, stopping ledger event consumer")
				return nil
			}
			c.logger.Error("Failed to fetch message from Kafka", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(c.retryDelay):
			}
			continue
		}

		c.logger.Debug("Received message from Kafka",
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", string(msg.Key),
		)

		var event shared.LedgerEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn("Skipping undecodable ledger event",
				"offset", msg.Offset,
				"key", string(msg.Key),
				"error", err,
			)
			c.commit(ctx, msg)
			continue
		}

		if err := handler(ctx, event); err != nil {
			c.logger.Error("Failed to process ledger event, will not commit offset",
				"offset", msg.Offset,
				"event_id", event.EventID,
				"error", err,
			)
			continue
		}
		c.commit(ctx, msg)
	}
}

func (c *LedgerEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message",
			"topic", msg.Topic,
			"offset", msg.Offset,
			"error", err,
		)
	}
}

func (c *LedgerEventConsumer) Close() error {
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			return fmt.Errorf("failed to close kafka reader: %w", err)
		}
	}
	return nil
}
