package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/domain/shared"
)

// Import parses req.Text completely and loads it. A malformed document is
// rejected to the dead-letter topic and leaves the store untouched.
func (s *LedgerServiceImpl) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	c, err := codec.Lookup(req.Format)
	if err != nil {
		return nil, err
	}
	req.Format = c.Name()

	started := time.Now()
	set, err := codec.Import(s.store, req.Text, c)
	if err != nil {
		var formatErr *shared.FormatError
		if errors.As(err, &formatErr) {
			s.Reject(ctx, req, err)
		}
		return nil, err
	}

	result := s.imported(ctx, req, set)
	s.logger.InfoContext(ctx, "import completed",
		"format", req.Format,
		"source", req.Source,
		"accounts", result.Accounts,
		"categories", result.Categories,
		"transactions", result.Transactions,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}

// Commit loads a set parsed elsewhere, such as by the batch importer
func (s *LedgerServiceImpl) Commit(ctx context.Context, req ImportRequest, set *codec.RecordSet) *ImportResult {
	codec.Load(s.store, set)
	result := s.imported(ctx, req, set)
	s.logger.InfoContext(ctx, "parsed set loaded",
		"format", req.Format,
		"source", req.Source,
		"transactions", result.Transactions,
	)
	return result
}

// Reject dead-letters the raw document and announces the rejection
func (s *LedgerServiceImpl) Reject(ctx context.Context, req ImportRequest, cause error) {
	logger := s.logger
	if req.CorrelationID != "" {
		logger = logger.With("correlation_id", req.CorrelationID)
	}
	logger.WarnContext(ctx, "import rejected", "format", req.Format, "source", req.Source, "error", cause)

	if err := s.deadLetter.PublishToDLQ(ctx, dlqKey(req), []byte(req.Text), cause.Error()); err != nil {
		logger.ErrorContext(ctx, "failed to dead-letter rejected import", "source", req.Source, "error", err)
	}

	event := newLedgerEvent(shared.EventImportRejected, req)
	if err := s.events.PublishLedgerEvent(ctx, event); err != nil {
		logger.ErrorContext(ctx, "failed to publish ledger event", "event_id", event.EventID, "error", err)
	}
}

// imported builds the result for a loaded set and announces it. A publish
// failure is logged only; the records are already in the store.
func (s *LedgerServiceImpl) imported(ctx context.Context, req ImportRequest, set *codec.RecordSet) *ImportResult {
	result := &ImportResult{Format: req.Format, Source: req.Source}
	if set != nil {
		result.Accounts = len(set.Accts)
		result.Categories = len(set.Cats)
		result.Transactions = len(set.Trans)
	}

	event := newLedgerEvent(shared.EventLedgerImported, req)
	event.Accounts = result.Accounts
	event.Categories = result.Categories
	event.Transactions = result.Transactions
	if err := s.events.PublishLedgerEvent(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish ledger event", "event_id", event.EventID, "error", err)
	}
	return result
}

// Export renders the whole ledger in the named format
func (s *LedgerServiceImpl) Export(ctx context.Context, format string) (string, error) {
	c, err := codec.Lookup(format)
	if err != nil {
		return "", err
	}
	out, err := codec.Export(s.store, c.NewRenderer())
	if err != nil {
		return "", err
	}
	accounts, categories, transactions := s.store.Counts()
	s.logger.InfoContext(ctx, "ledger exported",
		"format", c.Name(),
		"accounts", accounts,
		"categories", categories,
		"transactions", transactions,
	)
	return out, nil
}

func newLedgerEvent(kind shared.EventKind, req ImportRequest) shared.LedgerEvent {
	return shared.LedgerEvent{
		EventID:       uuid.New(),
		Kind:          kind,
		Format:        req.Format,
		Source:        req.Source,
		CorrelationID: req.CorrelationID,
		OccurredAt:    time.Now().UTC(),
	}
}

func dlqKey(req ImportRequest) string {
	if req.Source != "" {
		return req.Source
	}
	return req.Format
}
