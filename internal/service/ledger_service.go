package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/analytics"
	"github.com/personal-finance-ledger/internal/balance"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/personal-finance-ledger/internal/platform/messaging/producers"
	"github.com/shopspring/decimal"
)

var _ LedgerService = (*LedgerServiceImpl)(nil)

// LedgerServiceImpl implements the LedgerService interface over a Store
type LedgerServiceImpl struct {
	logger       *slog.Logger
	store        Store
	engine       *analytics.Engine
	recalculator *balance.Recalculator
	events       producers.EventPublisher
	deadLetter   producers.DeadLetterPublisher
}

// NewLedgerService wires analytics and balance recalculation onto store.
// Nil publishers are replaced by no-ops.
func NewLedgerService(
	logger *slog.Logger,
	store Store,
	events producers.EventPublisher,
	deadLetter producers.DeadLetterPublisher,
) *LedgerServiceImpl {
	if events == nil {
		events = producers.NoopPublisher{}
	}
	if deadLetter == nil {
		deadLetter = producers.NoopPublisher{}
	}
	return &LedgerServiceImpl{
		logger:       logger,
		store:        store,
		engine:       analytics.NewEngine(store),
		recalculator: balance.NewRecalculator(store),
		events:       events,
		deadLetter:   deadLetter,
	}
}

// AddAccount opens an account whose balance starts at initialBalance
func (s *LedgerServiceImpl) AddAccount(ctx context.Context, name string, initialBalance decimal.Decimal) (*account.Account, error) {
	acc, err := account.NewAccount(name, initialBalance)
	if err != nil {
		return nil, err
	}
	s.store.AddAccount(acc)
	s.logger.InfoContext(ctx, "account created", "account_id", acc.ID, "initial_balance", acc.InitialBalance.String())
	return acc, nil
}

// GetAccount returns a copy of the stored account
func (s *LedgerServiceImpl) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.store.FindAccount(id)
}

// RenameAccount validates and applies the new name, then returns the updated account
func (s *LedgerServiceImpl) RenameAccount(ctx context.Context, id uuid.UUID, name string) (*account.Account, error) {
	if err := s.store.UpdateAccount(id, func(a *account.Account) error {
		return a.Rename(name)
	}); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "account renamed", "account_id", id)
	return s.store.FindAccount(id)
}

// RemoveAccount deletes the account only. Its transactions stay in the log.
func (s *LedgerServiceImpl) RemoveAccount(ctx context.Context, id uuid.UUID) error {
	if !s.store.RemoveAccount(id) {
		return shared.NotFoundError{Kind: shared.KindAccount, ID: id.String()}
	}
	s.logger.InfoContext(ctx, "account removed", "account_id", id)
	return nil
}

// ListAccounts returns accounts in insertion order
func (s *LedgerServiceImpl) ListAccounts(ctx context.Context) []*account.Account {
	return s.store.Accounts()
}

// AddCategory creates a category of the given direction
func (s *LedgerServiceImpl) AddCategory(ctx context.Context, typ shared.Direction, label string) (*category.Category, error) {
	c, err := category.NewCategory(typ, label)
	if err != nil {
		return nil, err
	}
	s.store.AddCategory(c)
	s.logger.InfoContext(ctx, "category created", "category_id", c.ID, "type", c.Type)
	return c, nil
}

// GetCategory returns a copy of the stored category
func (s *LedgerServiceImpl) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return s.store.FindCategory(id)
}

// UpdateCategory replaces both the type and the label
func (s *LedgerServiceImpl) UpdateCategory(ctx context.Context, id uuid.UUID, typ shared.Direction, label string) (*category.Category, error) {
	if err := s.store.UpdateCategory(id, func(c *category.Category) error {
		return c.Update(typ, label)
	}); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "category updated", "category_id", id)
	return s.store.FindCategory(id)
}

// RemoveCategory deletes the category. Transactions keep the dangling id.
func (s *LedgerServiceImpl) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	if !s.store.RemoveCategory(id) {
		return shared.NotFoundError{Kind: shared.KindCategory, ID: id.String()}
	}
	s.logger.InfoContext(ctx, "category removed", "category_id", id)
	return nil
}

// ListCategories returns categories in insertion order
func (s *LedgerServiceImpl) ListCategories(ctx context.Context) []*category.Category {
	return s.store.Categories()
}

// AddTransaction records a transaction without touching any balance
func (s *LedgerServiceImpl) AddTransaction(ctx context.Context, in TransactionInput) (*transaction.Transaction, error) {
	t, err := transaction.NewTransaction(in.Type, in.AccountID, in.Amount, in.Date, in.CategoryID, in.Note)
	if err != nil {
		return nil, err
	}
	s.store.AddTransaction(t)
	s.logger.InfoContext(ctx, "transaction recorded",
		"transaction_id", t.ID,
		"account_id", t.AccountID,
		"type", t.Type,
	)
	return t, nil
}

// GetTransaction returns a copy of the stored transaction
func (s *LedgerServiceImpl) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return s.store.FindTransaction(id)
}

// RemoveTransaction deletes one transaction from the log
func (s *LedgerServiceImpl) RemoveTransaction(ctx context.Context, id uuid.UUID) error {
	if !s.store.RemoveTransaction(id) {
		return shared.NotFoundError{Kind: shared.KindTransaction, ID: id.String()}
	}
	s.logger.InfoContext(ctx, "transaction removed", "transaction_id", id)
	return nil
}

// ListTransactions returns the log in insertion order
func (s *LedgerServiceImpl) ListTransactions(ctx context.Context) []*transaction.Transaction {
	return s.store.Transactions()
}

// RecalculateBalance replays the log onto the account and stores the result
func (s *LedgerServiceImpl) RecalculateBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	bal, err := s.recalculator.Recalculate(id)
	if err != nil {
		return decimal.Zero, err
	}
	s.logger.InfoContext(ctx, "balance recalculated", "account_id", id, "balance", bal.String())
	return bal, nil
}

// NetDifference is income minus expense within [start, end]
func (s *LedgerServiceImpl) NetDifference(ctx context.Context, start, end time.Time) decimal.Decimal {
	return s.engine.CalculateNet(start, end)
}

// GroupByCategory sums signed amounts per category label
func (s *LedgerServiceImpl) GroupByCategory(ctx context.Context) map[string]decimal.Decimal {
	return s.engine.GroupByCategory()
}

// Summarize splits a date range into income and expense totals
func (s *LedgerServiceImpl) Summarize(ctx context.Context, start, end time.Time) analytics.Summary {
	return s.engine.Summarize(start, end)
}
