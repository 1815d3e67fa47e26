package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/analytics"
	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/shopspring/decimal"
)

// Store is the ledger store as seen by the service
type Store interface {
	account.Repository
	category.Repository
	transaction.Repository
	codec.Loader
	Counts() (accounts, categories, transactions int)
}

// TransactionInput carries the fields of a transaction to record
type TransactionInput struct {
	Type       shared.Direction
	AccountID  uuid.UUID
	Amount     decimal.Decimal
	Date       time.Time
	CategoryID uuid.UUID
	Note       string
}

// ImportRequest is one document to bring into the ledger
type ImportRequest struct {
	Format        string // Codec name; required
	Source        string // File name or other origin, used as the event and DLQ key
	Text          string
	CorrelationID string
}

// ImportResult counts what an import appended
type ImportResult struct {
	Format       string `json:"format"`
	Source       string `json:"source,omitempty"`
	Accounts     int    `json:"accounts"`
	Categories   int    `json:"categories"`
	Transactions int    `json:"transactions"`
}

// LedgerService defines every operation the HTTP and CLI surfaces need
type LedgerService interface {
	// AddAccount creates an account whose balance starts at initialBalance
	// Returns ValidationError for a blank name or negative balance
	AddAccount(ctx context.Context, name string, initialBalance decimal.Decimal) (*account.Account, error)
	// GetAccount returns NotFoundError if the account doesn't exist
	GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error)
	RenameAccount(ctx context.Context, id uuid.UUID, name string) (*account.Account, error)
	RemoveAccount(ctx context.Context, id uuid.UUID) error
	ListAccounts(ctx context.Context) []*account.Account

	AddCategory(ctx context.Context, typ shared.Direction, label string) (*category.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, typ shared.Direction, label string) (*category.Category, error)
	RemoveCategory(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) []*category.Category

	// AddTransaction records a movement; account and category are not checked
	AddTransaction(ctx context.Context, in TransactionInput) (*transaction.Transaction, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	RemoveTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context) []*transaction.Transaction

	// RecalculateBalance replays the account's transactions onto its initial balance
	RecalculateBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	NetDifference(ctx context.Context, start, end time.Time) decimal.Decimal
	GroupByCategory(ctx context.Context) map[string]decimal.Decimal
	Summarize(ctx context.Context, start, end time.Time) analytics.Summary

	// Import parses req.Text completely before loading it; a FormatError leaves the store unchanged
	Import(ctx context.Context, req ImportRequest) (*ImportResult, error)
	// Commit loads an already parsed set, as produced by a batch parse
	Commit(ctx context.Context, req ImportRequest, set *codec.RecordSet) *ImportResult
	// Reject reports a document that failed to parse
	Reject(ctx context.Context, req ImportRequest, cause error)
	Export(ctx context.Context, format string) (string, error)
}
