package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/analytics"
	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/domain/account"
	"github.com/personal-finance-ledger/internal/domain/category"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockLedgerService struct {
	mock.Mock
}

var _ service.LedgerService = (*MockLedgerService)(nil)

func (m *MockLedgerService) AddAccount(ctx context.Context, name string, initialBalance decimal.Decimal) (*account.Account, error) {
	args := m.Called(ctx, name, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccount(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockLedgerService) RenameAccount(ctx context.Context, id uuid.UUID, name string) (*account.Account, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockLedgerService) RemoveAccount(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) ListAccounts(ctx context.Context) []*account.Account {
	return m.Called(ctx).Get(0).([]*account.Account)
}

func (m *MockLedgerService) AddCategory(ctx context.Context, typ shared.Direction, label string) (*category.Category, error) {
	args := m.Called(ctx, typ, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockLedgerService) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockLedgerService) UpdateCategory(ctx context.Context, id uuid.UUID, typ shared.Direction, label string) (*category.Category, error) {
	args := m.Called(ctx, id, typ, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *MockLedgerService) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) ListCategories(ctx context.Context) []*category.Category {
	return m.Called(ctx).Get(0).([]*category.Category)
}

func (m *MockLedgerService) AddTransaction(ctx context.Context, in service.TransactionInput) (*transaction.Transaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockLedgerService) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockLedgerService) RemoveTransaction(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockLedgerService) ListTransactions(ctx context.Context) []*transaction.Transaction {
	return m.Called(ctx).Get(0).([]*transaction.Transaction)
}

func (m *MockLedgerService) RecalculateBalance(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockLedgerService) NetDifference(ctx context.Context, start, end time.Time) decimal.Decimal {
	return m.Called(ctx, start, end).Get(0).(decimal.Decimal)
}

func (m *MockLedgerService) GroupByCategory(ctx context.Context) map[string]decimal.Decimal {
	return m.Called(ctx).Get(0).(map[string]decimal.Decimal)
}

func (m *MockLedgerService) Summarize(ctx context.Context, start, end time.Time) analytics.Summary {
	return m.Called(ctx, start, end).Get(0).(analytics.Summary)
}

func (m *MockLedgerService) Import(ctx context.Context, req service.ImportRequest) (*service.ImportResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ImportResult), args.Error(1)
}

func (m *MockLedgerService) Commit(ctx context.Context, req service.ImportRequest, set *codec.RecordSet) *service.ImportResult {
	return m.Called(ctx, req, set).Get(0).(*service.ImportResult)
}

func (m *MockLedgerService) Reject(ctx context.Context, req service.ImportRequest, cause error) {
	m.Called(ctx, req, cause)
}

func (m *MockLedgerService) Export(ctx context.Context, format string) (string, error) {
	args := m.Called(ctx, format)
	return args.String(0), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}
