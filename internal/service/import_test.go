package service

import (
	"context"
	"errors"
	"testing"

	"github.com/personal-finance-ledger/internal/codec"
	"github.com/personal-finance-ledger/internal/data/memory"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("SuccessPublishesEvent", func(t *testing.T) {
		store := memory.NewLedgerStore()
		events := new(MockEventPublisher)
		dlq := new(MockDeadLetterPublisher)
		svc := NewLedgerService(discardLogger(), store, events, dlq)

		events.On("PublishLedgerEvent", ctx, mock.MatchedBy(func(e shared.LedgerEvent) bool {
			return e.Kind == shared.EventLedgerImported &&
				e.Format == "csv" &&
				e.Source == "bank.csv" &&
				e.Accounts == 1 &&
				e.CorrelationID == "corr-1"
		})).Return(nil).Once()

		result, err := svc.Import(ctx, ImportRequest{
			Format:        "CSV",
			Source:        "bank.csv",
			Text:          "[Accts]\nTestAcc,1000\n",
			CorrelationID: "corr-1",
		})
		require.NoError(t, err)
		assert.Equal(t, &ImportResult{Format: "csv", Source: "bank.csv", Accounts: 1}, result)
		assert.Len(t, store.Accounts(), 1)

		events.AssertExpectations(t)
		dlq.AssertNotCalled(t, "PublishToDLQ", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("FormatErrorIsDeadLettered", func(t *testing.T) {
		store := memory.NewLedgerStore()
		events := new(MockEventPublisher)
		dlq := new(MockDeadLetterPublisher)
		svc := NewLedgerService(discardLogger(), store, events, dlq)
		text := `{"Accts": [`

		dlq.On("PublishToDLQ", ctx, "upload.json", []byte(text), mock.AnythingOfType("string")).Return(nil).Once()
		events.On("PublishLedgerEvent", ctx, mock.MatchedBy(func(e shared.LedgerEvent) bool {
			return e.Kind == shared.EventImportRejected
		})).Return(nil).Once()

		_, err := svc.Import(ctx, ImportRequest{Format: "json", Source: "upload.json", Text: text})

		var formatErr *shared.FormatError
		require.ErrorAs(t, err, &formatErr)
		assert.Empty(t, store.Accounts())
		dlq.AssertExpectations(t)
		events.AssertExpectations(t)
	})

	t.Run("PublishFailureDoesNotFailImport", func(t *testing.T) {
		store := memory.NewLedgerStore()
		events := new(MockEventPublisher)
		svc := NewLedgerService(discardLogger(), store, events, nil)

		events.On("PublishLedgerEvent", ctx, mock.Anything).Return(errors.New("broker down")).Once()

		_, err := svc.Import(ctx, ImportRequest{Format: "csv", Text: "[Accts]\nA,1"})
		require.NoError(t, err)
		assert.Len(t, store.Accounts(), 1)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		svc, _ := newTestService()
		_, err := svc.Import(ctx, ImportRequest{Format: "xml", Text: "<a/>"})
		assert.ErrorIs(t, err, shared.ErrUnsupportedFormat)
	})
}

func TestLedgerService_CommitAndExport(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	set, err := codec.CSV{}.Parse("[Cats]\nIncome,Salary\nExpense,Food\n")
	require.NoError(t, err)

	result := svc.Commit(ctx, ImportRequest{Format: "csv", Source: "cats.csv"}, set)
	assert.Equal(t, 2, result.Categories)
	assert.Len(t, store.Categories(), 2)

	out, err := svc.Export(ctx, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "label: Salary")

	_, err = svc.Export(ctx, "toml")
	assert.ErrorIs(t, err, shared.ErrUnsupportedFormat)
}
