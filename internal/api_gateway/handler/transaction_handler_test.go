package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/domain/transaction"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTransactionHandler_Create(t *testing.T) {
	accountID := uuid.New()
	categoryID := uuid.New()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockLedgerService)
		router := setupTestRouter()
		router.POST("/transactions", NewTransactionHandler(testLogger(), mockService).Create)

		tx, err := transaction.NewTransaction(shared.Income, accountID, decimal.RequireFromString("500.25"), date, categoryID, "pay")
		require.NoError(t, err)

		mockService.On("AddTransaction", mock.Anything, mock.MatchedBy(func(in service.TransactionInput) bool {
			return in.Type == shared.Income &&
				in.AccountID == accountID &&
				in.CategoryID == categoryID &&
				in.Amount.Equal(decimal.RequireFromString("500.25")) &&
				in.Date.Equal(date) &&
				in.Note == "pay"
		})).Return(tx, nil).Once()

		body := `{"type":"Income","account_id":"` + accountID.String() + `","amount":"500.25","date":"2024-01-15","category_id":"` + categoryID.String() + `","note":"pay"}`
		rr := doRequest(router, http.MethodPost, "/transactions", body)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var resp TransactionResponse
		decodeData(t, rr.Body.Bytes(), &resp)
		assert.Equal(t, "2024-01-15", resp.Date)
		assert.Equal(t, "500.25", resp.Amount)
		mockService.AssertExpectations(t)
	})

	t.Run("BadInput", func(t *testing.T) {
		tests := []struct {
			name string
			body string
		}{
			{"MissingAccount", `{"type":"Income","amount":1,"date":"2024-01-15","category_id":"` + categoryID.String() + `"}`},
			{"AccountNotUUID", `{"type":"Income","account_id":"abc","amount":1,"date":"2024-01-15","category_id":"` + categoryID.String() + `"}`},
			{"BadDirection", `{"type":"Refund","account_id":"` + accountID.String() + `","amount":1,"date":"2024-01-15","category_id":"` + categoryID.String() + `"}`},
			{"BadDate", `{"type":"Income","account_id":"` + accountID.String() + `","amount":1,"date":"15/01/2024","category_id":"` + categoryID.String() + `"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockService := new(MockLedgerService)
				router := setupTestRouter()
				router.POST("/transactions", NewTransactionHandler(testLogger(), mockService).Create)

				rr := doRequest(router, http.MethodPost, "/transactions", tt.body)

				assert.Equal(t, http.StatusBadRequest, rr.Code)
				mockService.AssertNotCalled(t, "AddTransaction", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestTransactionHandler_List(t *testing.T) {
	mockService := new(MockLedgerService)
	router := setupTestRouter()
	router.GET("/transactions", NewTransactionHandler(testLogger(), mockService).List)

	first, second := uuid.New(), uuid.New()
	date := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	a, err := transaction.NewTransaction(shared.Expense, first, decimal.NewFromInt(10), date, uuid.New(), "")
	require.NoError(t, err)
	b, err := transaction.NewTransaction(shared.Expense, second, decimal.NewFromInt(20), date, uuid.New(), "")
	require.NoError(t, err)
	mockService.On("ListTransactions", mock.Anything).Return([]*transaction.Transaction{a, b})

	rr := doRequest(router, http.MethodGet, "/transactions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []TransactionResponse
	decodeData(t, rr.Body.Bytes(), &all)
	assert.Len(t, all, 2)

	rr = doRequest(router, http.MethodGet, "/transactions?account_id="+second.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var filtered []TransactionResponse
	decodeData(t, rr.Body.Bytes(), &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, b.ID.String(), filtered[0].ID)

	rr = doRequest(router, http.MethodGet, "/transactions?account_id=nope", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTransactionHandler_GetAndDelete(t *testing.T) {
	mockService := new(MockLedgerService)
	h := NewTransactionHandler(testLogger(), mockService)
	router := setupTestRouter()
	router.GET("/transactions/:id", h.GetByID)
	router.DELETE("/transactions/:id", h.Delete)

	id := uuid.New()
	missing := shared.NotFoundError{Kind: shared.KindTransaction, ID: id.String()}
	mockService.On("GetTransaction", mock.Anything, id).Return(nil, missing).Once()
	mockService.On("RemoveTransaction", mock.Anything, id).Return(missing).Once()

	rr := doRequest(router, http.MethodGet, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(router, http.MethodDelete, "/transactions/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	mockService.AssertExpectations(t)
}
