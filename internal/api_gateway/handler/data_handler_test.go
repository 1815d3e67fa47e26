package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/personal-finance-ledger/internal/api_gateway/middleware"
	"github.com/personal-finance-ledger/internal/domain/shared"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDataHandler_Import(t *testing.T) {
	const doc = "[Accts]\nChecking,1000\n"

	t.Run("Success", func(t *testing.T) {
		mockService := new(MockLedgerService)
		router := setupTestRouter()
		router.Use(middleware.CorrelationID())
		router.POST("/imports/:format", NewDataHandler(testLogger(), mockService).Import)

		mockService.On("Import", mock.Anything, service.ImportRequest{
			Format:        "csv",
			Source:        "bank.csv",
			Text:          doc,
			CorrelationID: "corr-1",
		}).Return(&service.ImportResult{Format: "csv", Source: "bank.csv", Accounts: 1}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/imports/csv?source=bank.csv", strings.NewReader(doc))
		req.Header.Set(middleware.CorrelationIDHeader, "corr-1")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var result service.ImportResult
		decodeData(t, rr.Body.Bytes(), &result)
		assert.Equal(t, 1, result.Accounts)
		mockService.AssertExpectations(t)
	})

	t.Run("FormatError", func(t *testing.T) {
		mockService := new(MockLedgerService)
		router := setupTestRouter()
		router.POST("/imports/:format", NewDataHandler(testLogger(), mockService).Import)

		cause := shared.NewFormatError("json", errors.New("unexpected end of JSON input"))
		mockService.On("Import", mock.Anything, mock.MatchedBy(func(req service.ImportRequest) bool {
			return req.Format == "json" && req.Source == "http"
		})).Return(nil, cause).Once()

		req := httptest.NewRequest(http.MethodPost, "/imports/json", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "INVALID_FORMAT", decodeError(t, rr.Body.Bytes()).Code)
	})

	t.Run("UnsupportedFormat", func(t *testing.T) {
		mockService := new(MockLedgerService)
		router := setupTestRouter()
		router.POST("/imports/:format", NewDataHandler(testLogger(), mockService).Import)

		mockService.On("Import", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: xml", shared.ErrUnsupportedFormat)).Once()

		req := httptest.NewRequest(http.MethodPost, "/imports/xml", strings.NewReader("<ledger/>"))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, rr.Body.Bytes()).Code)
	})
}

func TestDataHandler_Export(t *testing.T) {
	tests := []struct {
		path        string
		format      string
		contentType string
	}{
		{"/exports/json", "json", "application/json; charset=utf-8"},
		{"/exports/csv", "csv", "text/csv; charset=utf-8"},
		{"/exports/yml", "yaml", "application/yaml; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			mockService := new(MockLedgerService)
			router := setupTestRouter()
			router.GET("/exports/:format", NewDataHandler(testLogger(), mockService).Export)

			mockService.On("Export", mock.Anything, tt.format).Return("document", nil).Once()

			rr := doRequest(router, http.MethodGet, tt.path, "")

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.contentType, rr.Header().Get("Content-Type"))
			assert.Equal(t, "document", rr.Body.String())
			mockService.AssertExpectations(t)
		})
	}

	t.Run("UnknownFormat", func(t *testing.T) {
		mockService := new(MockLedgerService)
		router := setupTestRouter()
		router.GET("/exports/:format", NewDataHandler(testLogger(), mockService).Export)

		rr := doRequest(router, http.MethodGet, "/exports/xml", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Export", mock.Anything, mock.Anything)
	})
}
