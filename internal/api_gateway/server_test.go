package api_gateway

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/personal-finance-ledger/internal/config"
	"github.com/personal-finance-ledger/internal/data/memory"
	"github.com/personal-finance-ledger/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Application: config.ApplicationConfig{Env: "test", Name: "ledger-test"},
		Server: config.ServerConfig{
			Port:            0,
			ShutdownTimeout: time.Second,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			IdleTimeout:     time.Second,
		},
	}
	ledger := service.NewLedgerService(log, memory.NewLedgerStore(), nil, nil)
	return NewServer(log, cfg, ledger)
}

func serve(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	rr := serve(t, srv.Handler(), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rr.Header().Get("X-Correlation-ID"))
}

func TestServer_ImportAnalyseExport(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	doc := strings.Join([]string{
		"[Accts]",
		"Checking,1000",
		"[Cats]",
		"Income,Salary",
		"Expense,Food",
	}, "\n")
	rr := serve(t, h, http.MethodPost, "/api/v1/imports/csv?source=seed.csv", "text/csv", doc)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var accounts struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	rr = serve(t, h, http.MethodGet, "/api/v1/accounts", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &accounts))
	require.Len(t, accounts.Data, 1)
	accountID := accounts.Data[0].ID

	var categories struct {
		Data []struct {
			ID    string `json:"id"`
			Label string `json:"label"`
		} `json:"data"`
	}
	rr = serve(t, h, http.MethodGet, "/api/v1/categories", "", "")
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &categories))
	require.Len(t, categories.Data, 2)
	salaryID, foodID := categories.Data[0].ID, categories.Data[1].ID

	for _, body := range []string{
		`{"type":"Income","account_id":"` + accountID + `","amount":"800","date":"2023-01-05","category_id":"` + salaryID + `"}`,
		`{"type":"Expense","account_id":"` + accountID + `","amount":"200","date":"2023-01-20","category_id":"` + foodID + `"}`,
		`{"type":"Expense","account_id":"` + accountID + `","amount":"50","date":"2023-02-02","category_id":"` + foodID + `"}`,
	} {
		rr = serve(t, h, http.MethodPost, "/api/v1/transactions", "application/json", body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	}

	rr = serve(t, h, http.MethodGet, "/api/v1/analytics/net?start=2023-01-01&end=2023-01-31", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"net":"600"`)

	rr = serve(t, h, http.MethodGet, "/api/v1/analytics/categories", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"Food":"-250"`)
	assert.Contains(t, rr.Body.String(), `"Salary":"800"`)

	rr = serve(t, h, http.MethodPost, "/api/v1/accounts/"+accountID+"/recalculate", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"balance":"1550"`)

	rr = serve(t, h, http.MethodGet, "/api/v1/exports/csv", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "[Accts]\n"))
	assert.Contains(t, rr.Body.String(), "Checking,1000")
}

func TestServer_RejectedImportLeavesLedgerUnchanged(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	rr := serve(t, h, http.MethodPost, "/api/v1/imports/json", "application/json", `{"accts":[`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_FORMAT")

	rr = serve(t, h, http.MethodGet, "/api/v1/accounts", "", "")
	assert.JSONEq(t, `[]`, string(dataField(t, rr.Body.Bytes())))
}

func TestServer_StopWithoutStart(t *testing.T) {
	srv := newTestServer(t)
	assert.NoError(t, srv.Stop(context.Background()))
}

func dataField(t *testing.T, body []byte) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &envelope))
	return envelope.Data
}
