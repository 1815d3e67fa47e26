package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		method    string
		target    string
		status    int
		wantLevel string
		wantPath  string
	}{
		{name: "Success", method: http.MethodGet, target: "/analytics/net?start=2023-01-01", status: http.StatusOK, wantLevel: "INFO", wantPath: "/analytics/net?start=2023-01-01"},
		{name: "ClientError", method: http.MethodPost, target: "/imports/xml", status: http.StatusBadRequest, wantLevel: "WARN", wantPath: "/imports/xml"},
		{name: "ServerError", method: http.MethodGet, target: "/boom", status: http.StatusInternalServerError, wantLevel: "ERROR", wantPath: "/boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logBuffer bytes.Buffer
			testLogger := slog.New(slog.NewJSONHandler(&logBuffer, &slog.HandlerOptions{Level: slog.LevelInfo}))

			router := gin.New()
			router.Use(CorrelationID())
			router.Use(Logger(testLogger))
			router.Handle(tt.method, strings.Split(tt.target, "?")[0], func(c *gin.Context) {
				c.String(tt.status, "body")
			})

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set(CorrelationIDHeader, "corr-"+tt.name)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			logOutput := logBuffer.String()
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, logOutput, `"level":"`+tt.wantLevel+`"`)
			assert.Contains(t, logOutput, `"msg":"HTTP request"`)
			assert.Contains(t, logOutput, `"method":"`+tt.method+`"`)
			assert.Contains(t, logOutput, `"path":"`+tt.wantPath+`"`)
			assert.Contains(t, logOutput, `"bytes":4`)
			assert.Contains(t, logOutput, `"correlation_id":"corr-`+tt.name+`"`)
		})
	}
}
