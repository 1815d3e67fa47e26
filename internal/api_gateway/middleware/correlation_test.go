package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(header string) (*httptest.ResponseRecorder, string, string) {
		router := gin.New()
		router.Use(CorrelationID())

		var fromGin, fromRequest string
		router.GET("/test", func(c *gin.Context) {
			fromGin = GetCorrelationID(c)
			fromRequest = CorrelationIDFromContext(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if header != "" {
			req.Header.Set(CorrelationIDHeader, header)
		}
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		return rr, fromGin, fromRequest
	}

	t.Run("GeneratesCorrelationIDIfNotProvided", func(t *testing.T) {
		rr, fromGin, fromRequest := serve("")

		assert.Equal(t, http.StatusOK, rr.Code)
		respHeaderID := rr.Header().Get(CorrelationIDHeader)
		_, err := uuid.Parse(respHeaderID)
		assert.NoError(t, err, "Generated Correlation ID should be a valid UUID")
		assert.Equal(t, respHeaderID, fromGin)
		assert.Equal(t, respHeaderID, fromRequest)
	})

	t.Run("UsesCorrelationIDIfProvided", func(t *testing.T) {
		rr, fromGin, fromRequest := serve("upstream-42")

		assert.Equal(t, "upstream-42", rr.Header().Get(CorrelationIDHeader))
		assert.Equal(t, "upstream-42", fromGin)
		assert.Equal(t, "upstream-42", fromRequest)
	})
}

func TestGetCorrelationID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsIDFromContextIfExists", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(CorrelationIDKey, "abc")
		assert.Equal(t, "abc", GetCorrelationID(c))
	})

	t.Run("ReturnsEmptyStringIfIDInContextIsNotString", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(CorrelationIDKey, 12345)
		assert.Empty(t, GetCorrelationID(c))
	})

	t.Run("PlainContext", func(t *testing.T) {
		assert.Empty(t, CorrelationIDFromContext(context.Background()))
	})
}
