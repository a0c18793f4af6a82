package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stevensfit/fitness-api/internal/apperror"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(2, time.Minute, 1, 10*time.Minute)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "keys are limited independently")

	now = now.Add(30 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "token refills after window/requests")

	now = now.Add(time.Hour)
	limiter.Allow("10.0.0.3")
	limiter.mu.Lock()
	_, kept := limiter.visitors["10.0.0.1"]
	limiter.mu.Unlock()
	assert.False(t, kept, "idle keys expire after ttl")
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(base))
	router.GET("/boom", func(c *gin.Context) {
		respondError(c, apperror.Persistence("test.boom", context.DeadlineExceeded))
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal_error", body.Error)
	assert.NotContains(t, body.Message, "deadline")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"msg":"request failed"`)
	assert.Contains(t, lines[0], `"request_id":"req-123"`)
	assert.Contains(t, lines[1], `"msg":"request completed"`)
	assert.Contains(t, lines[1], `"request_id":"req-123"`)
	assert.Contains(t, lines[1], `"status":500`)
}

func TestRespondErrorStatuses(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		err  error
		code int
		kind string
	}{
		{apperror.InvalidArgument("op", "id", "bad id"), http.StatusBadRequest, "invalid_argument"},
		{apperror.Unauthorized("op", "wrong password"), http.StatusUnauthorized, "unauthorized"},
		{apperror.NotFound("op", "user", "id", "x"), http.StatusNotFound, "not_found"},
		{apperror.Conflict("op", "user", "username", "x"), http.StatusConflict, "conflict"},
		{context.Canceled, http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err)

			assert.Equal(t, tt.code, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error)
		})
	}
}
