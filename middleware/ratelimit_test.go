package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"booking-backend/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("redis down")
}

func limitedRouter(l ratelimit.Limiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(l, zerolog.Nop()))
	r.POST("/api/book-appointment", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func post(r http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/book-appointment", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitRejectsAfterLimit(t *testing.T) {
	r := limitedRouter(ratelimit.NewMemoryLimiter(3, 15*time.Minute))

	for i := 0; i < 3; i++ {
		rec := post(r, "10.0.0.1:1234")
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("RateLimit-Limit"))
	}

	rec := post(r, "10.0.0.1:5678")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, RateLimitMessage, body["message"])

	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.2:1234").Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	r := limitedRouter(brokenLimiter{})
	assert.Equal(t, http.StatusCreated, post(r, "10.0.0.1:1234").Code)
}
