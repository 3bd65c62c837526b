// internal/middleware/rate_limit_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/damaiputra/living-backend/internal/config"
)

func rateLimitedRouter(cfg config.RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	limiters := NewRateLimiters(cfg)

	r := gin.New()
	r.GET("/ping", limiters.General(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hitFrom(r *gin.Engine, addr string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = addr
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitRejectsBeyondBurst(t *testing.T) {
	r := rateLimitedRouter(config.RateLimitConfig{
		Enabled:      true,
		GeneralRPS:   0.001, // effectively no refill within the test
		GeneralBurst: 2,
	})

	assert.Equal(t, http.StatusOK, hitFrom(r, "203.0.113.7:1111"))
	assert.Equal(t, http.StatusOK, hitFrom(r, "203.0.113.7:1111"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "203.0.113.7:1111"))
}

func TestRateLimitIsPerIP(t *testing.T) {
	r := rateLimitedRouter(config.RateLimitConfig{
		Enabled:      true,
		GeneralRPS:   0.001,
		GeneralBurst: 1,
	})

	assert.Equal(t, http.StatusOK, hitFrom(r, "203.0.113.7:1111"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "203.0.113.7:2222"))

	// A different client keeps its own bucket.
	assert.Equal(t, http.StatusOK, hitFrom(r, "198.51.100.9:3333"))
}

func TestRateLimitDisabledPassesEverything(t *testing.T) {
	r := rateLimitedRouter(config.RateLimitConfig{Enabled: false})

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, hitFrom(r, "203.0.113.7:1111"))
	}
}
