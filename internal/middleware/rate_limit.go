// internal/middleware/rate_limit.go
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/damaiputra/living-backend/internal/config"
	"github.com/damaiputra/living-backend/internal/utils"
)

// ipLimiter hands out one token bucket per client IP and evicts buckets that
// have gone quiet.
type ipLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    rate.Limit
	burst   int
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const bucketIdleTTL = 3 * time.Minute

func newIPLimiter(r rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets: make(map[string]*bucket),
		rate:    r,
		burst:   burst,
	}
	go l.evictIdle()
	return l
}

func (l *ipLimiter) evictIdle() {
	for {
		time.Sleep(time.Minute)
		l.mu.Lock()
		for ip, b := range l.buckets {
			if time.Since(b.lastSeen) > bucketIdleTTL {
				delete(l.buckets, ip)
			}
		}
		l.mu.Unlock()
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[ip]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = time.Now()
	return b.limiter.Allow()
}

func (l *ipLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests, please slow down", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimiters groups the per-surface limiters. The general bucket sits in
// front of everything; auth and upload get tighter, slower-refilling buckets
// of their own.
type RateLimiters struct {
	enabled bool
	general *ipLimiter
	auth    *ipLimiter
	upload  *ipLimiter
}

func NewRateLimiters(cfg config.RateLimitConfig) *RateLimiters {
	return &RateLimiters{
		enabled: cfg.Enabled,
		general: newIPLimiter(rate.Limit(cfg.GeneralRPS), cfg.GeneralBurst),
		auth:    newIPLimiter(rate.Limit(cfg.AuthRPS), cfg.AuthBurst),
		upload:  newIPLimiter(rate.Limit(cfg.UploadRPS), cfg.UploadBurst),
	}
}

func (r *RateLimiters) General() gin.HandlerFunc {
	if !r.enabled {
		return passthrough
	}
	return r.general.middleware()
}

func (r *RateLimiters) Auth() gin.HandlerFunc {
	if !r.enabled {
		return passthrough
	}
	return r.auth.middleware()
}

func (r *RateLimiters) Upload() gin.HandlerFunc {
	if !r.enabled {
		return passthrough
	}
	return r.upload.middleware()
}

func passthrough(c *gin.Context) {
	c.Next()
}
