package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterSweepInterval = time.Minute

// RateLimiter hands out one token bucket per client key. Buckets are swept out once they
// have refilled completely.
type RateLimiter struct {
	limiters sync.Map
	rps      rate.Limit
	burst    int

	now       func() time.Time
	mu        sync.Mutex
	lastSweep time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second with the given burst.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{rps: rate.Limit(rps), burst: burst, now: time.Now, lastSweep: time.Now()}
}

// Allow consumes a token for key.
func (l *RateLimiter) Allow(key string) bool {
	now := l.now()
	l.maybeSweep(now)
	return l.get(key).AllowN(now, 1)
}

func (l *RateLimiter) get(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.rps, l.burst))
	return actual.(*rate.Limiter)
}

func (l *RateLimiter) maybeSweep(now time.Time) {
	l.mu.Lock()
	if now.Sub(l.lastSweep) < limiterSweepInterval {
		l.mu.Unlock()
		return
	}
	l.lastSweep = now
	l.mu.Unlock()
	l.sweep(now)
}

// sweep drops every bucket that is full at now.
func (l *RateLimiter) sweep(now time.Time) {
	l.limiters.Range(func(key, v any) bool {
		if v.(*rate.Limiter).TokensAt(now) >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

func (l *RateLimiter) size() int {
	n := 0
	l.limiters.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// RateLimitMiddleware rejects requests over the per-IP budget with 429.
func RateLimitMiddleware(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": "too many requests"},
			})
			return
		}
		c.Next()
	}
}
