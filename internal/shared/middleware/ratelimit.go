package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	sharedError "github.com/nagoyameshi/go-api-server/internal/shared/error"
	"github.com/nagoyameshi/go-api-server/internal/shared/logger"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	rate     rate.Limit
	burst    int
	ttl      time.Duration
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewRateLimiter(perSecond, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 1
	}
	if burst <= 0 {
		burst = perSecond
	}
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		ttl:      10 * time.Minute,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	entry, ok := rl.limiters[key]
	if !ok {
		rl.evict(now)
		entry = &limiterEntry{limiter: rate.NewLimiter(rl.rate, rl.burst), lastSeen: now}
		rl.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.Allow()
}

// evict drops idle buckets. Called with mu held.
func (rl *RateLimiter) evict(now time.Time) {
	for key, entry := range rl.limiters {
		if now.Sub(entry.lastSeen) > rl.ttl {
			delete(rl.limiters, key)
		}
	}
}

// Middleware answers 429 once the caller's bucket is empty.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			logger.FromContext(c.Request.Context()).Warn("rate limit exceeded",
				"ip", c.ClientIP(),
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(sharedError.TooManyRequests.Status, sharedError.TooManyRequests)
			return
		}
		c.Next()
	}
}
