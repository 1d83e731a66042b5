package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

const limiterIdleTTL = 3 * time.Minute

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu        sync.Mutex
	ips       map[string]*rateLimiterEntry
	r         rate.Limit
	burst     int
	lastSweep time.Time
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter allows r requests per second with the given burst.
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		ips:       make(map[string]*rateLimiterEntry),
		r:         r,
		burst:     burst,
		lastSweep: time.Now(),
	}
}

// GetLimiter returns the limiter for ip. Idle entries are dropped at most
// once a minute while handing out limiters.
func (rl *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	if now.Sub(rl.lastSweep) > time.Minute {
		for k, entry := range rl.ips {
			if now.Sub(entry.lastSeen) > limiterIdleTTL {
				delete(rl.ips, k)
			}
		}
		rl.lastSweep = now
	}

	entry, exists := rl.ips[ip]
	if !exists {
		entry = &rateLimiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
		rl.ips[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter
}

// NewGeneralLimiter: 600 requests per minute.
func NewGeneralLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(10.0), 50)
}

// NewTrackingLimiter bounds progress events: 120 per minute.
func NewTrackingLimiter() *IPRateLimiter {
	return NewIPRateLimiter(rate.Limit(2.0), 20)
}

func RateLimitMiddleware(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !limiter.GetLimiter(ip).Allow() {
			logger.Warn().
				Str("ip", ip).
				Str("path", c.Request.URL.Path).
				Msg("Rate limit exceeded")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"message": "Rate limit exceeded. Please slow down.",
			})
			return
		}
		c.Next()
	}
}
