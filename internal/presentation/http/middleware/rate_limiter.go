package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ClientRateLimiter limits requests per client IP so a stuck browser tab
// cannot flood the till
type ClientRateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit
	burst       int
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstSize         int
	CleanupInterval   time.Duration
	EntryTTL          time.Duration
}

// DefaultRateLimiterConfig returns the limits used when none are configured
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// NewClientRateLimiter creates a limiter and starts its cleanup loop.
// Call Stop to end the loop.
func NewClientRateLimiter(cfg RateLimiterConfig) *ClientRateLimiter {
	def := DefaultRateLimiterConfig()
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = def.BurstSize
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.EntryTTL <= 0 {
		cfg.EntryTTL = def.EntryTTL
	}

	rl := &ClientRateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

func (rl *ClientRateLimiter) getLimiter(client string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, ok := rl.limiters[client]; ok {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[client] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

func (rl *ClientRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes entries unused since now minus the TTL
func (rl *ClientRateLimiter) cleanup(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.entryTTL)
	for client, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, client)
		}
	}
}

// Stop ends the cleanup loop
func (rl *ClientRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// Middleware returns a Gin middleware that applies per-client rate limiting
func (rl *ClientRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := rl.getLimiter(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
				"error":   "too_many_requests",
			})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))

		c.Next()
	}
}

// Stats returns current statistics about the rate limiter
func (rl *ClientRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"active_clients":  len(rl.limiters),
		"rate_per_second": float64(rl.rate),
		"burst_size":      rl.burst,
	}
}
