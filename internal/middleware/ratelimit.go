package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizlingua/internal/response"
)

// RateLimiter is a token bucket keyed by admin subject, or by client IP for
// unauthenticated callers. Imports are CPU-heavy, so they get their own budget.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type bucket struct {
	tokens     int
	refilledAt time.Time
}

// NewRateLimiter allows rate requests per window for each caller.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go rl.evictLoop()

	return rl
}

// Stop ends the background eviction loop. Calling it again is a no-op.
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// Middleware aborts with 429 once the caller's bucket is empty.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(callerKey(c)) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.rate, refilledAt: now}
		rl.buckets[key] = b
	}

	if windows := int(now.Sub(b.refilledAt) / rl.window); windows > 0 {
		b.tokens = min(rl.rate, b.tokens+windows*rl.rate)
		b.refilledAt = b.refilledAt.Add(time.Duration(windows) * rl.window)
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

func (rl *RateLimiter) evictLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evict()
		}
	}
}

// evict drops buckets that have been full for at least one window.
func (rl *RateLimiter) evict() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, b := range rl.buckets {
		if now.Sub(b.refilledAt) > 2*rl.window {
			delete(rl.buckets, key)
		}
	}
}

func callerKey(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil && claims.Subject != "" {
		return "sub:" + claims.Subject
	}
	return "ip:" + c.ClientIP()
}
