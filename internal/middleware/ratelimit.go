package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter is a fixed-window per-IP request counter.
type RateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*window
	limit     int
	interval  time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type window struct {
	start time.Time
	count int
}

// NewRateLimiter allows limit requests per interval from each client IP.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*window),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

// Allow records one request from ip and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)

	w, ok := rl.visitors[ip]
	if !ok || now.Sub(w.start) >= rl.interval {
		w = &window{start: now}
		rl.visitors[ip] = w
	}
	if w.count >= rl.limit {
		return false
	}
	w.count++
	return true
}

// Middleware limits the requests it guards. Rejected requests are handed to
// onLimit, which must write the response.
func (rl *RateLimiter) Middleware(onLimit gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			onLimit(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// sweep drops windows that have ended. Caller holds mu.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.interval {
		return
	}
	rl.lastSweep = now
	for ip, w := range rl.visitors {
		if now.Sub(w.start) >= rl.interval {
			delete(rl.visitors, ip)
		}
	}
}
