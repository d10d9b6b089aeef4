package middleware

import (
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the per-client rate limiter
type RateLimitConfig struct {
	RequestsPerSecond float64 // <= 0 disables limiting
	Burst             int
	MaxClients        int // limiter table size before it is reset, default 10000
}

// clientLimiter keeps one token bucket per client IP
type clientLimiter struct {
	mu  sync.Mutex
	m   map[string]*rate.Limiter
	r   rate.Limit
	b   int
	max int
}

func (cl *clientLimiter) limiterFor(client string) *rate.Limiter {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if lim, ok := cl.m[client]; ok {
		return lim
	}
	if len(cl.m) >= cl.max {
		cl.m = make(map[string]*rate.Limiter)
	}
	lim := rate.NewLimiter(cl.r, cl.b)
	cl.m[client] = lim
	return lim
}

// RateLimit rejects requests of clients over their budget by calling onLimit, which must abort
func RateLimit(cfg RateLimitConfig, onLimit gin.HandlerFunc) gin.HandlerFunc {
	if cfg.RequestsPerSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	maxClients := cfg.MaxClients
	if maxClients <= 0 {
		maxClients = 10000
	}

	cl := &clientLimiter{
		m:   make(map[string]*rate.Limiter),
		r:   rate.Limit(cfg.RequestsPerSecond),
		b:   burst,
		max: maxClients,
	}

	return func(c *gin.Context) {
		if !cl.limiterFor(c.ClientIP()).Allow() {
			onLimit(c)
			return
		}
		c.Next()
	}
}
