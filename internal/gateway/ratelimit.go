package gateway

import (
	"sync"

	"golang.org/x/time/rate"
)

// CallerLimiter hands out a token-bucket limiter per caller key (the
// authenticated user ID, or the client address when the request carries
// no valid token), so one noisy caller cannot starve the gateway for
// everyone else. original_source's gateway has no rate limiting; this
// adopts golang.org/x/time/rate per the expanded spec's gateway section.
type CallerLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewCallerLimiter(requestsPerSecond float64, burst int) *CallerLimiter {
	return &CallerLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

func (c *CallerLimiter) Allow(callerKey string) bool {
	c.mu.Lock()
	limiter, ok := c.limiters[callerKey]
	if !ok {
		limiter = rate.NewLimiter(c.rps, c.burst)
		c.limiters[callerKey] = limiter
	}
	c.mu.Unlock()
	return limiter.Allow()
}
