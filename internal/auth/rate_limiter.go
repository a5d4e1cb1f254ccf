package auth

import (
	"sync"
	"time"
)

// RateLimiter is a token-bucket limiter keyed by client label.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*tokenBucket
	rate    int
	window  time.Duration
}

type tokenBucket struct {
	tokens   int
	lastFill time.Time
}

func NewRateLimiter(ratePerWindow int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets: map[string]*tokenBucket{},
		rate:    ratePerWindow,
		window:  window,
	}
}

// Allow reports whether a request for key may proceed; when denied it
// also returns how long to wait before the next token. A rate of zero
// or less means unlimited.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	if rl.rate <= 0 {
		return true, 0
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	bucket, ok := rl.buckets[key]
	if !ok {
		rl.buckets[key] = &tokenBucket{tokens: rl.rate - 1, lastFill: now}
		return true, 0
	}

	refill := int(float64(now.Sub(bucket.lastFill)) / float64(rl.window) * float64(rl.rate))
	if refill > 0 {
		bucket.tokens = min(rl.rate, bucket.tokens+refill)
		bucket.lastFill = now
	}
	if bucket.tokens > 0 {
		bucket.tokens--
		return true, 0
	}
	return false, rl.window / time.Duration(rl.rate)
}
