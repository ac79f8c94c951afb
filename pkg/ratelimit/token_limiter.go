package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget for AI API calls.
// The budget refills fully at the start of each one-minute window.
type TokenLimiter struct {
	mu        sync.Mutex
	limit     int
	remaining int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter with the given tokens-per-minute budget.
func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		limit:     tokensPerMinute,
		remaining: tokensPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.refill()
	return l.remaining
}

// Wait blocks until the given number of tokens fits in the budget or the
// context is canceled. Requests larger than the whole budget are admitted
// once a fresh window starts.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		l.refill()
		if tokens >= l.limit || tokens <= l.remaining {
			l.remaining -= tokens
			if l.remaining < 0 {
				l.remaining = 0
			}
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (l *TokenLimiter) refill() {
	now := time.Now()
	if now.After(l.windowEnd) {
		l.remaining = l.limit
		l.windowEnd = now.Add(time.Minute)
	}
}
