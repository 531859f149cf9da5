package crawler

import (
	"context"
	"crypto/rand"
	"errors"
	"math"
	"math/big"
	"time"
)

// retryableStatuses are the only HTTP codes treated as transient. Everything
// else, 4xx included, is a definitive outcome and ends the attempt loop.
var retryableStatuses = map[int]struct{}{
	429: {},
	500: {},
	502: {},
	503: {},
	504: {},
}

// ExponentialRetryPolicy implements RetryPolicy with jittered backoff.
type ExponentialRetryPolicy struct {
	maxAttempts int
	baseDelay   time.Duration
	maxDelay    time.Duration
}

// NewExponentialRetryPolicy builds a policy with the default three-attempt
// budget.
func NewExponentialRetryPolicy() *ExponentialRetryPolicy {
	return &ExponentialRetryPolicy{
		maxAttempts: 3,
		baseDelay:   250 * time.Millisecond,
		maxDelay:    5 * time.Second,
	}
}

// MaxAttempts returns the total attempt budget, first try included.
func (p *ExponentialRetryPolicy) MaxAttempts() int {
	return p.maxAttempts
}

// RetryStatus reports whether the HTTP status is transient.
func (p *ExponentialRetryPolicy) RetryStatus(statusCode int) bool {
	_, ok := retryableStatuses[statusCode]
	return ok
}

// RetryError decides whether a transport-level error is retryable.
// Cancellation is terminal; connection errors and timeouts are transient.
func (p *ExponentialRetryPolicy) RetryError(err error, attempt int) bool {
	if err == nil {
		return false
	}
	if attempt >= p.maxAttempts {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// Backoff returns the wait duration before the given attempt (1-based; there
// is no wait before the first attempt).
func (p *ExponentialRetryPolicy) Backoff(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}
	delay := float64(p.baseDelay) * math.Pow(2, float64(attempt-2))
	if delay > float64(p.maxDelay) {
		delay = float64(p.maxDelay)
	}
	jitter := p.randomJitter(time.Duration(delay) / 2)
	return time.Duration(delay/2) + jitter
}

func (p *ExponentialRetryPolicy) randomJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	bound := big.NewInt(int64(limit))
	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return limit / 2
	}
	return time.Duration(n.Int64())
}
