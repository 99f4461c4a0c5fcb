// ABOUTME: Backoff helper for retried external-service calls
// ABOUTME: Exponential growth with jitter, shared by the embedding encoder
package util

import (
	"math/rand/v2"
	"time"
)

const maxBackoff = 30 * time.Second

// CalculateBackoff returns baseDelay doubled per attempt, capped at 30s,
// with up to ±25% jitter. Attempt 0 (the first try) waits nothing.
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	if attempt > 30 {
		attempt = 30
	}

	backoff := baseDelay << uint(attempt)
	if backoff > maxBackoff || backoff <= 0 {
		backoff = maxBackoff
	}

	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}
