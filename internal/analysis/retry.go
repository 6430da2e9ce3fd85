package analysis

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"cvmatch-backend/internal/matcher"
)

// RetryPolicy is the contract the task runner honors when executing an
// analysis: a bounded number of attempts, exponential backoff that never
// retries faster than the floor, and a wall-clock budget per attempt.
type RetryPolicy struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	Multiplier    float64
	AttemptBudget time.Duration
}

// DefaultRetryPolicy returns the production policy: 3 attempts, 1s backoff
// floor doubling per retry, 300s execution budget per attempt.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:   3,
		InitialDelay:  1000 * time.Millisecond,
		Multiplier:    2.0,
		AttemptBudget: 300 * time.Second,
	}
}

// Delay returns the wait before retry attempt n (1-indexed: attempt 1 is the
// first retry after the initial failure). It never returns less than the
// configured floor.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 2.0
	}
	delay := float64(p.InitialDelay)
	for i := 1; i < attempt; i++ {
		delay *= multiplier
	}
	if d := time.Duration(delay); d > p.InitialDelay {
		return d
	}
	return p.InitialDelay
}

// retryable reports whether a matcher failure is worth another attempt.
// Schema mismatches and configuration errors are deterministic and fail fast.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, matcher.ErrInvalidResult) || errors.Is(err, matcher.ErrNotConfigured) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
