package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"cvmatch-backend/internal/matcher"
)

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	if p.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", p.MaxAttempts)
	}
	if p.InitialDelay != time.Second {
		t.Fatalf("expected 1s initial delay, got %s", p.InitialDelay)
	}
	if p.AttemptBudget != 300*time.Second {
		t.Fatalf("expected 300s attempt budget, got %s", p.AttemptBudget)
	}
}

func TestDelayGrowsExponentially(t *testing.T) {
	p := DefaultRetryPolicy()
	if d := p.Delay(1); d != time.Second {
		t.Fatalf("attempt 1: expected 1s, got %s", d)
	}
	if d := p.Delay(2); d != 2*time.Second {
		t.Fatalf("attempt 2: expected 2s, got %s", d)
	}
	if d := p.Delay(3); d != 4*time.Second {
		t.Fatalf("attempt 3: expected 4s, got %s", d)
	}
}

func TestDelayNeverBelowFloor(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 3, InitialDelay: 1500 * time.Millisecond, Multiplier: 0.1}
	for attempt := 1; attempt <= 5; attempt++ {
		if d := p.Delay(attempt); d < p.InitialDelay {
			t.Fatalf("attempt %d: delay %s below floor %s", attempt, d, p.InitialDelay)
		}
	}
	if d := p.Delay(0); d < p.InitialDelay {
		t.Fatalf("out-of-range attempt: delay %s below floor", d)
	}
}

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"schema mismatch", matcher.ErrInvalidResult, false},
		{"not configured", matcher.ErrNotConfigured, false},
		{"deadline", context.DeadlineExceeded, true},
		{"server error", errors.New("http status 503"), true},
		{"timeout text", errors.New("request timeout"), true},
		{"connection refused", errors.New("dial tcp: connection refused"), true},
	}
	for _, tc := range cases {
		if got := retryable(tc.err); got != tc.want {
			t.Fatalf("%s: retryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
