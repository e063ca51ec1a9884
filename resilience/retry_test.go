package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) *Retry {
	return NewRetry(RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	})
}

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := fastRetry(3).Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("redis: connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	boom := errors.New("redis down")
	calls := 0
	err := fastRetry(2).Execute(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	if !errors.Is(err, ErrMaxRetriesExceeded) || !errors.Is(err, boom) {
		t.Fatalf("Execute() = %v, want ErrMaxRetriesExceeded wrapping %v", err, boom)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetry_SingleAttemptReturnsRawError(t *testing.T) {
	boom := errors.New("boom")
	err := fastRetry(1).Execute(context.Background(), func(context.Context) error { return boom })
	if err != boom {
		t.Errorf("Execute() = %v, want %v", err, boom)
	}
}

func TestRetry_PermanentNotRetried(t *testing.T) {
	calls := 0
	base := errors.New("bad key")
	err := fastRetry(5).Execute(context.Background(), func(context.Context) error {
		calls++
		return Permanent(base)
	})
	if !errors.Is(err, base) || errors.Is(err, ErrMaxRetriesExceeded) {
		t.Fatalf("Execute() = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ContextCanceledDuringBackoff(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Hour, MaxDelay: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())

	err := r.Execute(ctx, func(context.Context) error {
		cancel()
		return errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() = %v, want context.Canceled", err)
	}
}

func TestRetry_OnRetry(t *testing.T) {
	var attempts []int
	r := NewRetry(RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		OnRetry:      func(attempt int, _ error, _ time.Duration) { attempts = append(attempts, attempt) },
	})
	_ = r.Execute(context.Background(), func(context.Context) error { return errors.New("x") })
	if len(attempts) != 2 || attempts[0] != 1 || attempts[1] != 2 {
		t.Errorf("OnRetry attempts = %v, want [1 2]", attempts)
	}
}

func TestRetry_Delay(t *testing.T) {
	tests := []struct {
		name     string
		strategy BackoffStrategy
		attempt  int
		want     time.Duration
	}{
		{"exponential 1", BackoffExponential, 1, 10 * time.Millisecond},
		{"exponential 3", BackoffExponential, 3, 40 * time.Millisecond},
		{"exponential capped", BackoffExponential, 10, 100 * time.Millisecond},
		{"linear 3", BackoffLinear, 3, 30 * time.Millisecond},
		{"constant 5", BackoffConstant, 5, 10 * time.Millisecond},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRetry(RetryConfig{
				InitialDelay: 10 * time.Millisecond,
				MaxDelay:     100 * time.Millisecond,
				Strategy:     tc.strategy,
			})
			if got := r.delay(tc.attempt); got != tc.want {
				t.Errorf("delay(%d) = %v, want %v", tc.attempt, got, tc.want)
			}
		})
	}
}

func TestRetry_Jitter(t *testing.T) {
	r := NewRetry(RetryConfig{InitialDelay: 100 * time.Millisecond, Strategy: BackoffConstant, Jitter: true})
	for range 50 {
		d := r.delay(1)
		if d < 100*time.Millisecond || d >= 125*time.Millisecond {
			t.Fatalf("delay() = %v, want within [100ms, 125ms)", d)
		}
	}
}

func TestNewRetry_Defaults(t *testing.T) {
	cfg := NewRetry(RetryConfig{}).Config()
	if cfg.MaxAttempts != 3 || cfg.InitialDelay != 50*time.Millisecond || cfg.MaxDelay != 2*time.Second || cfg.Multiplier != 2 {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.RetryIf == nil {
		t.Error("RetryIf default not set")
	}
}
