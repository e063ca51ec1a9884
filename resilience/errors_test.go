package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestPermanent(t *testing.T) {
	base := errors.New("cache: key is invalid")

	if Permanent(nil) != nil {
		t.Fatal("Permanent(nil) != nil")
	}

	err := fmt.Errorf("set: %w", Permanent(base))
	if !errors.Is(err, base) {
		t.Error("errors.Is does not see through Permanent")
	}
	if !IsPermanent(err) {
		t.Error("IsPermanent(wrapped) = false")
	}
	if IsTransient(err) {
		t.Error("IsTransient(permanent) = true")
	}
	if err.Error() != "set: cache: key is invalid" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("connection reset"), true},
		{"canceled", context.Canceled, false},
		{"wrapped canceled", fmt.Errorf("get: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
		{"timeout", ErrTimeout, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransient(tc.err); got != tc.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
