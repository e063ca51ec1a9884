package cache

import (
	"testing"
	"time"
)

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := Policy{DefaultTTL: 5 * time.Minute, MaxTTL: 10 * time.Minute}

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"default", 0, 5 * time.Minute},
		{"negative uses default", -time.Second, 5 * time.Minute},
		{"override", 3 * time.Minute, 3 * time.Minute},
		{"clamped", 15 * time.Minute, 10 * time.Minute},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.EffectiveTTL(tc.override); got != tc.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tc.override, got, tc.want)
			}
		})
	}
}

func TestPolicy_NoMaxTTL(t *testing.T) {
	p := Policy{DefaultTTL: time.Minute}
	if got := p.EffectiveTTL(48 * time.Hour); got != 48*time.Hour {
		t.Errorf("EffectiveTTL(48h) = %v, want 48h", got)
	}
}

func TestNoExpiryPolicy(t *testing.T) {
	p := NoExpiryPolicy()
	if p.Expires() {
		t.Error("NoExpiryPolicy().Expires() = true, want false")
	}
	if got := p.expiry(time.Now()); !got.IsZero() {
		t.Errorf("expiry() = %v, want zero time", got)
	}
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	if !p.Expires() {
		t.Error("DefaultPolicy().Expires() = false, want true")
	}
	now := time.Unix(1_700_000_000, 0)
	if got, want := p.expiry(now), now.Add(24*time.Hour); !got.Equal(want) {
		t.Errorf("expiry() = %v, want %v", got, want)
	}
}
