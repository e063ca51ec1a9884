package cache

import "time"

// Policy configures entry lifetime for a tier.
type Policy struct {
	// DefaultTTL is the lifetime of a new entry. Zero means entries never
	// expire.
	DefaultTTL time.Duration

	// MaxTTL is the maximum allowed TTL. Override TTLs are clamped to this.
	// If zero, no maximum is enforced.
	MaxTTL time.Duration
}

// DefaultPolicy returns the policy used for encoded tiers.
// DefaultTTL: 24 hours, MaxTTL: 30 days.
func DefaultPolicy() Policy {
	return Policy{
		DefaultTTL: 24 * time.Hour,
		MaxTTL:     30 * 24 * time.Hour,
	}
}

// NoExpiryPolicy returns a policy under which entries live until evicted.
func NoExpiryPolicy() Policy {
	return Policy{}
}

// Expires reports whether entries written under this policy expire.
func (p Policy) Expires() bool {
	return p.EffectiveTTL(0) > 0
}

// EffectiveTTL returns the TTL to use, applying defaults and clamping.
func (p Policy) EffectiveTTL(override time.Duration) time.Duration {
	ttl := override
	if ttl <= 0 {
		ttl = p.DefaultTTL
	}
	if p.MaxTTL > 0 && ttl > p.MaxTTL {
		ttl = p.MaxTTL
	}
	return ttl
}

// expiry returns the absolute expiry for an entry written at now, or the
// zero time when the entry never expires.
func (p Policy) expiry(now time.Time) time.Time {
	ttl := p.EffectiveTTL(0)
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
