package config

import (
	"fmt"
	"time"

	"github.com/jonwraymond/imagecache/cache"
	"github.com/jonwraymond/imagecache/observe"
	"github.com/jonwraymond/imagecache/resilience"
)

// Tier kinds.
const (
	KindLRU       = "lru"
	KindRistretto = "ristretto"
	KindMemory    = "memory"
	KindRedis     = "redis"
	KindFile      = "file"
)

// Config is the top-level configuration.
type Config struct {
	Observe       observe.Config   `yaml:"observe"`
	KeyPolicy     KeyPolicyConfig  `yaml:"keyPolicy"`
	Bitmap        MemoryTierConfig `yaml:"bitmap"`
	Postprocessed MemoryTierConfig `yaml:"postprocessed"`
	Encoded       EncodedConfig    `yaml:"encoded"`
	Resilience    ResilienceConfig `yaml:"resilience"`
	Fetch         FetchConfig      `yaml:"fetch"`
	Secrets       SecretsConfig    `yaml:"secrets"`
}

// KeyPolicyConfig selects the source canonicalizer.
type KeyPolicyConfig struct {
	// NormalizeURLs canonicalizes source URIs before they become keys.
	NormalizeURLs bool `yaml:"normalizeURLs"`
}

// MemoryTierConfig configures the bitmap or postprocessed tier.
type MemoryTierConfig struct {
	Kind     string        `yaml:"kind"`     // lru|ristretto
	Capacity int           `yaml:"capacity"` // lru entries
	MaxCost  ByteSize      `yaml:"maxCost"`  // ristretto budget
	TTL      time.Duration `yaml:"ttl"`
	MaxTTL   time.Duration `yaml:"maxTTL"`
}

// Policy returns the tier's expiry policy.
func (t MemoryTierConfig) Policy() cache.Policy {
	return cache.Policy{DefaultTTL: t.TTL, MaxTTL: t.MaxTTL}
}

func (t MemoryTierConfig) validate(name string) error {
	switch t.Kind {
	case KindLRU:
		if t.Capacity <= 0 {
			return fmt.Errorf("%w: %s: %d", ErrInvalidCapacity, name, t.Capacity)
		}
	case KindRistretto:
		if t.MaxCost == 0 {
			return fmt.Errorf("%w: %s: maxCost", ErrInvalidCapacity, name)
		}
	default:
		return fmt.Errorf("%w: %s: %q", ErrInvalidTierKind, name, t.Kind)
	}
	return validateTTL(name, t.TTL, t.MaxTTL)
}

// EncodedConfig configures the encoded-bytes tier.
type EncodedConfig struct {
	Kind     string        `yaml:"kind"`     // memory|redis|file
	Capacity int           `yaml:"capacity"` // memory entries
	TTL      time.Duration `yaml:"ttl"`
	MaxTTL   time.Duration `yaml:"maxTTL"`
	Redis    RedisConfig   `yaml:"redis"`
	File     FileConfig    `yaml:"file"`
}

// Policy returns the tier's expiry policy.
func (e EncodedConfig) Policy() cache.Policy {
	return cache.Policy{DefaultTTL: e.TTL, MaxTTL: e.MaxTTL}
}

func (e EncodedConfig) validate() error {
	switch e.Kind {
	case KindMemory:
		if e.Capacity <= 0 {
			return fmt.Errorf("%w: encoded: %d", ErrInvalidCapacity, e.Capacity)
		}
	case KindRedis:
		if e.Redis.Addr == "" && e.Redis.URL == "" {
			return ErrMissingRedisAddr
		}
	case KindFile:
		if e.File.Dir == "" {
			return ErrMissingFileDir
		}
	default:
		return fmt.Errorf("%w: encoded: %q", ErrInvalidTierKind, e.Kind)
	}
	return validateTTL("encoded", e.TTL, e.MaxTTL)
}

// RedisConfig configures the Redis encoded tier. URL, when set, takes
// precedence over the discrete fields.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// FileConfig configures the on-disk encoded tier.
type FileConfig struct {
	Dir string `yaml:"dir"`
}

// ResilienceConfig configures calls to the encoded tier.
type ResilienceConfig struct {
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
	Circuit CircuitConfig `yaml:"circuit"`
}

// RetryConfig configures retries of encoded-tier calls.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"maxAttempts"`
	InitialDelay time.Duration `yaml:"initialDelay"`
	MaxDelay     time.Duration `yaml:"maxDelay"`
	Jitter       bool          `yaml:"jitter"`
}

// CircuitConfig configures the encoded-tier circuit breaker.
type CircuitConfig struct {
	MaxFailures  int           `yaml:"maxFailures"`
	ResetTimeout time.Duration `yaml:"resetTimeout"`
}

// Executor builds the executor guarding encoded-tier calls.
func (r ResilienceConfig) Executor(onStateChange func(name string, from, to resilience.State)) *resilience.Executor {
	return resilience.NewExecutor(
		resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:          "encoded",
			MaxFailures:   r.Circuit.MaxFailures,
			ResetTimeout:  r.Circuit.ResetTimeout,
			OnStateChange: onStateChange,
		})),
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			MaxAttempts:  r.Retry.MaxAttempts,
			InitialDelay: r.Retry.InitialDelay,
			MaxDelay:     r.Retry.MaxDelay,
			Strategy:     resilience.BackoffExponential,
			Jitter:       r.Retry.Jitter,
		})),
		resilience.WithTimeout(r.Timeout),
	)
}

// FetchConfig limits origin fetches on encoded-tier misses.
type FetchConfig struct {
	MaxConcurrent int           `yaml:"maxConcurrent"`
	MaxWait       time.Duration `yaml:"maxWait"`
	// Rate is fetches per second; zero disables rate limiting.
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
	// Timeout bounds a shared load (fetch or decode) once callers are
	// coalesced onto it; zero disables the bound.
	Timeout time.Duration `yaml:"timeout"`
}

// Bulkhead builds the fetch concurrency limit.
func (f FetchConfig) Bulkhead() *resilience.Bulkhead {
	return resilience.NewBulkhead(resilience.BulkheadConfig{
		MaxConcurrent: f.MaxConcurrent,
		MaxWait:       f.MaxWait,
	})
}

// RateLimiter builds the fetch rate limit, or nil when Rate is zero.
func (f FetchConfig) RateLimiter() *resilience.RateLimiter {
	if f.Rate == 0 {
		return nil
	}
	return resilience.NewRateLimiter(resilience.RateLimiterConfig{
		Rate:        f.Rate,
		Burst:       f.Burst,
		WaitOnLimit: true,
		MaxWait:     f.MaxWait,
	})
}

// SecretsConfig configures secret providers beyond the built-in env
// provider, keyed by provider name.
type SecretsConfig struct {
	Strict    bool                      `yaml:"strict"`
	Providers map[string]map[string]any `yaml:"providers"`
}

// Default returns an all-memory configuration.
func Default() *Config {
	return &Config{
		Observe: observe.Config{
			ServiceName: "imagecache",
			Tracing:     observe.TracingConfig{Exporter: "none", SamplePct: 1},
			Metrics:     observe.MetricsConfig{Exporter: "none"},
			Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
		},
		Bitmap:        MemoryTierConfig{Kind: KindLRU, Capacity: 256, MaxCost: 256 << 20},
		Postprocessed: MemoryTierConfig{Kind: KindLRU, Capacity: 64, MaxCost: 64 << 20},
		Encoded: EncodedConfig{
			Kind:     KindMemory,
			Capacity: 1024,
			TTL:      24 * time.Hour,
			MaxTTL:   30 * 24 * time.Hour,
			Redis:    RedisConfig{Prefix: cache.DefaultRedisPrefix},
		},
		Resilience: ResilienceConfig{
			Timeout: 500 * time.Millisecond,
			Retry:   RetryConfig{MaxAttempts: 3, InitialDelay: 50 * time.Millisecond, MaxDelay: 2 * time.Second, Jitter: true},
			Circuit: CircuitConfig{MaxFailures: 5, ResetTimeout: 10 * time.Second},
		},
		Fetch: FetchConfig{MaxConcurrent: 8, MaxWait: time.Second, Burst: 10, Timeout: 30 * time.Second},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Observe.Validate(); err != nil {
		return err
	}
	if err := c.Bitmap.validate("bitmap"); err != nil {
		return err
	}
	if err := c.Postprocessed.validate("postprocessed"); err != nil {
		return err
	}
	if err := c.Encoded.validate(); err != nil {
		return err
	}
	if c.Resilience.Retry.MaxAttempts < 0 || c.Resilience.Retry.InitialDelay < 0 ||
		(c.Resilience.Retry.MaxDelay > 0 && c.Resilience.Retry.MaxDelay < c.Resilience.Retry.InitialDelay) {
		return ErrInvalidRetry
	}
	if c.Fetch.MaxConcurrent < 0 || c.Fetch.Rate < 0 || c.Fetch.Burst < 0 || c.Fetch.Timeout < 0 {
		return ErrInvalidFetch
	}
	return nil
}

func validateTTL(name string, ttl, maxTTL time.Duration) error {
	if ttl < 0 || maxTTL < 0 || (maxTTL > 0 && ttl > maxTTL) {
		return fmt.Errorf("%w: %s: ttl %v, maxTTL %v", ErrInvalidTTL, name, ttl, maxTTL)
	}
	return nil
}
