// Package health reports whether the cache tiers can serve.
//
// A Checker reports Healthy, Degraded or Unhealthy. StoreChecker probes a
// remote or on-disk tier (Redis PING, a writable cache directory).
// CircuitChecker reports the state of the breaker guarding a tier: an open
// breaker means lookups fall through to the origin, which is Degraded
// rather than down. MemoryChecker watches heap use against the budget of
// the in-memory bitmap tiers.
//
//	agg := health.NewAggregator()
//	agg.Register("redis", health.NewStoreChecker("redis", redisStore.Ping, health.StoreCheckerConfig{}))
//	agg.Register("encoded-circuit", health.NewCircuitChecker("encoded-circuit", breaker))
//	agg.Register("memory", health.NewMemoryChecker(health.MemoryCheckerConfig{MaxAlloc: 512 << 20}))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
