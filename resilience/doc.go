// Package resilience guards calls to remote cache tiers and image origins.
//
// The encoded tier runs its Get, Set and Delete through an Executor built
// from a Timeout, a Retry and a CircuitBreaker, so a slow or failing Redis
// degrades to cache misses instead of stalling decodes. Origin fetches run
// through a RateLimiter and a Bulkhead, which bound how hard a cold cache
// can hit the origin.
//
// Errors wrapped with Permanent are returned immediately: they are not
// retried and do not count against the circuit.
//
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	        Name:        "encoded",
//	        MaxFailures: 5,
//	    })),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 2})),
//	    resilience.WithTimeout(250*time.Millisecond),
//	)
//
//	data, err := resilience.Do(ctx, exec, func(ctx context.Context) ([]byte, error) {
//	    return client.Get(ctx, name).Bytes()
//	})
package resilience
