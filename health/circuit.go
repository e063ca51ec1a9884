package health

import (
	"context"

	"github.com/jonwraymond/imagecache/resilience"
)

// CircuitChecker reports the state of a circuit breaker. An open breaker
// is Degraded: lookups bypass the tier but still succeed from the origin.
type CircuitChecker struct {
	name string
	cb   *resilience.CircuitBreaker
}

// NewCircuitChecker creates a checker for cb.
func NewCircuitChecker(name string, cb *resilience.CircuitBreaker) *CircuitChecker {
	return &CircuitChecker{name: name, cb: cb}
}

func (c *CircuitChecker) Name() string { return c.name }

func (c *CircuitChecker) Check(_ context.Context) Result {
	m := c.cb.Metrics()
	details := map[string]any{
		"state":    m.State.String(),
		"failures": m.Failures,
	}
	if !m.LastFailure.IsZero() {
		details["last_failure"] = m.LastFailure.UTC()
	}

	switch m.State {
	case resilience.StateClosed:
		return Healthy("circuit closed").WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("circuit probing").WithDetails(details)
	default:
		return Degraded("circuit open; tier bypassed").WithDetails(details)
	}
}
