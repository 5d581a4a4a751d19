package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/llmops/provider"
	"github.com/jonwraymond/llmops/resilience"
)

// ProviderChecker probes a provider's backend configuration. A passing
// ValidateConfiguration means the credential and endpoint are usable.
type ProviderChecker struct {
	provider provider.Provider
}

// NewProviderChecker creates a checker for p.
func NewProviderChecker(p provider.Provider) *ProviderChecker {
	return &ProviderChecker{provider: p}
}

// Name returns "provider:<name>".
func (c *ProviderChecker) Name() string {
	return "provider:" + c.provider.Name()
}

// Check validates the provider configuration against its backend.
func (c *ProviderChecker) Check(ctx context.Context) Result {
	if err := c.provider.ValidateConfiguration(ctx); err != nil {
		return Unhealthy(fmt.Sprintf("provider %s validation failed", c.provider.Name()), err)
	}
	return Healthy(fmt.Sprintf("provider %s reachable", c.provider.Name())).
		WithDetails(map[string]any{
			"provider": c.provider.Name(),
			"models":   c.provider.SupportedModels(),
		})
}

// BreakerChecker reports the state of a circuit breaker guarding a
// dependency. An open circuit is unhealthy, a half-open one degraded.
type BreakerChecker struct {
	name    string
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker named "breaker:<name>" over cb.
func NewBreakerChecker(name string, cb *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{name: name, breaker: cb}
}

// Name returns "breaker:<name>".
func (c *BreakerChecker) Name() string {
	return "breaker:" + c.name
}

// Check maps the breaker state onto a health status with the counter
// snapshot attached as details.
func (c *BreakerChecker) Check(_ context.Context) Result {
	status := c.breaker.Status()
	details := map[string]any{
		"state":         status.State.String(),
		"failure_count": status.FailureCount,
		"success_count": status.SuccessCount,
	}
	if !status.LastFailure.IsZero() {
		details["last_failure"] = status.LastFailure
	}

	switch status.State {
	case resilience.StateOpen:
		return Unhealthy(fmt.Sprintf("circuit %s is open", c.name), nil).
			WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded(fmt.Sprintf("circuit %s is recovering", c.name)).
			WithDetails(details)
	default:
		return Healthy(fmt.Sprintf("circuit %s is closed", c.name)).
			WithDetails(details)
	}
}

var _ Checker = (*ProviderChecker)(nil)
var _ Checker = (*BreakerChecker)(nil)
