// Package health provides liveness and readiness checks for provider
// deployments: individual checkers, an aggregator with concurrent
// execution and timeouts, HTTP handlers for liveness and readiness
// endpoints, and a startup prober that waits for a backend to come up.
//
// Provider-specific checkers probe a provider's configuration against its
// backend and surface circuit breaker state, so an open circuit shows up
// as an unhealthy dependency before callers notice failures.
package health
