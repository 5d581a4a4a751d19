// Package resilience provides resilience patterns for provider calls.
//
// AI backends fail in transient ways: network hiccups, rate limits, slow
// upstreams. This package implements the patterns that absorb those failures
// without losing the caller's request, all classifying errors through the
// fault package rather than inspecting messages.
//
// # Patterns
//
//   - Retry: bounded attempts with exponential backoff, optional jitter,
//     and per-attempt timeouts. Only failures whose fault.Kind is in the
//     policy's retryable set are retried.
//
//   - Circuit Breaker: stops calling a failing dependency after a failure
//     threshold, then trials it half-open after a recovery window.
//
//   - Timeout: races an operation against a deadline without cancelling
//     the underlying call.
//
//   - Queue: strict FIFO serialization with enforced minimum spacing
//     between dispatches, for backends that punish bursts.
//
//   - Limiter: caps concurrent operations.
//
//   - Batch: retries every item of a batch independently and concurrently,
//     preserving input order in the results.
//
// # Usage
//
// Patterns can be used independently or composed through an Executor:
//
//	cb := resilience.NewCircuitBreaker(resilience.BreakerConfig{
//	    FailureThreshold: 5,
//	    RecoveryTimeout:  time.Minute,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(cb),
//	    resilience.WithRetry(resilience.RetryPolicy{MaxAttempts: 3}),
//	    resilience.WithTimeout(30*time.Second),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callBackend(ctx)
//	})
package resilience
