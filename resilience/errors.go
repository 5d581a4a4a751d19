package resilience

import "github.com/jonwraymond/llmops/fault"

// Sentinel errors for resilience operations. They are constructed as
// classified faults so both errors.Is and fault.KindOf work through
// wrap chains.
var (
	// ErrCircuitOpen is returned when the circuit breaker refuses a call.
	ErrCircuitOpen = fault.New(fault.KindUnavailable, "resilience: circuit breaker is open")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = fault.New(fault.KindTimeout, "resilience: operation timed out")

	// ErrQueueFull is returned when the serial queue is at capacity.
	ErrQueueFull = fault.New(fault.KindUnavailable, "resilience: queue at capacity")

	// ErrLimiterFull is returned when the concurrency limit is reached.
	ErrLimiterFull = fault.New(fault.KindUnavailable, "resilience: concurrency limit reached")
)
