package resilience

import (
	"context"
	"time"

	"github.com/jonwraymond/llmops/observe"
)

// Executor composes multiple resilience patterns around provider calls.
type Executor struct {
	timeout time.Duration
	retry   *RetryPolicy
	breaker *CircuitBreaker
	limiter *Limiter
	queue   *Queue
	logger  observe.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithTimeout bounds each underlying call.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = timeout
	}
}

// WithRetry adds retry logic to the executor.
func WithRetry(policy RetryPolicy) ExecutorOption {
	return func(e *Executor) {
		e.retry = &policy
	}
}

// WithCircuitBreaker adds a circuit breaker to the executor.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.breaker = cb
	}
}

// WithLimiter adds a concurrency cap to the executor.
func WithLimiter(l *Limiter) ExecutorOption {
	return func(e *Executor) {
		e.limiter = l
	}
}

// WithQueue adds rate-limited serialization to the executor.
func WithQueue(q *Queue) ExecutorOption {
	return func(e *Executor) {
		e.queue = q
	}
}

// WithLogger sets the logger injected into the retry policy.
func WithLogger(logger observe.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// Execute runs the operation through all configured resilience patterns.
//
// The wrapping order, innermost to outermost, is:
// timeout, retry, circuit breaker, limiter, queue. The queue is outermost so
// its dispatch spacing governs everything, including retries.
func (e *Executor) Execute(ctx context.Context, op Operation) error {
	execute := op

	if e.timeout > 0 {
		inner := execute
		execute = func(ctx context.Context) error {
			_, err := ExecuteWithTimeout(ctx, e.timeout, func(ctx context.Context) (struct{}, error) {
				return struct{}{}, inner(ctx)
			})
			return err
		}
	}

	if e.retry != nil {
		policy := *e.retry
		if policy.Logger == nil {
			policy.Logger = e.logger
		}
		inner := execute
		execute = func(ctx context.Context) error {
			return Retry(ctx, policy, inner)
		}
	}

	if e.breaker != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.breaker.Execute(ctx, inner)
		}
	}

	if e.limiter != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.limiter.Execute(ctx, inner)
		}
	}

	if e.queue != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.queue.Do(ctx, inner)
		}
	}

	return execute(ctx)
}
