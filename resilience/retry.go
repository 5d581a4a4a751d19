package resilience

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/observe"
)

// Operation is a unit of work executed under a resilience primitive.
type Operation func(ctx context.Context) error

// RetryPolicy configures retry behavior. The policy is a value: construct it
// once and pass it by copy, it is never mutated by the engine.
type RetryPolicy struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 3
	MaxAttempts int

	// BaseDelay is the delay before the first retry.
	// Default: 100ms
	BaseDelay time.Duration

	// MaxDelay caps the delay between retries.
	// Default: 30s
	MaxDelay time.Duration

	// Multiplier is the exponential backoff multiplier.
	// Default: 2.0
	Multiplier float64

	// Jitter spreads each delay by a uniform ±25% offset.
	Jitter bool

	// RetryableKinds are the failure classifications that trigger a retry.
	// Errors outside this set propagate immediately.
	// Default: fault.Transient()
	RetryableKinds []fault.Kind

	// AttemptTimeout bounds each individual attempt. Zero means no
	// per-attempt deadline.
	AttemptTimeout time.Duration

	// Logger receives one structured record per retry.
	// Default: observe.NopLogger()
	Logger observe.Logger

	// OnRetry is called before each retry attempt.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// normalized returns a copy of the policy with defaults applied.
func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 3
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = 100 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 30 * time.Second
	}
	if p.Multiplier <= 0 {
		p.Multiplier = 2.0
	}
	if p.RetryableKinds == nil {
		p.RetryableKinds = fault.Transient()
	}
	if p.Logger == nil {
		p.Logger = observe.NopLogger()
	}
	return p
}

// Retry runs op with bounded attempts and backoff under policy.
func Retry(ctx context.Context, policy RetryPolicy, op Operation) error {
	_, err := RetryWithBackoff(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// RetryWithBackoff runs op for up to policy.MaxAttempts attempts.
//
// Failures are classified by fault.Kind against policy.RetryableKinds:
// a non-retryable or final-attempt failure propagates immediately and
// unmodified. Between attempts the engine sleeps for the computed backoff
// delay, honoring context cancellation. Every retry emits one structured
// log record carrying the attempt index, the classification, the computed
// delay, and a correlation id shared by all attempts of one call.
func RetryWithBackoff[T any](ctx context.Context, policy RetryPolicy, op func(ctx context.Context) (T, error)) (T, error) {
	p := policy.normalized()

	var (
		zero    T
		lastErr error
		retryID string
	)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		var (
			value T
			err   error
		)
		if p.AttemptTimeout > 0 {
			value, err = ExecuteWithTimeout(ctx, p.AttemptTimeout, op)
		} else {
			value, err = op(ctx)
		}

		if err == nil {
			return value, nil
		}
		lastErr = err

		if !fault.KindIn(err, p.RetryableKinds...) {
			return zero, err
		}
		if attempt >= p.MaxAttempts {
			break
		}

		delay := Delay(attempt, p)

		if retryID == "" {
			retryID = ulid.Make().String()
		}
		p.Logger.Warn(ctx, "retrying after transient failure",
			observe.Field{Key: "retry_id", Value: retryID},
			observe.Field{Key: "attempt", Value: attempt},
			observe.Field{Key: "error_kind", Value: fault.KindOf(err).String()},
			observe.Field{Key: "delay", Value: delay},
			observe.Field{Key: "error", Value: err},
		)

		if p.OnRetry != nil {
			p.OnRetry(attempt, err, delay)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	return zero, lastErr
}
