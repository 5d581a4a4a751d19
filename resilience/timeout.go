package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/llmops/fault"
)

// ExecuteWithTimeout races op against the given deadline.
//
// If the timer fires first the call returns a fault.KindTimeout error
// wrapping ErrTimeout with the elapsed duration in the message. If op
// settles first the timer is stopped and its result propagates unchanged.
//
// The underlying operation is not cancelled when the timeout wins: only the
// logical wait is abandoned, the goroutine running op continues until op
// returns on its own. Callers that need hard cancellation must arrange a
// deadline on ctx themselves.
func ExecuteWithTimeout[T any](ctx context.Context, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		elapsed := time.Since(start).Round(time.Millisecond)
		return zero, fault.Wrap(fault.KindTimeout, ErrTimeout,
			fmt.Sprintf("operation abandoned after %v", elapsed))
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
