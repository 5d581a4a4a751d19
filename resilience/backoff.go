package resilience

import (
	"math"
	"math/rand/v2"
	"time"
)

// Delay computes the backoff delay before the retry following the given
// attempt (1-based). The delay grows exponentially from policy.BaseDelay by
// policy.Multiplier and is capped at policy.MaxDelay. With Jitter enabled the
// result is spread by a uniform random offset within ±25% of the computed
// value, clamped to be non-negative.
func Delay(attempt int, policy RetryPolicy) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	p := policy.normalized()

	growth := math.Pow(p.Multiplier, float64(attempt-1))
	delay := time.Duration(float64(p.BaseDelay) * growth)

	// Overflow from the float multiply shows up as a negative duration.
	if delay > p.MaxDelay || delay < 0 {
		delay = p.MaxDelay
	}

	if p.Jitter && delay > 0 {
		delay = jitter(delay)
	}

	return delay
}

// jitter spreads delay by a uniform offset in [-delay/4, +delay/4].
func jitter(delay time.Duration) time.Duration {
	span := int64(delay / 4)
	if span <= 0 {
		return delay
	}
	// #nosec G404 -- jitter is non-cryptographic timing variance.
	delay += time.Duration(rand.Int64N(2*span+1) - span)
	if delay < 0 {
		delay = 0
	}
	return delay
}
