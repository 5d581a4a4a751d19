package resilience

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// LimiterConfig configures the concurrency limiter.
type LimiterConfig struct {
	// MaxConcurrent is the maximum number of concurrent operations.
	// Default: 10
	MaxConcurrent int

	// Wait blocks for a slot instead of failing fast with ErrLimiterFull.
	Wait bool
}

// Limiter caps the number of operations in flight at once.
type Limiter struct {
	config LimiterConfig
	sem    *semaphore.Weighted
}

// NewLimiter creates a new concurrency limiter.
func NewLimiter(config LimiterConfig) *Limiter {
	// Apply defaults
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}

	return &Limiter{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Acquire claims a slot. With Wait disabled it fails fast with
// ErrLimiterFull when no slot is free.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l.config.Wait {
		return l.sem.Acquire(ctx, 1)
	}
	if !l.sem.TryAcquire(1) {
		return ErrLimiterFull
	}
	return nil
}

// Release returns a slot.
func (l *Limiter) Release() {
	l.sem.Release(1)
}

// Execute runs the operation within the concurrency limit.
func (l *Limiter) Execute(ctx context.Context, op Operation) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()

	return op(ctx)
}
