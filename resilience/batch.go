package resilience

import (
	"context"
	"sync"
)

// BatchResult holds the outcome of one batched operation.
type BatchResult[T any] struct {
	Value T
	Err   error
}

// Succeeded reports whether the operation completed without error.
func (r BatchResult[T]) Succeeded() bool {
	return r.Err == nil
}

// RetryBatch runs every operation concurrently, each independently wrapped
// by RetryWithBackoff with the same policy. One operation failing never
// short-circuits the others. The returned slice is index-aligned with ops
// regardless of completion order.
func RetryBatch[T any](ctx context.Context, policy RetryPolicy, ops []func(ctx context.Context) (T, error)) []BatchResult[T] {
	results := make([]BatchResult[T], len(ops))

	var wg sync.WaitGroup
	for i, op := range ops {
		wg.Add(1)
		go func(i int, op func(ctx context.Context) (T, error)) {
			defer wg.Done()
			value, err := RetryWithBackoff(ctx, policy, op)
			results[i] = BatchResult[T]{Value: value, Err: err}
		}(i, op)
	}
	wg.Wait()

	return results
}
