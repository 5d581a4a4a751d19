package resilience

import (
	"context"
	"sync"
	"time"
)

// QueueConfig configures the rate-limited serial queue.
type QueueConfig struct {
	// MinInterval is the minimum spacing between consecutive dispatches.
	// Default: 0 (no spacing)
	MinInterval time.Duration

	// MaxDepth bounds the backlog. Submissions beyond it fail fast with
	// ErrQueueFull.
	// Default: 256
	MaxDepth int
}

// Queue runs operations strictly one at a time, in FIFO order, with a
// minimum interval between dispatches. It exists to avoid request bursts
// that would trip backend-side rate limits; it complements retry rather
// than replacing it, so each dequeued item runs under the retry engine.
type Queue struct {
	config QueueConfig

	mu           sync.Mutex
	items        []*queueItem
	processing   bool
	lastDispatch time.Time
}

type queueItem struct {
	ctx    context.Context
	policy RetryPolicy
	op     Operation
	done   chan error
}

// NewQueue creates a new serial queue.
func NewQueue(config QueueConfig) *Queue {
	// Apply defaults
	if config.MaxDepth <= 0 {
		config.MaxDepth = 256
	}

	return &Queue{config: config}
}

// Execute enqueues op and blocks until its turn completes. Items settle in
// submission order; at most one runs at a time. Each item is wrapped in
// Retry with the supplied policy. An abandoned context settles with
// ctx.Err() without running the operation.
func (q *Queue) Execute(ctx context.Context, policy RetryPolicy, op Operation) error {
	item := &queueItem{
		ctx:    ctx,
		policy: policy,
		op:     op,
		done:   make(chan error, 1),
	}

	q.mu.Lock()
	if len(q.items) >= q.config.MaxDepth {
		q.mu.Unlock()
		return ErrQueueFull
	}
	q.items = append(q.items, item)
	start := !q.processing
	if start {
		q.processing = true
	}
	q.mu.Unlock()

	if start {
		go q.drain()
	}

	select {
	case err := <-item.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do enqueues op without retry wrapping: a single attempt under the queue's
// serialization and spacing guarantees.
func (q *Queue) Do(ctx context.Context, op Operation) error {
	return q.Execute(ctx, RetryPolicy{MaxAttempts: 1}, op)
}

// Len reports the current backlog depth, excluding any item being processed.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// drain dispatches queued items one at a time. Exactly one drain goroutine
// runs while q.processing is set.
func (q *Queue) drain() {
	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.processing = false
			q.mu.Unlock()
			return
		}
		item := q.items[0]
		q.items = q.items[1:]
		wait := q.config.MinInterval - time.Since(q.lastDispatch)
		q.mu.Unlock()

		if item.ctx.Err() != nil {
			item.done <- item.ctx.Err()
			continue
		}

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-item.ctx.Done():
				timer.Stop()
				item.done <- item.ctx.Err()
				continue
			}
		}

		q.mu.Lock()
		q.lastDispatch = time.Now()
		q.mu.Unlock()

		item.done <- Retry(item.ctx, item.policy, item.op)
	}
}
