package resilience

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonwraymond/llmops/fault"
)

func TestQueue_Defaults(t *testing.T) {
	q := NewQueue(QueueConfig{})

	if q.config.MaxDepth != 256 {
		t.Errorf("MaxDepth = %d, want 256", q.config.MaxDepth)
	}
	if q.config.MinInterval != 0 {
		t.Errorf("MinInterval = %v, want 0", q.config.MinInterval)
	}
}

func TestQueue_SettlesInSubmissionOrder(t *testing.T) {
	q := NewQueue(QueueConfig{})

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Stagger submissions so FIFO order is deterministic.
			time.Sleep(time.Duration(i) * 20 * time.Millisecond)
			_ = q.Do(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
	}
	wg.Wait()

	for i, got := range order {
		if got != i {
			t.Fatalf("order = %v, want ascending submission order", order)
		}
	}
}

func TestQueue_OneAtATime(t *testing.T) {
	q := NewQueue(QueueConfig{})

	var mu sync.Mutex
	running, maxRunning := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				running++
				if running > maxRunning {
					maxRunning = running
				}
				mu.Unlock()

				time.Sleep(5 * time.Millisecond)

				mu.Lock()
				running--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if maxRunning != 1 {
		t.Errorf("maxRunning = %d, want 1", maxRunning)
	}
}

func TestQueue_EnforcesMinInterval(t *testing.T) {
	q := NewQueue(QueueConfig{MinInterval: 30 * time.Millisecond})

	var mu sync.Mutex
	var dispatches []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				dispatches = append(dispatches, time.Now())
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	for i := 1; i < len(dispatches); i++ {
		gap := dispatches[i].Sub(dispatches[i-1])
		if gap < 25*time.Millisecond {
			t.Errorf("gap %d = %v, want >= MinInterval", i, gap)
		}
	}
}

func TestQueue_RetriesItems(t *testing.T) {
	q := NewQueue(QueueConfig{})

	attempts := 0
	err := q.Execute(context.Background(), RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return fault.New(fault.KindRateLimited, "throttled")
		}
		return nil
	})

	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestQueue_FailsFastWhenFull(t *testing.T) {
	q := NewQueue(QueueConfig{MaxDepth: 1})

	blocker := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_ = q.Do(context.Background(), func(ctx context.Context) error {
			close(started)
			<-blocker
			return nil
		})
	}()
	<-started

	// One slot in the backlog, then the queue is full.
	accepted := make(chan error, 1)
	go func() {
		accepted <- q.Do(context.Background(), func(ctx context.Context) error { return nil })
	}()

	// Wait for the backlog slot to fill.
	deadline := time.Now().Add(time.Second)
	for q.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	err := q.Do(context.Background(), func(ctx context.Context) error { return nil })
	if !errors.Is(err, ErrQueueFull) {
		t.Errorf("Do() on full queue = %v, want ErrQueueFull", err)
	}

	close(blocker)
	if err := <-accepted; err != nil {
		t.Errorf("queued item error = %v", err)
	}
}

func TestQueue_AbandonedContextDoesNotRun(t *testing.T) {
	q := NewQueue(QueueConfig{})

	blocker := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(ctx context.Context) error {
			close(started)
			<-blocker
			return nil
		})
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	ran := false
	errCh := make(chan error, 1)
	go func() {
		errCh <- q.Do(ctx, func(ctx context.Context) error {
			ran = true
			return nil
		})
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Do() after cancel = %v, want context.Canceled", err)
	}

	close(blocker)
	time.Sleep(20 * time.Millisecond)
	if ran {
		t.Error("abandoned item was executed")
	}
}

func TestQueue_Len(t *testing.T) {
	q := NewQueue(QueueConfig{})

	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}

	blocker := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(ctx context.Context) error {
			close(started)
			<-blocker
			return nil
		})
	}()
	<-started

	done := make(chan struct{})
	go func() {
		_ = q.Do(context.Background(), func(ctx context.Context) error { return nil })
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for q.Len() != 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if q.Len() != 1 {
		t.Errorf("Len() = %d, want 1 while one item is backlogged", q.Len())
	}

	close(blocker)
	<-done
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0 after drain", q.Len())
	}
}
