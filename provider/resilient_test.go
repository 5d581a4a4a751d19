package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/resilience"
)

func TestWithResilience_NilExecutorPassthrough(t *testing.T) {
	p := newFakeProvider()
	if got := WithResilience(p, nil); got != Provider(p) {
		t.Error("WithResilience(p, nil) should return p unchanged")
	}
}

func TestWithResilience_RetriesTransientFailures(t *testing.T) {
	p := newFakeProvider()
	p.failTimes = 2
	p.failErr = fault.New(fault.KindRateLimited, "throttled")

	wrapped := WithResilience(p, resilience.NewExecutor(
		resilience.WithRetry(resilience.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}),
	))

	resp, err := wrapped.CreateChatCompletion(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}
	if resp.Content != "hello" {
		t.Errorf("Content = %q, want hello", resp.Content)
	}
	if p.callCount() != 3 {
		t.Errorf("inner calls = %d, want 3", p.callCount())
	}
}

func TestWithResilience_BreakerShortCircuits(t *testing.T) {
	p := newFakeProvider()
	p.err = fault.New(fault.KindExternalAPI, "backend down")

	cb := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Minute,
	})
	wrapped := WithResilience(p, resilience.NewExecutor(resilience.WithCircuitBreaker(cb)))

	_, _ = wrapped.CreateChatCompletion(context.Background(), validRequest())
	_, _ = wrapped.CreateChatCompletion(context.Background(), validRequest())

	before := p.callCount()
	_, err := wrapped.CreateChatCompletion(context.Background(), validRequest())
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Errorf("CreateChatCompletion() = %v, want ErrCircuitOpen", err)
	}
	if p.callCount() != before {
		t.Error("backend invoked while circuit open")
	}
}

func TestWithResilience_InvalidRequestNotRetried(t *testing.T) {
	p := newFakeProvider()
	wrapped := WithResilience(p, resilience.NewExecutor(
		resilience.WithRetry(resilience.RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond}),
	))

	req := validRequest()
	req.Messages = nil

	_, err := wrapped.CreateChatCompletion(context.Background(), req)
	if fault.KindOf(err) != fault.KindInvalidRequest {
		t.Fatalf("KindOf(err) = %v, want invalid_request", fault.KindOf(err))
	}
	if p.callCount() != 0 {
		t.Errorf("calls = %d, want 0 completed calls for an invalid request", p.callCount())
	}
}

func TestWithResilience_CapabilityMethodsPassThrough(t *testing.T) {
	p := newFakeProvider()
	wrapped := WithResilience(p, resilience.NewExecutor())

	if wrapped.Name() != "fake" {
		t.Errorf("Name() = %q, want fake", wrapped.Name())
	}
	if !wrapped.IsModelSupported("fake-mini") {
		t.Error("IsModelSupported(fake-mini) = false, want true")
	}
}
