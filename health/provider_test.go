package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
	"github.com/jonwraymond/llmops/resilience"
)

// checkProvider implements just enough of the provider contract for the
// checker tests.
type checkProvider struct {
	provider.Provider

	name        string
	validateErr error
}

func (p *checkProvider) Name() string                                { return p.name }
func (p *checkProvider) SupportedModels() []string                   { return []string{"m1"} }
func (p *checkProvider) ValidateConfiguration(context.Context) error { return p.validateErr }

func TestProviderChecker(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		c := NewProviderChecker(&checkProvider{name: "openai"})

		if got := c.Name(); got != "provider:openai" {
			t.Errorf("Name() = %q, want %q", got, "provider:openai")
		}
		result := c.Check(context.Background())
		if result.Status != StatusHealthy {
			t.Errorf("Status = %v, want %v", result.Status, StatusHealthy)
		}
		if result.Details["provider"] != "openai" {
			t.Errorf("Details[provider] = %v, want openai", result.Details["provider"])
		}
	})

	t.Run("unhealthy on validation failure", func(t *testing.T) {
		verr := fault.New(fault.KindAuthentication, "key rejected")
		c := NewProviderChecker(&checkProvider{name: "openai", validateErr: verr})

		result := c.Check(context.Background())
		if result.Status != StatusUnhealthy {
			t.Errorf("Status = %v, want %v", result.Status, StatusUnhealthy)
		}
		if !errors.Is(result.Error, verr) {
			t.Errorf("Error = %v, want %v", result.Error, verr)
		}
	})
}

func TestBreakerChecker(t *testing.T) {
	boom := fault.New(fault.KindExternalAPI, "backend down")

	cb := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: 2,
		RecoveryTimeout:  time.Hour,
	})
	c := NewBreakerChecker("openai", cb)

	if got := c.Name(); got != "breaker:openai" {
		t.Errorf("Name() = %q, want %q", got, "breaker:openai")
	}

	if result := c.Check(context.Background()); result.Status != StatusHealthy {
		t.Errorf("closed breaker Status = %v, want %v", result.Status, StatusHealthy)
	}

	for range 2 {
		cb.Execute(context.Background(), func(context.Context) error { return boom })
	}

	result := c.Check(context.Background())
	if result.Status != StatusUnhealthy {
		t.Errorf("open breaker Status = %v, want %v", result.Status, StatusUnhealthy)
	}
	if result.Details["state"] != "open" {
		t.Errorf("Details[state] = %v, want open", result.Details["state"])
	}
	if result.Details["failure_count"] != 2 {
		t.Errorf("Details[failure_count] = %v, want 2", result.Details["failure_count"])
	}
}

func TestBreakerChecker_HalfOpenIsDegraded(t *testing.T) {
	boom := fault.New(fault.KindExternalAPI, "backend down")

	cb := resilience.NewCircuitBreaker(resilience.BreakerConfig{
		FailureThreshold: 1,
		RecoveryTimeout:  time.Nanosecond,
	})
	cb.Execute(context.Background(), func(context.Context) error { return boom })
	time.Sleep(time.Millisecond) // let the recovery window elapse

	result := NewBreakerChecker("azure", cb).Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("half-open breaker Status = %v, want %v", result.Status, StatusDegraded)
	}
}
