package resilience

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jonwraymond/llmops/fault"
)

func TestSentinelClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind fault.Kind
	}{
		{"circuit open", ErrCircuitOpen, fault.KindUnavailable},
		{"timeout", ErrTimeout, fault.KindTimeout},
		{"queue full", ErrQueueFull, fault.KindUnavailable},
		{"limiter full", ErrLimiterFull, fault.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fault.KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.kind)
			}
			if !strings.HasPrefix(tt.err.Error(), "resilience: ") {
				t.Errorf("message %q missing package prefix", tt.err.Error())
			}
		})
	}
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("call failed: %w", ErrCircuitOpen)

	if !errors.Is(wrapped, ErrCircuitOpen) {
		t.Error("errors.Is(wrapped, ErrCircuitOpen) = false, want true")
	}
	if fault.KindOf(wrapped) != fault.KindUnavailable {
		t.Errorf("KindOf(wrapped) = %v, want unavailable", fault.KindOf(wrapped))
	}
}
