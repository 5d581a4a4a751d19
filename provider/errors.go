package provider

import (
	"errors"

	"github.com/jonwraymond/llmops/fault"
)

// Sentinel errors for provider operations.
var (
	// ErrStreamConsumed is returned when a one-shot stream is consumed
	// a second time.
	ErrStreamConsumed = errors.New("provider: stream already consumed")

	// ErrNilConfig is returned when a nil configuration reaches the
	// factory.
	ErrNilConfig = fault.New(fault.KindConfigMissing, "provider: config is nil")
)
