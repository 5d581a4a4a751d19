package provider

import "context"

// Provider is the capability contract every backend adapter satisfies.
//
// Contract:
//   - Concurrency: implementations must be safe for concurrent use.
//   - Context: blocking methods must honor cancellation/deadlines.
//   - Errors: every failure carries a fault.Kind so retry policies and
//     circuit breakers can classify it without inspecting messages.
type Provider interface {
	// Name returns the adapter's registry name.
	Name() string

	// SupportedModels lists the model identifiers this adapter serves.
	SupportedModels() []string

	// SupportsStreaming reports whether any served model can stream.
	SupportsStreaming() bool

	// SupportsReasoning reports whether any served model exposes
	// reasoning capabilities.
	SupportsReasoning() bool

	// CreateChatCompletion performs a blocking chat completion.
	CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// CreateStreamingChatCompletion starts a streaming chat completion.
	// The returned stream is lazy, finite, and consumable exactly once.
	CreateStreamingChatCompletion(ctx context.Context, req *ChatRequest) (*Stream, error)

	// ValidateConfiguration verifies the adapter can reach its backend
	// with its current configuration.
	ValidateConfiguration(ctx context.Context) error

	// UsageInfo returns a snapshot of tokens consumed through this
	// adapter instance.
	UsageInfo() Usage

	// IsModelSupported reports whether this adapter serves the model.
	IsModelSupported(model string) bool

	// ModelCapabilities returns capability metadata for a served model.
	ModelCapabilities(model string) (ModelCapabilities, error)
}
