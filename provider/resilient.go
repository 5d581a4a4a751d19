package provider

import (
	"context"

	"github.com/jonwraymond/llmops/resilience"
)

// resilientProvider routes outbound calls through a resilience executor so
// transient backend failures are absorbed by retry, circuit breaking, and
// optional queueing before the caller sees them.
type resilientProvider struct {
	Provider
	exec *resilience.Executor
}

// WithResilience decorates p so chat completion calls run through exec.
// Capability methods and local lookups pass through undecorated.
func WithResilience(p Provider, exec *resilience.Executor) Provider {
	if exec == nil {
		return p
	}
	return &resilientProvider{Provider: p, exec: exec}
}

func (r *resilientProvider) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var resp *ChatResponse
	err := r.exec.Execute(ctx, func(ctx context.Context) error {
		var err error
		resp, err = r.Provider.CreateChatCompletion(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateStreamingChatCompletion guards the call that opens the stream, not
// the consumption of the stream itself.
func (r *resilientProvider) CreateStreamingChatCompletion(ctx context.Context, req *ChatRequest) (*Stream, error) {
	var stream *Stream
	err := r.exec.Execute(ctx, func(ctx context.Context) error {
		var err error
		stream, err = r.Provider.CreateStreamingChatCompletion(ctx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// ValidateConfiguration also runs under the executor: the probe benefits
// from the same retry policy as regular calls.
func (r *resilientProvider) ValidateConfiguration(ctx context.Context) error {
	return r.exec.Execute(ctx, func(ctx context.Context) error {
		return r.Provider.ValidateConfiguration(ctx)
	})
}
