package provider

import (
	"context"
	"sync"

	"github.com/jonwraymond/llmops/fault"
)

// fakeProvider is a scriptable adapter used across the package tests.
type fakeProvider struct {
	name        string
	models      []string
	validateErr error

	mu        sync.Mutex
	calls     int
	response  *ChatResponse
	err       error
	failTimes int
	failErr   error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		name:   "fake",
		models: []string{"fake-mini", "fake-pro"},
		response: &ChatResponse{
			ID:           "resp-1",
			Model:        "fake-mini",
			Content:      "hello",
			FinishReason: "stop",
			Usage:        Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
		},
	}
}

func (f *fakeProvider) Name() string              { return f.name }
func (f *fakeProvider) SupportedModels() []string { return f.models }
func (f *fakeProvider) SupportsStreaming() bool   { return true }
func (f *fakeProvider) SupportsReasoning() bool   { return false }

func (f *fakeProvider) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if err := ValidateRequest(req, f); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failTimes > 0 {
		f.failTimes--
		return nil, f.failErr
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeProvider) CreateStreamingChatCompletion(ctx context.Context, req *ChatRequest) (*Stream, error) {
	resp, err := f.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	return SingleChunkStream(resp), nil
}

func (f *fakeProvider) ValidateConfiguration(ctx context.Context) error {
	return f.validateErr
}

func (f *fakeProvider) UsageInfo() Usage {
	return Usage{}
}

func (f *fakeProvider) IsModelSupported(model string) bool {
	for _, m := range f.models {
		if m == model {
			return true
		}
	}
	return false
}

func (f *fakeProvider) ModelCapabilities(model string) (ModelCapabilities, error) {
	if !f.IsModelSupported(model) {
		return ModelCapabilities{}, fault.Newf(fault.KindUnsupportedModel, "model %q is not supported", model).WithProvider(f.name)
	}
	return ModelCapabilities{MaxTokens: 4096, SupportsStreaming: true}, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func validRequest() *ChatRequest {
	return &ChatRequest{
		Model: "fake-mini",
		Messages: []Message{
			{Role: RoleUser, Content: "hi"},
		},
	}
}

var _ Provider = (*fakeProvider)(nil)
