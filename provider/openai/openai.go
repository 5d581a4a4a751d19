package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/llmops/credential"
	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
)

// ProviderName is the registry tag for this adapter.
const ProviderName = "openai"

const defaultBaseURL = "https://api.openai.com/v1"

// Provider is the OpenAI chat completion adapter.
type Provider struct {
	config     provider.OpenAIConfig
	baseURL    string
	httpClient *http.Client
	models     map[string]provider.ModelInfo

	mu    sync.Mutex
	usage provider.Usage

	probe singleflight.Group
}

// Option customizes the adapter.
type Option func(*Provider)

// WithHTTPClient replaces the HTTP client. The credential transport is
// layered on top of the client's existing transport.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Provider) {
		p.httpClient = client
	}
}

// New creates an OpenAI adapter from the factory config.
func New(cfg *provider.Config, opts ...Option) (*Provider, error) {
	if cfg == nil || cfg.OpenAI == nil {
		return nil, fault.New(fault.KindConfigMissing, "OpenAI configuration is required")
	}

	oc := *cfg.OpenAI
	if oc.Model == "" {
		oc.Model = "gpt-4o"
	}
	if oc.Timeout <= 0 {
		oc.Timeout = 30 * time.Second
	}

	baseURL := oc.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	p := &Provider{
		config:  oc,
		baseURL: baseURL,
		models:  modelTable(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: oc.Timeout}
	}
	p.httpClient.Transport = &credential.Transport{
		Credential: credential.NewAPIKey(oc.APIKey, credential.APIKeyConfig{}),
		Base:       p.httpClient.Transport,
	}

	return p, nil
}

// Name returns "openai".
func (p *Provider) Name() string {
	return ProviderName
}

// SupportedModels lists the served model identifiers.
func (p *Provider) SupportedModels() []string {
	ids := make([]string, 0, len(knownModels))
	for _, m := range knownModels {
		ids = append(ids, m.ID)
	}
	return ids
}

// SupportsStreaming returns true.
func (p *Provider) SupportsStreaming() bool {
	return true
}

// SupportsReasoning returns true; the o-series models expose reasoning.
func (p *Provider) SupportsReasoning() bool {
	return true
}

// IsModelSupported reports whether the model is in the published table.
func (p *Provider) IsModelSupported(model string) bool {
	_, ok := p.models[model]
	return ok
}

// ModelCapabilities returns capability metadata for a served model.
func (p *Provider) ModelCapabilities(model string) (provider.ModelCapabilities, error) {
	info, ok := p.models[model]
	if !ok {
		return provider.ModelCapabilities{}, fault.Newf(fault.KindUnsupportedModel,
			"model %q is not supported", model).WithProvider(ProviderName)
	}
	return info.Capabilities(), nil
}

// UsageInfo returns a snapshot of tokens consumed through this instance.
func (p *Provider) UsageInfo() provider.Usage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.usage
}

func (p *Provider) recordUsage(u provider.Usage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.usage.Add(u)
}

// CreateChatCompletion performs a blocking chat completion.
func (p *Provider) CreateChatCompletion(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	if req != nil && req.Model == "" {
		req.Model = p.config.Model
	}
	if err := provider.ValidateRequest(req, p); err != nil {
		return nil, err
	}

	resp, err := p.postChat(ctx, buildChatRequest(req, false))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatus(ProviderName, resp)
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fault.Wrap(fault.KindExternalAPI, err, "decoding chat completion response").
			WithProvider(ProviderName)
	}

	out := toChatResponse(wire)
	p.recordUsage(out.Usage)
	return out, nil
}

// CreateStreamingChatCompletion starts a streaming chat completion. The
// request is sent when the returned stream is consumed.
func (p *Provider) CreateStreamingChatCompletion(ctx context.Context, req *provider.ChatRequest) (*provider.Stream, error) {
	if req != nil && req.Model == "" {
		req.Model = p.config.Model
	}
	if err := provider.ValidateRequest(req, p); err != nil {
		return nil, err
	}

	resp, err := p.postChat(ctx, buildChatRequest(req, true))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, classifyStatus(ProviderName, resp)
	}

	return provider.NewStream(p.decodeSSE(resp)), nil
}

func (p *Provider) postChat(ctx context.Context, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidRequest, err, "encoding chat completion request")
	}

	url := p.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidRequest, err, "building chat completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.config.Organization != "" {
		httpReq.Header.Set("OpenAI-Organization", p.config.Organization)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(ProviderName, err)
	}
	return resp, nil
}

// ValidateConfiguration verifies the API key is present and the backend is
// reachable. Concurrent probes against the same instance are deduplicated.
func (p *Provider) ValidateConfiguration(ctx context.Context) error {
	if p.config.APIKey == "" {
		return fault.New(fault.KindConfigMissing, "OpenAI API key is required").
			WithProvider(ProviderName)
	}

	_, err, _ := p.probe.Do("models", func() (any, error) {
		return nil, p.probeModels(ctx)
	})
	return err
}

func (p *Provider) probeModels(ctx context.Context) error {
	url := p.baseURL + "/models"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fault.Wrap(fault.KindInvalidRequest, err, "building models probe")
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return classifyTransport(ProviderName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(ProviderName, resp)
	}
	return nil
}

var _ provider.Provider = (*Provider)(nil)
