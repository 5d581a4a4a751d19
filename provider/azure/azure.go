package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/llmops/credential"
	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/provider"
)

// ProviderName is the registry tag for this adapter.
const ProviderName = "azure"

// DefaultAPIVersion is used when the config leaves APIVersion empty.
const DefaultAPIVersion = "2024-06-01"

// Provider is the Azure OpenAI chat completion adapter. It targets a single
// deployment under a resource endpoint.
type Provider struct {
	config     provider.AzureConfig
	endpoint   string
	model      string
	cred       credential.Credential
	bearer     *credential.BearerToken
	httpClient *http.Client

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

// WithBearerToken authenticates with an Azure AD bearer token instead of
// the api-key header. Token expiry is checked by ValidateConfiguration.
func WithBearerToken(token *credential.BearerToken) Option {
	return func(p *Provider) {
		p.bearer = token
		p.cred = token
	}
}

// New creates an Azure OpenAI adapter from the factory config.
func New(cfg *provider.Config, opts ...Option) (*Provider, error) {
	if cfg == nil || cfg.Azure == nil {
		return nil, fault.New(fault.KindConfigMissing, "Azure configuration is required")
	}

	ac := *cfg.Azure
	if ac.APIVersion == "" {
		ac.APIVersion = DefaultAPIVersion
	}
	if ac.Model == "" {
		ac.Model = ac.Deployment
	}
	if ac.Timeout <= 0 {
		ac.Timeout = 30 * time.Second
	}

	p := &Provider{
		config:   ac,
		endpoint: strings.TrimRight(ac.Endpoint, "/"),
		model:    ac.Model,
		cred:     credential.NewAzureKey(ac.APIKey),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.httpClient == nil {
		p.httpClient = &http.Client{Timeout: ac.Timeout}
	}
	p.httpClient.Transport = &credential.Transport{
		Credential: p.cred,
		Base:       p.httpClient.Transport,
	}

	return p, nil
}

// Name returns "azure".
func (p *Provider) Name() string {
	return ProviderName
}

// SupportedModels returns the model behind the configured deployment.
func (p *Provider) SupportedModels() []string {
	return []string{p.model}
}

// SupportsStreaming returns true.
func (p *Provider) SupportsStreaming() bool {
	return true
}

// SupportsReasoning reports whether the deployed model is an o-series
// reasoning model.
func (p *Provider) SupportsReasoning() bool {
	return strings.HasPrefix(p.model, "o1") || strings.HasPrefix(p.model, "o3")
}

// IsModelSupported reports whether the model matches the deployment.
func (p *Provider) IsModelSupported(model string) bool {
	return model == p.model || model == p.config.Deployment
}

// ModelCapabilities returns capability metadata for the deployed model.
func (p *Provider) ModelCapabilities(model string) (provider.ModelCapabilities, error) {
	if !p.IsModelSupported(model) {
		return provider.ModelCapabilities{}, fault.Newf(fault.KindUnsupportedModel,
			"model %q is not served by deployment %q", model, p.config.Deployment).
			WithProvider(ProviderName)
	}
	return provider.ModelCapabilities{
		MaxTokens:         16_384,
		SupportsStreaming: true,
		SupportsReasoning: p.SupportsReasoning(),
	}, nil
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

// chatURL builds the deployment chat completions URL.
func (p *Provider) chatURL() string {
	return p.endpoint + "/openai/deployments/" + url.PathEscape(p.config.Deployment) +
		"/chat/completions?api-version=" + url.QueryEscape(p.config.APIVersion)
}

// CreateChatCompletion performs a blocking chat completion against the
// configured deployment.
func (p *Provider) CreateChatCompletion(ctx context.Context, req *provider.ChatRequest) (*provider.ChatResponse, error) {
	if req != nil && req.Model == "" {
		req.Model = p.model
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
		return nil, classifyStatus(resp)
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fault.Wrap(fault.KindExternalAPI, err, "decoding chat completion response").
			WithProvider(ProviderName)
	}

	out := toChatResponse(wire)
	if out.Model == "" {
		out.Model = p.model
	}
	p.recordUsage(out.Usage)
	return out, nil
}

// CreateStreamingChatCompletion starts a streaming chat completion.
func (p *Provider) CreateStreamingChatCompletion(ctx context.Context, req *provider.ChatRequest) (*provider.Stream, error) {
	if req != nil && req.Model == "" {
		req.Model = p.model
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
		return nil, classifyStatus(resp)
	}

	return provider.NewStream(p.decodeSSE(resp)), nil
}

func (p *Provider) postChat(ctx context.Context, body chatRequest) (*http.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidRequest, err, "encoding chat completion request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.chatURL(), bytes.NewReader(payload))
	if err != nil {
		return nil, fault.Wrap(fault.KindInvalidRequest, err, "building chat completion request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, classifyTransport(err)
	}
	return resp, nil
}

// ValidateConfiguration checks the config shape, the credential, and the
// reachability of the deployment. Concurrent probes are deduplicated.
func (p *Provider) ValidateConfiguration(ctx context.Context) error {
	if p.config.Endpoint == "" {
		return fault.New(fault.KindConfigMissing, "Azure endpoint is required").
			WithProvider(ProviderName)
	}
	if !strings.HasPrefix(p.config.Endpoint, "https://") {
		return fault.Newf(fault.KindConfigMissing, "Azure endpoint %q must use https", p.config.Endpoint).
			WithProvider(ProviderName)
	}
	if p.config.Deployment == "" {
		return fault.New(fault.KindConfigMissing, "Azure deployment is required").
			WithProvider(ProviderName)
	}
	if p.bearer != nil {
		if p.bearer.Expired(time.Now()) {
			return fault.Wrap(fault.KindAuthentication, credential.ErrTokenExpired,
				"Azure AD token expired").WithProvider(ProviderName)
		}
	} else if p.config.APIKey == "" {
		return fault.New(fault.KindConfigMissing, "Azure API key is required").
			WithProvider(ProviderName)
	}

	_, err, _ := p.probe.Do("deployment", func() (any, error) {
		return nil, p.probeDeployment(ctx)
	})
	return err
}

// probeDeployment sends a minimal completion request to the deployment. A
// classified request rejection still proves the deployment is reachable
// and the credential accepted, so only auth, routing, and transport
// failures surface.
func (p *Provider) probeDeployment(ctx context.Context) error {
	probe := chatRequest{
		Messages:  []wireMessage{{Role: string(provider.RoleUser), Content: "ping"}},
		MaxTokens: provider.Int(1),
	}
	resp, err := p.postChat(ctx, probe)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return nil
	default:
		return classifyStatus(resp)
	}
}

var _ provider.Provider = (*Provider)(nil)
