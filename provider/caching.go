package provider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jonwraymond/llmops/cache"
)

// cachingProvider serves deterministic completions from a TTL cache.
type cachingProvider struct {
	Provider
	cache  cache.Cache
	keyer  cache.Keyer
	policy cache.Policy
	ttl    time.Duration
}

// WithCache decorates p to serve deterministic completions (temperature
// pinned to zero) from c. Streaming calls are never cached. Cache failures
// degrade to calling the backend, never to failing the request.
func WithCache(p Provider, c cache.Cache, policy cache.Policy, ttl time.Duration) Provider {
	if c == nil || !policy.ShouldCache() {
		return p
	}
	return &cachingProvider{
		Provider: p,
		cache:    c,
		keyer:    cache.NewDefaultKeyer(),
		policy:   policy,
		ttl:      ttl,
	}
}

func (cp *cachingProvider) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	if req == nil || !cp.policy.CacheableCompletion(req.Model, req.Temperature) {
		return cp.Provider.CreateChatCompletion(ctx, req)
	}

	key, err := cp.keyer.Key(req.Model, cacheablePayload(req))
	if err != nil {
		return cp.Provider.CreateChatCompletion(ctx, req)
	}

	if data, ok := cp.cache.Get(ctx, key); ok {
		var resp ChatResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			return &resp, nil
		}
		// Corrupt entry, drop it and fall through to the backend.
		_ = cp.cache.Delete(ctx, key)
	}

	resp, err := cp.Provider.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		_ = cp.cache.Set(ctx, key, data, cp.policy.EffectiveTTL(cp.ttl))
	}
	return resp, nil
}

// cacheablePayload extracts the fields that determine a completion's output.
// The request ID and user tag are deliberately excluded: two callers asking
// the same deterministic question share one cache entry.
func cacheablePayload(req *ChatRequest) map[string]any {
	payload := map[string]any{
		"model":    req.Model,
		"messages": req.Messages,
	}
	if req.SystemPrompt != "" {
		payload["system_prompt"] = req.SystemPrompt
	}
	if req.Temperature != nil {
		payload["temperature"] = *req.Temperature
	}
	if req.TopP != nil {
		payload["top_p"] = *req.TopP
	}
	if req.MaxTokens != nil {
		payload["max_tokens"] = *req.MaxTokens
	}
	if len(req.Stop) > 0 {
		payload["stop"] = req.Stop
	}
	return payload
}
