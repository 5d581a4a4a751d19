package provider

import (
	"github.com/oklog/ulid/v2"

	"github.com/jonwraymond/llmops/fault"
)

// ValidateRequest enforces the shared request contract once, for all
// adapters. Violations classify as fault.KindInvalidRequest (or
// fault.KindUnsupportedModel for an unknown model) and are never retried.
// A request that passes validation gets a ULID assigned to its ID when the
// caller left it empty.
func ValidateRequest(req *ChatRequest, p Provider) error {
	if req == nil {
		return fault.New(fault.KindInvalidRequest, "request is nil")
	}
	if len(req.Messages) == 0 {
		return fault.New(fault.KindInvalidRequest, "messages must not be empty")
	}
	if req.Model == "" {
		return fault.New(fault.KindInvalidRequest, "model must not be empty")
	}
	if !p.IsModelSupported(req.Model) {
		return fault.Newf(fault.KindUnsupportedModel, "model %q is not supported", req.Model).
			WithProvider(p.Name())
	}
	if req.Temperature != nil && (*req.Temperature < 0 || *req.Temperature > 2) {
		return fault.Newf(fault.KindInvalidRequest, "temperature %v out of range [0, 2]", *req.Temperature)
	}
	if req.MaxTokens != nil && *req.MaxTokens <= 0 {
		return fault.Newf(fault.KindInvalidRequest, "max tokens %d must be positive", *req.MaxTokens)
	}

	if req.ID == "" {
		req.ID = ulid.Make().String()
	}
	return nil
}
