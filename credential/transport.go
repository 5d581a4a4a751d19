package credential

import "net/http"

// Transport is an http.RoundTripper that applies a credential to every
// outbound request.
//
// Usage:
//
//	client := &http.Client{
//		Transport: &credential.Transport{Credential: key},
//	}
type Transport struct {
	// Credential is applied to each request. Nil passes requests through.
	Credential Credential

	// Base is the underlying round tripper.
	// Default: http.DefaultTransport
	Base http.RoundTripper
}

// RoundTrip clones the request, applies the credential, and delegates to
// the base transport. The original request is never mutated, per the
// http.RoundTripper contract.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.Credential == nil {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	t.Credential.Apply(clone)
	return base.RoundTrip(clone)
}

var _ http.RoundTripper = (*Transport)(nil)
