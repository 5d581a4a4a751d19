// Package credential provides outbound request credentials for provider
// adapters: static API keys, bearer tokens with JWT expiry inspection, and
// an http.RoundTripper that applies a credential to every request.
//
// Credentials never log or print their secret material; Redacted returns a
// masked form safe for diagnostics.
package credential
