package credential

import "net/http"

// Credential attaches authentication material to an outbound HTTP request.
type Credential interface {
	// Name identifies the credential scheme, e.g. "api_key" or "bearer".
	Name() string

	// Apply sets the credential on the request.
	Apply(req *http.Request)

	// Redacted returns a masked representation safe for logs.
	Redacted() string
}

// redact masks a secret, keeping at most the last four characters visible.
func redact(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return "****" + secret[len(secret)-4:]
}
