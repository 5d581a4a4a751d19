package credential

import "net/http"

// APIKeyConfig configures how an API key is sent.
type APIKeyConfig struct {
	// Header is the request header carrying the key.
	// Default: "Authorization"
	Header string

	// Prefix is prepended to the key value.
	// Default: "Bearer "
	Prefix string
}

// APIKey is a static API key credential.
type APIKey struct {
	key    string
	config APIKeyConfig
}

// NewAPIKey creates an API key credential. With a zero config the key is
// sent as "Authorization: Bearer <key>".
func NewAPIKey(key string, config APIKeyConfig) *APIKey {
	// Apply defaults
	if config.Header == "" {
		config.Header = "Authorization"
	}
	if config.Prefix == "" && config.Header == "Authorization" {
		config.Prefix = "Bearer "
	}

	return &APIKey{
		key:    key,
		config: config,
	}
}

// NewAzureKey creates a credential that sends the key in the "api-key"
// header with no prefix, as Azure OpenAI expects.
func NewAzureKey(key string) *APIKey {
	return &APIKey{
		key:    key,
		config: APIKeyConfig{Header: "api-key"},
	}
}

// Name returns "api_key".
func (a *APIKey) Name() string {
	return "api_key"
}

// Apply sets the configured header on the request.
func (a *APIKey) Apply(req *http.Request) {
	req.Header.Set(a.config.Header, a.config.Prefix+a.key)
}

// Redacted returns the header name with a masked key.
func (a *APIKey) Redacted() string {
	return a.config.Header + ": " + a.config.Prefix + redact(a.key)
}

// Empty reports whether the key is blank.
func (a *APIKey) Empty() bool {
	return a.key == ""
}

var _ Credential = (*APIKey)(nil)
