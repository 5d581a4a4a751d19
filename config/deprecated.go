package config

// Configuration variable names.
const (
	// EnvProvider selects the provider mode: "openai" (default) or "azure".
	EnvProvider = "LLMOPS_PROVIDER"

	// EnvModel overrides the default model.
	EnvModel = "LLMOPS_MODEL"

	// EnvTimeoutMS bounds each provider call, in milliseconds.
	EnvTimeoutMS = "LLMOPS_TIMEOUT_MS"

	// EnvDebug enables verbose diagnostics.
	EnvDebug = "LLMOPS_DEBUG"

	EnvOpenAIAPIKey       = "OPENAI_API_KEY"
	EnvOpenAIBaseURL      = "OPENAI_BASE_URL"
	EnvOpenAIOrganization = "OPENAI_ORGANIZATION"

	EnvAzureAPIKey     = "AZURE_OPENAI_API_KEY"
	EnvAzureEndpoint   = "AZURE_OPENAI_ENDPOINT"
	EnvAzureDeployment = "AZURE_OPENAI_DEPLOYMENT"
	EnvAzureAPIVersion = "AZURE_OPENAI_API_VERSION"
)

// Deprecated variable names. Their presence fails validation outright;
// the migration guides below explain the replacement.
const (
	// EnvAccessToken predates per-provider key variables.
	EnvAccessToken = "LLMOPS_ACCESS_TOKEN"

	// EnvAPIToken predates per-provider key variables.
	EnvAPIToken = "LLMOPS_API_TOKEN"

	// EnvProxyURL routed calls through a bundled reverse proxy that no
	// longer ships.
	EnvProxyURL = "LLMOPS_PROXY_URL"

	// EnvProxyEnabled toggled the bundled reverse proxy.
	EnvProxyEnabled = "LLMOPS_PROXY_ENABLED"
)

// family groups deprecated variables that share a remediation path.
type family string

const (
	familyCredentialToken family = "credential-token"
	familyReverseProxy    family = "reverse-proxy"
)

var deprecatedVars = map[string]family{
	EnvAccessToken:  familyCredentialToken,
	EnvAPIToken:     familyCredentialToken,
	EnvProxyURL:     familyReverseProxy,
	EnvProxyEnabled: familyReverseProxy,
}
