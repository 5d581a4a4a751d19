package provider

import "time"

// Config is the tagged union the factory dispatches on. Provider selects the
// variant; exactly one sub-config consistent with it should be populated.
// Each constructor enforces the presence of its own variant.
type Config struct {
	// Provider is the discriminant tag, matching a registry name.
	Provider string

	OpenAI *OpenAIConfig
	Azure  *AzureConfig
}

// OpenAIConfig configures the OpenAI-compatible adapter.
type OpenAIConfig struct {
	// APIKey authenticates against the backend.
	APIKey string

	// BaseURL overrides the API base URL.
	// Default: https://api.openai.com/v1
	BaseURL string

	// Organization is sent as the OpenAI-Organization header when set.
	Organization string

	// Model is the default model for requests.
	// Default: gpt-4o
	Model string

	// Timeout bounds each HTTP round trip.
	// Default: 30s
	Timeout time.Duration
}

// AzureConfig configures the Azure OpenAI adapter.
type AzureConfig struct {
	// APIKey authenticates via the api-key header.
	APIKey string

	// Endpoint is the resource endpoint, e.g.
	// https://my-resource.openai.azure.com.
	Endpoint string

	// Deployment is the deployment identifier the requests target.
	Deployment string

	// APIVersion selects the REST API version.
	// Default: 2024-06-01
	APIVersion string

	// Model names the model behind the deployment.
	// Default: the deployment identifier.
	Model string

	// Timeout bounds each HTTP round trip.
	// Default: 30s
	Timeout time.Duration
}
