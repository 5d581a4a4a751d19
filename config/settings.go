package config

import (
	"time"

	"github.com/jonwraymond/llmops/provider"
)

// Defaults applied by ValidatedConfig.
const (
	DefaultModel           = "gpt-4o"
	DefaultTimeout         = 30 * time.Second
	DefaultAzureAPIVersion = "2024-06-01"
)

// Settings is the normalized, validated configuration.
type Settings struct {
	// Provider is the active mode, "openai" or "azure".
	Provider string

	// Model is the default model for requests.
	Model string

	// Timeout bounds each provider call.
	Timeout time.Duration

	// Debug enables verbose diagnostics.
	Debug bool

	OpenAIAPIKey       string
	OpenAIBaseURL      string
	OpenAIOrganization string

	AzureAPIKey     string
	AzureEndpoint   string
	AzureDeployment string
	AzureAPIVersion string
}

// ProviderConfig bridges the settings to the factory's tagged union.
func (s *Settings) ProviderConfig() *provider.Config {
	cfg := &provider.Config{Provider: s.Provider}
	switch s.Provider {
	case "azure":
		cfg.Azure = &provider.AzureConfig{
			APIKey:     s.AzureAPIKey,
			Endpoint:   s.AzureEndpoint,
			Deployment: s.AzureDeployment,
			APIVersion: s.AzureAPIVersion,
			Model:      s.Model,
			Timeout:    s.Timeout,
		}
	default:
		cfg.OpenAI = &provider.OpenAIConfig{
			APIKey:       s.OpenAIAPIKey,
			BaseURL:      s.OpenAIBaseURL,
			Organization: s.OpenAIOrganization,
			Model:        s.Model,
			Timeout:      s.Timeout,
		}
	}
	return cfg
}
