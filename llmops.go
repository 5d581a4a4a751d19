// Package llmops wires the provider abstraction together: a registry
// preloaded with the built-in adapters and a convenience constructor that
// goes from validated environment configuration to a ready provider.
package llmops

import (
	"context"

	"github.com/jonwraymond/llmops/config"
	"github.com/jonwraymond/llmops/provider"
	"github.com/jonwraymond/llmops/provider/azure"
	"github.com/jonwraymond/llmops/provider/openai"
)

// NewDefaultRegistry returns a registry with the built-in adapters
// registered under their canonical names.
func NewDefaultRegistry() *provider.Registry {
	registry := provider.NewRegistry()
	registry.Register(openai.ProviderName, func(cfg *provider.Config) (provider.Provider, error) {
		return openai.New(cfg)
	})
	registry.Register(azure.ProviderName, func(cfg *provider.Config) (provider.Provider, error) {
		return azure.New(cfg)
	})
	return registry
}

// NewFromEnvironment validates the environment through src (nil reads the
// process environment), resolves the active provider config, and builds
// the provider through the default registry. Deprecated or incomplete
// configuration fails here, before any network traffic.
func NewFromEnvironment(ctx context.Context, src config.Source) (provider.Provider, error) {
	settings, err := config.NewValidator(src).ValidatedConfig()
	if err != nil {
		return nil, err
	}

	factory := provider.NewFactory(NewDefaultRegistry())
	return factory.Create(ctx, settings.ProviderConfig())
}
