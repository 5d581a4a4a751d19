// Package provider defines the capability contract for AI backend adapters
// and the machinery that constructs them.
//
// The Provider interface is what callers consume: chat completions,
// streaming, capability flags, and configuration validation. Adapters for
// concrete backends live in subpackages and are wired up through a Registry
// of named constructors and a Factory that dispatches on the tagged Config.
//
// Decorators compose cross-cutting behavior around any Provider:
// WithResilience routes calls through a resilience.Executor, WithCache
// serves deterministic completions from a TTL cache.
//
//	reg := llmops.NewDefaultRegistry()
//	factory := provider.NewFactory(reg)
//	p, err := factory.CreateWithValidation(ctx, &provider.Config{
//	    Provider: "openai",
//	    OpenAI:   &provider.OpenAIConfig{APIKey: key},
//	})
package provider
