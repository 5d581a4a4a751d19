package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/jonwraymond/llmops/fault"
	"github.com/jonwraymond/llmops/observe"
)

// Factory builds and validates adapters from tagged configuration.
type Factory struct {
	registry *Registry
	logger   observe.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithFactoryLogger sets the logger used for creation attempts.
func WithFactoryLogger(logger observe.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// NewFactory creates a factory over the given registry.
func NewFactory(registry *Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry: registry,
		logger:   observe.NopLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create resolves the constructor for cfg's discriminant tag and invokes it.
func (f *Factory) Create(ctx context.Context, cfg *Config) (Provider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	ctor, ok := f.registry.Get(cfg.Provider)
	if !ok {
		return nil, fault.Newf(fault.KindConfigMissing, "Unsupported provider: %s", cfg.Provider)
	}

	p, err := ctor(cfg)
	if err != nil {
		return nil, err
	}

	f.logger.Debug(ctx, "provider created",
		observe.Field{Key: "provider", Value: p.Name()},
	)
	return p, nil
}

// CreateWithValidation builds the adapter, then asks it to validate its own
// configuration against the backend.
func (f *Factory) CreateWithValidation(ctx context.Context, cfg *Config) (Provider, error) {
	p, err := f.Create(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := p.ValidateConfiguration(ctx); err != nil {
		return nil, fault.Wrap(fault.KindOf(err), err, "configuration validation failed").
			WithProvider(p.Name())
	}
	return p, nil
}

// CreateWithRetry retries CreateWithValidation up to maxAttempts times with
// a linear backoff of delay × attempt between attempts. After exhausting all
// attempts it fails wrapping the last underlying error.
func (f *Factory) CreateWithRetry(ctx context.Context, cfg *Config, maxAttempts int, delay time.Duration) (Provider, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		p, err := f.CreateWithValidation(ctx, cfg)
		if err == nil {
			return p, nil
		}
		lastErr = err

		if attempt >= maxAttempts {
			break
		}

		f.logger.Warn(ctx, "provider creation failed, retrying",
			observe.Field{Key: "attempt", Value: attempt},
			observe.Field{Key: "error", Value: err},
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay * time.Duration(attempt)):
		}
	}

	return nil, fault.Wrap(fault.KindOf(lastErr), lastErr,
		fmt.Sprintf("Failed to create provider after %d attempts", maxAttempts))
}
