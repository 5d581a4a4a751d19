package health

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// ProberConfig controls startup probing.
type ProberConfig struct {
	// InitialInterval is the first wait between probes.
	// Default: 500ms
	InitialInterval time.Duration

	// MaxInterval caps the wait between probes.
	// Default: 10s
	MaxInterval time.Duration

	// MaxTries bounds the number of probes. Zero means unbounded; the
	// context deadline then decides when to stop.
	MaxTries uint
}

// Prober repeatedly runs a checker with exponential backoff until it
// reports healthy. It is meant for startup gating: block until the
// provider backend is reachable, or give up.
type Prober struct {
	config  ProberConfig
	checker Checker
}

// NewProber creates a prober over checker.
func NewProber(checker Checker, config ...ProberConfig) *Prober {
	cfg := ProberConfig{}
	if len(config) > 0 {
		cfg = config[0]
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 10 * time.Second
	}
	return &Prober{config: cfg, checker: checker}
}

// Wait probes until the checker reports healthy, the tries are exhausted,
// or the context ends. It returns the first healthy result.
func (p *Prober) Wait(ctx context.Context) (Result, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.config.InitialInterval
	bo.MaxInterval = p.config.MaxInterval

	opts := []backoff.RetryOption{backoff.WithBackOff(bo)}
	if p.config.MaxTries > 0 {
		opts = append(opts, backoff.WithMaxTries(p.config.MaxTries))
	}

	return backoff.Retry(ctx, func() (Result, error) {
		result := p.checker.Check(ctx)
		if result.Status == StatusUnhealthy {
			err := result.Error
			if err == nil {
				err = fmt.Errorf("%s: %s", p.checker.Name(), result.Message)
			}
			return Result{}, err
		}
		return result, nil
	}, opts...)
}
