package observe

import (
	"context"
	"time"

	"github.com/jonwraymond/llmops/fault"
)

// CallFunc is the signature of an instrumented provider call.
type CallFunc func(ctx context.Context) error

// Middleware wraps provider calls with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Do is safe for concurrent use.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped call are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Do runs fn inside a span, records call metrics, and logs the outcome.
func (m *Middleware) Do(ctx context.Context, meta CallMeta, fn CallFunc) error {
	ctx, span := m.tracer.StartSpan(ctx, meta)

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	m.tracer.EndSpan(span, err)
	m.metrics.RecordCall(ctx, meta, duration, err)

	callLogger := m.logger.WithCall(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}

	if err != nil {
		fields = append(fields,
			Field{Key: "error", Value: err.Error()},
			Field{Key: "error_kind", Value: fault.KindOf(err).String()},
		)
		callLogger.Error(ctx, "provider call failed", fields...)
	} else {
		callLogger.Info(ctx, "provider call completed", fields...)
	}

	return err
}

// Metrics exposes the middleware's metrics sink so callers can record usage
// that only they can see (token counts from parsed responses).
func (m *Middleware) Metrics() Metrics {
	return m.metrics
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}
