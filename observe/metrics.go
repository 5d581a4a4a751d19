package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/llmops/fault"
)

// TokenUsage carries token counts for a completed call.
type TokenUsage struct {
	Prompt     int64
	Completion int64
}

// Metrics records provider call metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a provider call with duration and error status.
	RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error)

	// RecordRetry records one retry of a provider call.
	RecordRetry(ctx context.Context, meta CallMeta, attempt int)

	// AddUsage accumulates token usage reported by the backend.
	AddUsage(ctx context.Context, meta CallMeta, usage TokenUsage)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter            metric.Meter
	callCount        metric.Int64Counter
	errorCount       metric.Int64Counter
	retryCount       metric.Int64Counter
	durationHist     metric.Float64Histogram
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	callCount, err := meter.Int64Counter(
		"llm.call.total",
		metric.WithDescription("Total number of provider calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"llm.call.errors",
		metric.WithDescription("Total number of failed provider calls"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	retryCount, err := meter.Int64Counter(
		"llm.call.retries",
		metric.WithDescription("Total number of provider call retries"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"llm.call.duration_ms",
		metric.WithDescription("Provider call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	promptTokens, err := meter.Int64Counter(
		"llm.tokens.prompt",
		metric.WithDescription("Prompt tokens consumed"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	completionTokens, err := meter.Int64Counter(
		"llm.tokens.completion",
		metric.WithDescription("Completion tokens produced"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:            meter,
		callCount:        callCount,
		errorCount:       errorCount,
		retryCount:       retryCount,
		durationHist:     durationHist,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
	}, nil
}

func (m *metricsImpl) attrs(meta CallMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("gen_ai.system", meta.Provider),
		attribute.String("gen_ai.operation.name", meta.Operation),
	}
	if meta.Model != "" {
		attrs = append(attrs, attribute.String("gen_ai.request.model", meta.Model))
	}
	return attrs
}

// RecordCall records metrics for one provider call.
func (m *metricsImpl) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(m.attrs(meta)...)

	m.callCount.Add(ctx, 1, opt)

	if err != nil {
		errOpt := metric.WithAttributes(append(m.attrs(meta),
			attribute.String("error.type", fault.KindOf(err).String()),
		)...)
		m.errorCount.Add(ctx, 1, errOpt)
	}

	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordRetry records one retry attempt.
func (m *metricsImpl) RecordRetry(ctx context.Context, meta CallMeta, attempt int) {
	opt := metric.WithAttributes(append(m.attrs(meta),
		attribute.Int("retry.attempt", attempt),
	)...)
	m.retryCount.Add(ctx, 1, opt)
}

// AddUsage accumulates token counters.
func (m *metricsImpl) AddUsage(ctx context.Context, meta CallMeta, usage TokenUsage) {
	opt := metric.WithAttributes(m.attrs(meta)...)
	if usage.Prompt > 0 {
		m.promptTokens.Add(ctx, usage.Prompt, opt)
	}
	if usage.Completion > 0 {
		m.completionTokens.Add(ctx, usage.Completion, opt)
	}
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordCall(ctx context.Context, meta CallMeta, duration time.Duration, err error) {
}
func (m *noopMetrics) RecordRetry(ctx context.Context, meta CallMeta, attempt int)   {}
func (m *noopMetrics) AddUsage(ctx context.Context, meta CallMeta, usage TokenUsage) {}

// NopMetrics returns a Metrics that discards everything.
func NopMetrics() Metrics { return &noopMetrics{} }
