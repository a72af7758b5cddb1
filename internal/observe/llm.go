package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Y3454R/vsp-mvp/pkg/provider/llm"
)

// instrumentedProvider decorates an [llm.Provider] with latency and outcome
// metrics so engine code stays free of instrumentation concerns.
type instrumentedProvider struct {
	inner     llm.Provider
	metrics   *Metrics
	operation string
}

// InstrumentProvider wraps p so every completion records its duration to
// [Metrics.LLMRequestDuration] and increments [Metrics.LLMRequests] with the
// given operation label ("chat", "evaluation").
func InstrumentProvider(p llm.Provider, m *Metrics, operation string) llm.Provider {
	return &instrumentedProvider{inner: p, metrics: m, operation: operation}
}

// Complete implements llm.Provider.
func (p *instrumentedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	ctx, span := StartSpan(ctx, "llm.complete")
	defer span.End()

	start := time.Now()
	resp, err := p.inner.Complete(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
	}
	p.metrics.LLMRequestDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("operation", p.operation)),
	)
	p.metrics.LLMRequests.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", p.operation),
			attribute.String("status", status),
		),
	)

	return resp, err
}
