// Package observe provides application-wide observability primitives:
// OpenTelemetry metrics, tracing, structured logging helpers, and HTTP
// middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so metrics can be scraped
// from the standard /metrics endpoint. A package-level default [Metrics]
// instance ([DefaultMetrics]) is provided for convenience; tests should use
// [NewMetrics] with a custom [metric.MeterProvider] to avoid cross-test
// pollution.
package observe

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all service metrics.
const meterName = "github.com/Y3454R/vsp-mvp"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// HTTPRequestDuration tracks end-to-end HTTP request latency. Use with
	// attributes: attribute.String("method", ...), attribute.String("path", ...).
	HTTPRequestDuration metric.Float64Histogram

	// LLMRequestDuration tracks language-model round-trip latency. Use with
	// attribute: attribute.String("operation", "chat"|"evaluation").
	LLMRequestDuration metric.Float64Histogram

	// LLMRequests counts language-model calls. Use with attributes:
	// attribute.String("operation", ...), attribute.String("status", "ok"|"error").
	LLMRequests metric.Int64Counter

	// ChatTurns counts completed conversational turns. Use with attribute:
	// attribute.String("case_id", ...).
	ChatTurns metric.Int64Counter

	// Evaluations counts evaluation requests. Use with attribute:
	// attribute.String("outcome", "ok"|"degraded").
	Evaluations metric.Int64Counter
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// NewMetrics creates all metric instruments against the given provider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.HTTPRequestDuration, err = m.Float64Histogram("vsp.http.request.duration",
		metric.WithDescription("End-to-end latency of HTTP requests."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if met.LLMRequestDuration, err = m.Float64Histogram("vsp.llm.request.duration",
		metric.WithDescription("Latency of language-model completions."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	if met.LLMRequests, err = m.Int64Counter("vsp.llm.requests",
		metric.WithDescription("Number of language-model completion calls."),
	); err != nil {
		return nil, err
	}

	if met.ChatTurns, err = m.Int64Counter("vsp.chat.turns",
		metric.WithDescription("Number of completed conversational turns."),
	); err != nil {
		return nil, err
	}

	if met.Evaluations, err = m.Int64Counter("vsp.evaluations",
		metric.WithDescription("Number of evaluation requests by outcome."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}
