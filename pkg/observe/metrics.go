// Package observe provides observability primitives for the note pipeline:
// OpenTelemetry metrics, tracing helpers, and slog enrichment.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped from the host application's /metrics endpoint. A package-level
// default [Metrics] instance ([DefaultMetrics]) is provided for
// convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all notekit metrics.
const meterName = "github.com/emberhealth/notekit"

// Metrics holds all OpenTelemetry metric instruments for the note
// pipeline. All fields are safe for concurrent use — the underlying OTel
// types handle their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// CompileDuration tracks instruction compilation latency.
	CompileDuration metric.Float64Histogram

	// RenderDuration tracks formatted-document rendering latency.
	RenderDuration metric.Float64Histogram

	// --- Counters ---

	// Compilations counts compile calls. Use with attributes:
	//   attribute.String("structure", ...), attribute.String("format", ...)
	Compilations metric.Int64Counter

	// Renders counts render calls. Use with attribute:
	//   attribute.String("letterhead", "true"|"false")
	Renders metric.Int64Counter

	// --- Size histograms ---

	// CompiledBytes tracks the size of compiled instruction documents.
	CompiledBytes metric.Int64Histogram

	// RenderedBytes tracks the size of rendered HTML fragments.
	RenderedBytes metric.Int64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds). The
// transforms are pure CPU work, so the buckets sit well below typical
// request-latency scales.
var latencyBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// sizeBuckets defines histogram bucket boundaries (in bytes) for document
// size instruments.
var sizeBuckets = []float64{
	256, 1024, 4096, 16384, 65536, 262144, 1048576,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.CompileDuration, err = m.Float64Histogram("notekit.compile.duration",
		metric.WithDescription("Latency of instruction compilation."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RenderDuration, err = m.Float64Histogram("notekit.render.duration",
		metric.WithDescription("Latency of formatted-document rendering."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Compilations, err = m.Int64Counter("notekit.compile.total",
		metric.WithDescription("Total instruction compilations by structure and format."),
	); err != nil {
		return nil, err
	}
	if met.Renders, err = m.Int64Counter("notekit.render.total",
		metric.WithDescription("Total document renders by letterhead presence."),
	); err != nil {
		return nil, err
	}

	if met.CompiledBytes, err = m.Int64Histogram("notekit.compile.bytes",
		metric.WithDescription("Size of compiled instruction documents."),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(sizeBuckets...),
	); err != nil {
		return nil, err
	}
	if met.RenderedBytes, err = m.Int64Histogram("notekit.render.bytes",
		metric.WithDescription("Size of rendered HTML fragments."),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(sizeBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it
// on first call using [otel.GetMeterProvider]. Subsequent calls return the
// same pointer. Panics if instrument creation fails (should not happen
// with the global provider).
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

// RecordCompilation records one compile call with its standard attributes,
// duration, and output size.
func (m *Metrics) RecordCompilation(ctx context.Context, structure, format string, seconds float64, bytes int) {
	attrs := metric.WithAttributes(
		attribute.String("structure", structure),
		attribute.String("format", format),
	)
	m.Compilations.Add(ctx, 1, attrs)
	m.CompileDuration.Record(ctx, seconds, attrs)
	m.CompiledBytes.Record(ctx, int64(bytes), attrs)
}

// RecordRender records one render call with its duration and output size.
func (m *Metrics) RecordRender(ctx context.Context, letterhead bool, seconds float64, bytes int) {
	lh := "false"
	if letterhead {
		lh = "true"
	}
	attrs := metric.WithAttributes(attribute.String("letterhead", lh))
	m.Renders.Add(ctx, 1, attrs)
	m.RenderDuration.Record(ctx, seconds, attrs)
	m.RenderedBytes.Record(ctx, int64(bytes), attrs)
}
