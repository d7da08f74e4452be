package observe

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// ProviderConfig configures [InitProvider].
type ProviderConfig struct {
	// ServiceName is the service name reported in telemetry. Default: "notekit".
	ServiceName string

	// ServiceVersion is the service version reported in telemetry.
	ServiceVersion string

	// PrometheusRegisterer receives the bridged metric collectors. When nil,
	// [prometheus.DefaultRegisterer] is used; tests pass their own registry
	// so repeated initialisation does not collide on the default one.
	PrometheusRegisterer prometheus.Registerer

	// TraceExporter is an optional span exporter. When nil, spans still
	// carry valid contexts (so [Logger] enrichment works) but are not
	// exported anywhere.
	TraceExporter sdktrace.SpanExporter
}

// InitProvider installs the note pipeline's metric and trace providers as
// the global OTel providers. Metrics flow through a Prometheus exporter
// bridge, so the embedding application scrapes them from whatever /metrics
// endpoint it already serves; spans go to cfg.TraceExporter when one is
// given.
//
// Call this once at startup, before constructing a
// [github.com/emberhealth/notekit/pkg/service.Service], and defer the
// returned shutdown function. Without it the service still works — spans
// and metrics simply fall back to the no-op global providers.
func InitProvider(ctx context.Context, cfg ProviderConfig) (shutdown func(context.Context) error, err error) {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "notekit"
	}
	reg := cfg.PrometheusRegisterer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	var shutdownFuncs []func(context.Context) error

	// --- Metrics: Prometheus exporter bridge ---
	promExp, err := promexporter.New(promexporter.WithRegisterer(reg))
	if err != nil {
		return nil, err
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promExp),
	)
	otel.SetMeterProvider(mp)
	shutdownFuncs = append(shutdownFuncs, mp.Shutdown)

	// --- Traces ---
	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
	}
	if cfg.TraceExporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(cfg.TraceExporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if e := fn(ctx); e != nil {
				errs = append(errs, e)
			}
		}
		return errors.Join(errs...)
	}

	return shutdown, nil
}
