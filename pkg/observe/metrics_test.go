package observe_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/emberhealth/notekit/pkg/observe"
)

// newTestMetrics returns a Metrics instance backed by a manual reader so a
// test can collect exactly what it recorded.
func newTestMetrics(t *testing.T) (*observe.Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := observe.NewMetrics(provider)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) (metricdata.Metrics, bool) {
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m, true
			}
		}
	}
	return metricdata.Metrics{}, false
}

func TestNewMetrics_AllInstrumentsCreated(t *testing.T) {
	t.Parallel()

	m, _ := newTestMetrics(t)
	if m.CompileDuration == nil || m.RenderDuration == nil ||
		m.Compilations == nil || m.Renders == nil ||
		m.CompiledBytes == nil || m.RenderedBytes == nil {
		t.Error("NewMetrics left an instrument nil")
	}
}

func TestRecordCompilation(t *testing.T) {
	t.Parallel()

	m, reader := newTestMetrics(t)
	m.RecordCompilation(context.Background(), "SOAP", "paragraph", 0.002, 1234)

	rm := collect(t, reader)

	total, ok := findMetric(rm, "notekit.compile.total")
	if !ok {
		t.Fatal("notekit.compile.total not collected")
	}
	sum, ok := total.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("compile.total data is %T, want Sum[int64]", total.Data)
	}
	if len(sum.DataPoints) != 1 || sum.DataPoints[0].Value != 1 {
		t.Errorf("compile.total data points %+v, want a single count of 1", sum.DataPoints)
	}
	dp := sum.DataPoints[0]
	if v, _ := dp.Attributes.Value(attribute.Key("structure")); v.AsString() != "SOAP" {
		t.Errorf("structure attribute %q, want SOAP", v.AsString())
	}
	if v, _ := dp.Attributes.Value(attribute.Key("format")); v.AsString() != "paragraph" {
		t.Errorf("format attribute %q, want paragraph", v.AsString())
	}

	bytesMetric, ok := findMetric(rm, "notekit.compile.bytes")
	if !ok {
		t.Fatal("notekit.compile.bytes not collected")
	}
	hist, ok := bytesMetric.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatalf("compile.bytes data is %T, want Histogram[int64]", bytesMetric.Data)
	}
	if len(hist.DataPoints) != 1 || hist.DataPoints[0].Sum != 1234 {
		t.Errorf("compile.bytes data points %+v, want one recording of 1234", hist.DataPoints)
	}

	if _, ok := findMetric(rm, "notekit.compile.duration"); !ok {
		t.Error("notekit.compile.duration not collected")
	}
}

func TestRecordRender(t *testing.T) {
	t.Parallel()

	m, reader := newTestMetrics(t)
	m.RecordRender(context.Background(), true, 0.001, 512)
	m.RecordRender(context.Background(), false, 0.001, 256)

	rm := collect(t, reader)

	total, ok := findMetric(rm, "notekit.render.total")
	if !ok {
		t.Fatal("notekit.render.total not collected")
	}
	sum, ok := total.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("render.total data is %T, want Sum[int64]", total.Data)
	}
	// One data point per letterhead attribute value.
	if len(sum.DataPoints) != 2 {
		t.Fatalf("render.total has %d data points, want 2", len(sum.DataPoints))
	}
	seen := map[string]int64{}
	for _, dp := range sum.DataPoints {
		v, _ := dp.Attributes.Value(attribute.Key("letterhead"))
		seen[v.AsString()] = dp.Value
	}
	if seen["true"] != 1 || seen["false"] != 1 {
		t.Errorf("render counts by letterhead = %v, want one each", seen)
	}
}

func TestDefaultMetrics_SharedInstance(t *testing.T) {
	t.Parallel()

	if observe.DefaultMetrics() != observe.DefaultMetrics() {
		t.Error("DefaultMetrics should return the same instance")
	}
}
