// Package service is the stateless facade the surrounding application
// invokes per request. It wraps the pure compile/render transforms with
// structured logging, OpenTelemetry metrics and spans, and a bounded
// concurrent batch renderer.
//
// The facade adds no semantics: every method delegates to the same pure
// functions a caller could use directly, so output remains deterministic
// and byte-identical for identical input. There is no connection pooling,
// locking, or transactional state — each call stands alone.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/emberhealth/notekit/pkg/observe"
	"github.com/emberhealth/notekit/pkg/catalog"
	"github.com/emberhealth/notekit/pkg/compiler"
	"github.com/emberhealth/notekit/pkg/notes"
	"github.com/emberhealth/notekit/pkg/render"
)

// defaultBatchLimit bounds RenderBatch concurrency. Rendering is pure CPU
// work, so a small fixed bound keeps batch calls from starving request
// handlers.
const defaultBatchLimit = 4

// Option is a functional option for [New].
type Option func(*Service)

// WithLogger sets the logger used for per-call debug logging. Defaults to
// [slog.Default].
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMeterProvider sets the OTel meter provider backing the service's
// metric instruments. Defaults to the global provider. Tests pass a
// manual-reader provider here to avoid cross-test pollution.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) { s.meterProvider = mp }
}

// WithBatchLimit caps the number of documents rendered concurrently by
// [Service.RenderBatch]. Default: 4.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// Service exposes the note-pipeline transforms with observability
// attached. Safe for concurrent use — it holds only read-only state.
type Service struct {
	catalog       *catalog.Catalog
	logger        *slog.Logger
	metrics       *observe.Metrics
	meterProvider metric.MeterProvider
	batchLimit    int
}

// New constructs a [Service] over the given template catalog. A nil
// catalog is replaced with the built-in [catalog.Default].
func New(cat *catalog.Catalog, opts ...Option) (*Service, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Service{
		catalog:    cat,
		logger:     slog.Default(),
		batchLimit: defaultBatchLimit,
	}
	for _, o := range opts {
		o(s)
	}

	if s.meterProvider != nil {
		m, err := observe.NewMetrics(s.meterProvider)
		if err != nil {
			return nil, fmt.Errorf("service: create metrics: %w", err)
		}
		s.metrics = m
	} else {
		s.metrics = observe.DefaultMetrics()
	}

	return s, nil
}

// Catalog returns the template catalog this service was built over.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// CompileInstructions compiles input into the instruction document for the
// language model. Pure and total — see [compiler.Compile].
func (s *Service) CompileInstructions(ctx context.Context, input notes.CompilationInput) string {
	ctx, span := observe.StartSpan(ctx, "notekit.compile")
	defer span.End()
	span.SetAttributes(
		attribute.String("structure", string(input.Structure)),
		attribute.String("format", string(input.OutputFormat)),
	)

	start := time.Now()
	out := compiler.Compile(input)
	elapsed := time.Since(start)

	s.metrics.RecordCompilation(ctx, string(input.Structure), string(input.OutputFormat), elapsed.Seconds(), len(out))
	s.logger.DebugContext(ctx, "compiled instructions",
		"structure", input.Structure,
		"format", input.OutputFormat,
		"macros", len(input.MacroPhrases),
		"vocabulary", len(input.CustomVocabulary),
		"bytes", len(out),
	)
	return out
}

// CompileForTemplate looks up templateID in the catalog, injects its
// instruction text into input, and compiles. Returns an error only when
// the template ID is unknown.
func (s *Service) CompileForTemplate(ctx context.Context, templateID string, input notes.CompilationInput) (string, error) {
	tmpl, ok := s.catalog.ByID(templateID)
	if !ok {
		return "", fmt.Errorf("service: unknown template %q", templateID)
	}
	input.TemplateInstructions = tmpl.InstructionText
	return s.CompileInstructions(ctx, input), nil
}

// RenderDocument renders the model's formatted note text to an HTML
// fragment. Pure and total — see [render.Document].
func (s *Service) RenderDocument(ctx context.Context, content string, opts render.Options) string {
	ctx, span := observe.StartSpan(ctx, "notekit.render")
	defer span.End()

	letterhead := strings.Contains(content, "[HEADER_START]")
	start := time.Now()
	out := render.Document(content, opts)
	elapsed := time.Since(start)

	s.metrics.RecordRender(ctx, letterhead, elapsed.Seconds(), len(out))
	s.logger.DebugContext(ctx, "rendered document",
		"letterhead", letterhead,
		"in_bytes", len(content),
		"out_bytes", len(out),
	)
	return out
}

// RenderBatch renders several documents concurrently with bounded
// parallelism and returns the fragments in input order. The only error
// source is context cancellation — rendering itself never fails.
func (s *Service) RenderBatch(ctx context.Context, contents []string, opts render.Options) ([]string, error) {
	out := make([]string, len(contents))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.batchLimit)

	for i, content := range contents {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("service: render batch: %w", err)
			}
			out[i] = s.RenderDocument(egCtx, content, opts)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SampleNote returns the canonical preview note for the structure/format
// pair. See [compiler.Sample].
func (s *Service) SampleNote(structure notes.Structure, format notes.OutputFormat) string {
	return compiler.Sample(structure, format)
}
