// Package tracing wraps OpenTelemetry span creation for the solver, wiring
// the orchestrator's Solve call and the pricer's on_price calls into
// whatever trace backend is configured.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// Config controls whether and where traces are exported.
type Config struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
	Version     string
	SampleRate  float64
}

// Provider wraps a TracerProvider; the zero-value-ish disabled case resolves
// to the global no-op tracer so callers never need to nil-check it.
type Provider struct {
	tp     *sdktrace.TracerProvider
	tracer trace.Tracer
}

var global *Provider

// Init builds a Provider from cfg. When cfg.Enabled is false it returns a
// no-op provider so instrumentation calls are always safe to make.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		p := &Provider{tracer: otel.Tracer(cfg.ServiceName)}
		global = p
		return p, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
	)
	if err != nil {
		return nil, err
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	p := &Provider{tp: tp, tracer: tp.Tracer(cfg.ServiceName)}
	global = p
	return p, nil
}

// Shutdown flushes and stops the exporter, a no-op for the disabled provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tp != nil {
		return p.tp.Shutdown(ctx)
	}
	return nil
}

// Tracer returns the provider's tracer.
func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Get returns the global Provider, falling back to a bare no-op tracer if
// Init was never called.
func Get() *Provider {
	if global == nil {
		return &Provider{tracer: otel.Tracer("vrptw-solver")}
	}
	return global
}

// StartSolveSpan starts the top-level span around one orchestrator.Solve call.
func StartSolveSpan(ctx context.Context, instanceName string) (context.Context, trace.Span) {
	return Get().tracer.Start(ctx, "solve",
		trace.WithAttributes(attribute.String("instance.name", instanceName)))
}

// StartPriceSpan starts a span around one on_price invocation.
func StartPriceSpan(ctx context.Context, nodeID int, mode string) (context.Context, trace.Span) {
	return Get().tracer.Start(ctx, "on_price",
		trace.WithAttributes(
			attribute.Int("bnb.node_id", nodeID),
			attribute.String("pricer.mode", mode),
		))
}

// SetError records err on the current span and marks it failed.
func SetError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes annotates the current span.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}
