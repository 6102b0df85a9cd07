package middleware

import (
	"context"
	"errors"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/felixgeelhaar/arri-go/protocol"
	"github.com/felixgeelhaar/arri-go/schema"
)

const (
	instrumentationName = "github.com/felixgeelhaar/arri-go"
)

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*otelConfig)

type otelConfig struct {
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	serviceName    string
	skipTypes      map[reflect.Type]bool
}

// WithTracerProvider sets a custom tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *otelConfig) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom meter provider.
func WithMeterProvider(mp metric.MeterProvider) OTelOption {
	return func(c *otelConfig) {
		c.meterProvider = mp
	}
}

// WithOTelServiceName sets the service name for telemetry.
func WithOTelServiceName(name string) OTelOption {
	return func(c *otelConfig) {
		c.serviceName = name
	}
}

// WithOTelSkipTypes specifies types whose exports are not traced.
func WithOTelSkipTypes(types ...reflect.Type) OTelOption {
	return func(c *otelConfig) {
		for _, t := range types {
			c.skipTypes[t] = true
		}
	}
}

// OTel returns middleware that adds OpenTelemetry tracing and metrics.
// It creates a span for each export and records export counts and latency.
func OTel(opts ...OTelOption) Middleware {
	cfg := &otelConfig{
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		serviceName:    "arri",
		skipTypes:      make(map[reflect.Type]bool),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	tracer := cfg.tracerProvider.Tracer(
		instrumentationName,
		trace.WithInstrumentationVersion(protocol.SchemaVersion),
	)

	meter := cfg.meterProvider.Meter(
		instrumentationName,
		metric.WithInstrumentationVersion(protocol.SchemaVersion),
	)

	exportCounter, _ := meter.Int64Counter(
		"arri.exports",
		metric.WithDescription("Total number of schema exports"),
		metric.WithUnit("{export}"),
	)

	exportDuration, _ := meter.Float64Histogram(
		"arri.export.duration",
		metric.WithDescription("Duration of schema exports"),
		metric.WithUnit("ms"),
	)

	errorCounter, _ := meter.Int64Counter(
		"arri.export.errors",
		metric.WithDescription("Total number of failed schema exports"),
		metric.WithUnit("{error}"),
	)

	return func(next ExportFunc) ExportFunc {
		return func(ctx context.Context, t reflect.Type) (schema.Node, error) {
			if cfg.skipTypes[t] {
				return next(ctx, t)
			}

			ctx, span := tracer.Start(ctx, "arri.export",
				trace.WithSpanKind(trace.SpanKindInternal),
				trace.WithAttributes(
					attribute.String("arri.type", typeName(t)),
					attribute.String("service.name", cfg.serviceName),
				),
			)
			defer span.End()

			if reqID := RequestIDFromContext(ctx); reqID != "" {
				span.SetAttributes(attribute.String("arri.request_id", reqID))
			}

			startTime := time.Now()

			attrs := []attribute.KeyValue{
				attribute.String("arri.type", typeName(t)),
				attribute.String("service.name", cfg.serviceName),
			}

			exportCounter.Add(ctx, 1, metric.WithAttributes(attrs...))

			n, err := next(ctx, t)

			duration := float64(time.Since(startTime).Milliseconds())
			exportDuration.Record(ctx, duration, metric.WithAttributes(attrs...))

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())

				var arriErr *protocol.Error
				if errors.As(err, &arriErr) {
					span.SetAttributes(attribute.String("arri.error_kind", string(arriErr.Kind)))
					errorCounter.Add(ctx, 1, metric.WithAttributes(
						append(attrs, attribute.String("arri.error_kind", string(arriErr.Kind)))...,
					))
				} else {
					errorCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
				}
			} else {
				span.SetAttributes(attribute.String("arri.node", schema.Form(n)))
				span.SetStatus(codes.Ok, "")
			}

			return n, err
		}
	}
}

// SpanFromContext returns the current span from context.
// Returns a no-op span if no span is present.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// AddSpanEvent adds an event to the current span.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
