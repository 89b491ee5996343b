package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/melba-ui/melba/pkg/web"
)

// Default tracer name for the toast bridge.
const defaultTracerName = "melba"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "melba").
	TracerName string

	// Filter determines which frames to trace.
	// Return true to trace the frame, false to skip.
	// If nil, all frames are traced.
	Filter func(ev web.ClientEvent) bool

	// AttributeExtractor extracts custom attributes per frame.
	// Called for each traced frame.
	AttributeExtractor func(ev web.ClientEvent) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithEventFilter sets a filter function for frames.
func WithEventFilter(filter func(ev web.ClientEvent) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ev web.ClientEvent) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName: defaultTracerName,
	}
}

// OpenTelemetry creates bridge middleware that traces every inbound
// client frame.
//
// Each frame becomes a span named melba.<frame type> carrying the
// frame type, the target toast id, and the hover state when present.
// Dispatch errors are recorded on the span and set its status.
//
// Example:
//
//	handler := web.Handler(manager,
//	    web.WithMiddleware(
//	        middleware.OpenTelemetry(
//	            middleware.WithTracerName("my-app"),
//	            middleware.WithEventFilter(func(ev web.ClientEvent) bool {
//	                return ev.Type != "hover"
//	            }),
//	        ),
//	    ),
//	)
//
// The span rides the dispatch context, so downstream code (including
// toast action callbacks that accept a context) can pick it up with
// trace.SpanFromContext. The tracer uses the global OpenTelemetry
// tracer provider. Configure it in your main() before serving:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	    sdktrace.WithResource(resource.NewWithAttributes(
//	        semconv.SchemaURL,
//	        semconv.ServiceName("my-app"),
//	    )),
//	)
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) web.Middleware {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	// Resolve tracer from global provider
	config.tracer = otel.Tracer(config.TracerName)

	return func(next web.EventHandler) web.EventHandler {
		return func(ctx context.Context, ev web.ClientEvent) error {
			if config.Filter != nil && !config.Filter(ev) {
				return next(ctx, ev)
			}

			attrs := []attribute.KeyValue{
				attribute.String("melba.frame.type", ev.Type),
			}
			if ev.ID != "" {
				attrs = append(attrs, attribute.String("melba.toast.id", ev.ID))
			}
			if ev.State != "" {
				attrs = append(attrs, attribute.String("melba.hover.state", ev.State))
			}
			if config.AttributeExtractor != nil {
				attrs = append(attrs, config.AttributeExtractor(ev)...)
			}

			ctx, span := config.tracer.Start(
				ctx,
				"melba."+ev.Type,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
				trace.WithTimestamp(time.Now()),
			)
			defer span.End()

			err := next(ctx, ev)

			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}

			return err
		}
	}
}
