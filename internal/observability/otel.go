// Package observability provides OpenTelemetry integration for
// distributed tracing.
//
// Tracing is off by default. Setting an OTLP/HTTP collector endpoint
// (OTLP_ENDPOINT, host:port form) turns it on; outbound Twitter API
// calls are then exported as spans through the instrumented HTTP
// transport.
//
// # Configuration
//
// Environment variables:
//   - OTLP_ENDPOINT: collector endpoint (e.g. localhost:4318). Empty
//     disables tracing entirely.
//
// The exporter speaks OTLP over plain HTTP, which fits the usual
// sidecar or localhost collector deployment. Remote TLS collectors are
// out of scope.
//
// # Failure Mode
//
// Tracing is never load-bearing: if the exporter cannot be created the
// server logs a warning and runs without tracing. Export failures after
// startup are dropped silently by the batch processor.
package observability

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config for trace export.
type Config struct {
	// Endpoint is the OTLP/HTTP collector endpoint (host:port). Empty
	// disables tracing.
	Endpoint string
	// ServiceName is the service name attached to exported spans.
	ServiceName string
	// ServiceVersion is the service version resource attribute.
	ServiceVersion string
}

// Setup wires a global tracer provider exporting to the configured
// OTLP collector. It returns a shutdown function that flushes pending
// spans; the function is always safe to call.
//
// With an empty Endpoint, or when the exporter cannot be created,
// tracing stays disabled and the returned shutdown is a no-op. Setup
// never fails the caller over a telemetry problem.
func Setup(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	if cfg.Endpoint == "" {
		slog.Debug("tracing disabled, no OTLP endpoint configured")
		return noop, nil
	}

	// The SDK's default resource detector reads these, so the service
	// identity lands on every span without hand-building a resource.
	if cfg.ServiceName != "" {
		_ = os.Setenv("OTEL_SERVICE_NAME", cfg.ServiceName)
	}
	if cfg.ServiceVersion != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "service.version="+cfg.ServiceVersion)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		slog.Warn("failed to create trace exporter, tracing disabled", "error", err)
		return noop, nil
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)

	slog.Debug("tracing enabled",
		"endpoint", cfg.Endpoint,
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)

	return provider.Shutdown, nil
}
