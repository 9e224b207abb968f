// Package telemetry wires up the OpenTelemetry pipeline behind the provider
// instruments: a Prometheus exporter with an HTTP scrape endpoint for the
// operation/event counters, and an optional OTLP gRPC exporter for the
// per-operation spans. Either half can be disabled independently.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

type Config struct {
	ServiceName string
	Environment string

	// OTLPEndpoint is the gRPC trace collector address. Empty disables
	// trace export; spans become no-ops through the default provider.
	OTLPEndpoint string

	// MetricsPort serves the Prometheus endpoint on :port/metrics. Empty
	// disables the endpoint and the meter provider with it.
	MetricsPort string
}

// Init configures the global meter and tracer providers from cfg and returns
// a shutdown function that must be called on application exit. With both
// halves disabled it is a no-op that still returns a usable shutdown.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	var shutdownFuncs []func(context.Context) error

	shutdown = func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("telemetry shutdown errors: %v", errs)
		}
		return nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return shutdown, fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.MetricsPort != "" {
		stop, err := setupMetrics(res, cfg.MetricsPort)
		if err != nil {
			return shutdown, err
		}
		shutdownFuncs = append(shutdownFuncs, stop)
	}

	if cfg.OTLPEndpoint != "" {
		stop, err := setupTraces(ctx, res, cfg.OTLPEndpoint)
		if err != nil {
			return shutdown, err
		}
		shutdownFuncs = append(shutdownFuncs, stop)
	}

	log.Printf("Telemetry initialized (metrics=:%s, traces=%s)", cfg.MetricsPort, cfg.OTLPEndpoint)
	return shutdown, nil
}

// setupMetrics registers the Prometheus exporter as the global meter provider
// and serves the scrape endpoint in the background.
func setupMetrics(res *resource.Resource, port string) (func(context.Context) error, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Metrics server listening on :%s/metrics", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Metrics server error: %v", err)
		}
	}()

	return func(ctx context.Context) error {
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		return provider.Shutdown(ctx)
	}, nil
}

// setupTraces registers an OTLP gRPC exporter as the global tracer provider
// with W3C context propagation.
func setupTraces(ctx context.Context, res *resource.Resource, endpoint string) (func(context.Context) error, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter,
			sdktrace.WithBatchTimeout(5*time.Second),
		),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return provider.Shutdown, nil
}
