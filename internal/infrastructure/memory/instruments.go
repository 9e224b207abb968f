// Package memory implements the domain provider interfaces with in-memory
// collections behind a simulated network boundary. Each provider owns its
// collection exclusively: mutations are serialized through the provider's
// operation entry points, applied before the corresponding event is
// published, and every value handed out is a copy.
package memory

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer        = otel.Tracer("bolso/memory")
	meter         = otel.Meter("bolso/memory")
	opTotal, _    = meter.Int64Counter("provider.op.total", metric.WithDescription("Provider operations by provider, op and status"))
	eventTotal, _ = meter.Int64Counter("provider.event.total", metric.WithDescription("Mutation events published by provider"))
)

// finish records the outcome of one provider operation on its span and the
// shared counter, and passes err through unchanged.
func finish(ctx context.Context, span trace.Span, provider, op string, err error) error {
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	opTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("op", op),
		attribute.String("status", status),
	))
	return err
}

// published counts one mutation event on the shared counter.
func published(ctx context.Context, provider string, op string) {
	eventTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("op", op),
	))
}
