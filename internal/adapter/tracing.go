package adapter

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "mutscore"

// StartRunSpan starts a span for one workflow action over a checkout.
func StartRunSpan(ctx context.Context, runID, action string, checkout string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.action", action),
			attribute.String("checkout.path", checkout),
		),
	)
}

// StartStageSpan starts a span for one lifecycle stage of a tool adapter.
func StartStageSpan(ctx context.Context, tool, stage string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "tool."+stage,
		trace.WithAttributes(
			attribute.String("tool.name", tool),
			attribute.String("tool.stage", stage),
		),
	)
}
