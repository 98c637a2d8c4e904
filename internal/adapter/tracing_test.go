package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStageSpansNestUnderRunSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	ctx, run := StartRunSpan(context.Background(), "run-1", "mutscore", "/tmp/cli_32_fixed")
	_, stage := StartStageSpan(ctx, "pit", "setup")
	stage.End()
	run.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "tool.setup", spans[0].Name())
	assert.Equal(t, "run", spans[1].Name())
	assert.Equal(t, spans[1].SpanContext().SpanID(), spans[0].Parent().SpanID())
	assert.Contains(t, spans[0].Attributes(), attribute.String("tool.name", "pit"))
	assert.Contains(t, spans[1].Attributes(), attribute.String("run.action", "mutscore"))
}
