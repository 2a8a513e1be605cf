package telemetry

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestConfigureHoneycombEnv(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("PARLEY_HONEYCOMB_API_KEY", "")
	t.Setenv("PARLEY_HONEYCOMB_DATASET", "")

	assert.False(t, ConfigureHoneycombEnv())

	t.Setenv("PARLEY_HONEYCOMB_API_KEY", "key")
	assert.True(t, ConfigureHoneycombEnv())
	assert.Equal(t, "https://api.honeycomb.io", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	assert.Equal(t, "x-honeycomb-team=key,x-honeycomb-dataset=parley", os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"))
}

func TestConfigureKeepsExplicitEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")
	t.Setenv("PARLEY_HONEYCOMB_API_KEY", "key")
	t.Setenv("PARLEY_HONEYCOMB_DATASET", "chat")

	assert.True(t, ConfigureHoneycombEnv())
	assert.Equal(t, "http://localhost:4318", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	assert.Contains(t, os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"), "x-honeycomb-dataset=chat")
}

func TestTracerUsesGlobalProvider(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := Tracer("client").Start(context.Background(), "client.layout")
	span.End()

	ended := rec.Ended()
	if assert.Len(t, ended, 1) {
		assert.Equal(t, "client.layout", ended[0].Name())
		assert.Equal(t, "parley/client", ended[0].InstrumentationScope().Name)
	}
}

func TestNoopTracer(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "ignored")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
