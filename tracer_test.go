package introspectmiddleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer(t *testing.T) {
	tracer := &NoopTracer{}

	span := tracer.StartSpan("test-operation")
	assert.NotNil(t, span)

	// The methods must not panic.
	span.SetTag("key", "value")
	span.LogFields("event", "something happened")
	span.Finish()
}

func TestOpenTelemetryTracer(t *testing.T) {
	tracer := NewOpenTelemetryTracer(noop.NewTracerProvider().Tracer("test"))

	span := tracer.StartSpan("oauth2.introspection.check")
	assert.NotNil(t, span)

	span.SetTag("outcome", "allowed")
	span.LogFields("event", "checked")
	span.Finish()
}
