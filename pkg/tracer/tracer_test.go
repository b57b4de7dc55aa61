package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/makjesusfreak-ai/taxiKafkaAWS/pkg/logger"
)

func TestAttributesConvertsTypes(t *testing.T) {
	attrs := Attributes(map[string]interface{}{
		"topic":     "taxi-trips",
		"partition": 3,
		"offset":    int64(42),
		"ratio":     0.5,
		"cached":    true,
		"other":     []int{1},
	})

	byKey := map[attribute.Key]attribute.Value{}
	for _, kv := range attrs {
		byKey[kv.Key] = kv.Value
	}
	assert.Equal(t, "taxi-trips", byKey["topic"].AsString())
	assert.Equal(t, int64(3), byKey["partition"].AsInt64())
	assert.Equal(t, int64(42), byKey["offset"].AsInt64())
	assert.Equal(t, 0.5, byKey["ratio"].AsFloat64())
	assert.True(t, byKey["cached"].AsBool())
	assert.Equal(t, "[1]", byKey["other"].AsString())
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	RecordError(span, nil)
	RecordError(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestCarrierRoundTrip(t *testing.T) {
	client := NewClient(Config{ServiceName: "test", AppEnv: "test"}, logger.NewNop())
	ctx, span := client.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	carrier := GetCarrier(ctx)
	require.Contains(t, carrier, "traceparent")

	restored := SetCarrierOnContext(context.Background(), carrier)
	_, child := client.Tracer("test").Start(restored, "receive")
	defer child.End()

	assert.Equal(t, span.SpanContext().TraceID(), child.SpanContext().TraceID())
}

func TestNoopTracer(t *testing.T) {
	_, span := Noop().Start(context.Background(), "op")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
