package otel_test

import (
	"errors"
	"testing"

	"hotel/infras/otel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type roomType string

func (r roomType) String() string { return "type:" + string(r) }

func TestAttribute(t *testing.T) {
	assert.Equal(t, attribute.Bool("available", true), otel.Attribute("available", true))
	assert.Equal(t, attribute.Int("guests", 2), otel.Attribute("guests", 2))
	assert.Equal(t, attribute.Int64("nights", 3), otel.Attribute("nights", int64(3)))
	assert.Equal(t, attribute.Float64("price", 180.5), otel.Attribute("price", 180.5))
	assert.Equal(t, attribute.StringSlice("amenities", []string{"wifi"}), otel.Attribute("amenities", []string{"wifi"}))
	assert.Equal(t, attribute.String("type", "type:suite"), otel.Attribute("type", roomType("suite")))
	assert.Equal(t, attribute.String("other", "[1 2]"), otel.Attribute("other", []int{1, 2}))
}

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "reserve")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{"room_id": "r1", "guests": 2})
	scope.AddEvent("priced")
	scope.TraceIfError(nil)
	scope.TraceError(errors.New("room not available"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	got := spans[0]
	assert.Equal(t, codes.Error, got.Status().Code)
	assert.Equal(t, "room not available", got.Status().Description)
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("room_id", "r1"),
		attribute.Int("guests", 2),
	}, got.Attributes())

	names := make([]string, 0, len(got.Events()))
	for _, event := range got.Events() {
		names = append(names, event.Name)
	}

	// RecordError adds an "exception" event
	assert.Equal(t, []string{"priced", "exception"}, names)
}

func cancelBooking(scope otel.Scope) (err error) {
	defer scope.End()
	defer scope.TraceIfError(&err)

	err = errors.New("booking already completed")

	return err
}

func TestScope_TraceIfErrorSeesLateAssignment(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(t.Context(), "cancel")

	require.Error(t, cancelBooking(otel.NewScope(span)))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "booking already completed", spans[0].Status().Description)
}
