package otel_test

import (
	"context"
	"errors"
	"hotel/infras/otel"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestScopeRecordsAttributesAndErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	ot := otel.Wrap(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	_, scope := ot.NewScope(context.Background(), "service", "service.Booking.Create")
	scope.SetAttributes(map[string]any{
		"booking.nights": 3,
		"booking.total":  447.0,
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("room not found"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "service.Booking.Create", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "room not found", spans[0].Status().Description)
	assert.Contains(t, spans[0].Attributes(), attribute.Int("booking.nights", 3))
	assert.Contains(t, spans[0].Attributes(), attribute.Float64("booking.total", 447))
	assert.Len(t, spans[0].Events(), 1)
}

func TestAttribute(t *testing.T) {
	checkIn := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, attribute.String("check_in", "2026-03-01T00:00:00Z"), otel.Attribute("check_in", checkIn))
	assert.Equal(t, attribute.Int64("bytes", 2048), otel.Attribute("bytes", int64(2048)))
	assert.Equal(t, attribute.String("status", "[paid]"), otel.Attribute("status", []any{"paid"}))
}

func TestWrapShutdownIsNoop(t *testing.T) {
	assert.NoError(t, otel.Wrap(sdktrace.NewTracerProvider()).Shutdown(context.Background()))
}
