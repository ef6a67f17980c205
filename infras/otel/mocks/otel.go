// Package mocks provides an otel.Otel whose spans record nothing.
package mocks

import (
	"hotel/infras/otel"

	"go.opentelemetry.io/otel/trace/noop"
)

func NewOtel() otel.Otel {
	return otel.Wrap(noop.NewTracerProvider())
}
