package otel

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Scope is one span. Defer TraceIfError inside a closure over the named error so it sees the returned value.
type Scope interface {
	End()
	TraceError(err error)
	TraceIfError(err error)
	AddEvent(name string)
	SetAttribute(key string, value any)
	SetAttributes(attributes map[string]any)
}

type span struct {
	trace.Span
}

func NewScope(s trace.Span) Scope {
	return span{Span: s}
}

func (s span) End() {
	s.Span.End()
}

func (s span) TraceError(err error) {
	s.RecordError(err)
	s.SetStatus(codes.Error, err.Error())
}

func (s span) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s span) AddEvent(name string) {
	s.Span.AddEvent(name)
}

func (s span) SetAttribute(key string, value any) {
	s.Span.SetAttributes(Attribute(key, value))
}

func (s span) SetAttributes(attributes map[string]any) {
	kvs := make([]attribute.KeyValue, 0, len(attributes))
	for key, value := range attributes {
		kvs = append(kvs, Attribute(key, value))
	}

	s.Span.SetAttributes(kvs...)
}

// Attribute maps common Go values onto typed span attributes, falling back to their string form.
func Attribute(key string, value any) attribute.KeyValue {
	switch typed := value.(type) {
	case bool:
		return attribute.Bool(key, typed)
	case string:
		return attribute.String(key, typed)
	case int:
		return attribute.Int(key, typed)
	case int64:
		return attribute.Int64(key, typed)
	case float64:
		return attribute.Float64(key, typed)
	case []string:
		return attribute.StringSlice(key, typed)
	case time.Time:
		return attribute.String(key, typed.Format(time.RFC3339))
	case fmt.Stringer:
		return attribute.String(key, typed.String())
	default:
		return attribute.String(key, fmt.Sprintf("%v", typed))
	}
}
