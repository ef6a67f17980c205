package otel

import (
	"context"
	"fmt"
	"hotel/config"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials/insecure"
)

// Otel opens spans. Shutdown flushes whatever the exporter still buffers.
type Otel interface {
	NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope)
	Shutdown(ctx context.Context) error
}

type provider struct {
	tracers  trace.TracerProvider
	shutdown func(context.Context) error
}

// Wrap adapts any tracer provider, such as otel's noop provider in tests.
func Wrap(tracers trace.TracerProvider) Otel {
	return &provider{
		tracers:  tracers,
		shutdown: func(context.Context) error { return nil },
	}
}

func (p *provider) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, Scope) {
	ctx, span := p.tracers.Tracer(scopeName).Start(ctx, spanName)

	return ctx, NewScope(span)
}

func (p *provider) Shutdown(ctx context.Context) error {
	if err := p.shutdown(ctx); err != nil {
		return fmt.Errorf("failed to flush spans: %w", err)
	}

	return nil
}

// New builds the SDK provider for the hotel service. Without OTEL_ENDPOINT spans are sampled but dropped.
func New(cfg *config.Config) Otel {
	options := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(cfg.App.Name),
			semconv.DeploymentEnvironmentKey.String(cfg.Server.Env),
		)),
	}

	if endpoint := cfg.External.Otel.Endpoint; endpoint != "" {
		exporter, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
		if err != nil {
			log.Fatal().Err(err).Str("endpoint", endpoint).Msg("failed to create OTLP exporter")
		}

		options = append(options, sdktrace.WithBatcher(exporter))
		log.Info().Str("endpoint", endpoint).Msg("exporting traces")
	} else {
		log.Warn().Msg("no OTLP endpoint configured, spans are not exported")
	}

	tracers := sdktrace.NewTracerProvider(options...)

	otel.SetTracerProvider(tracers)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return &provider{
		tracers:  tracers,
		shutdown: tracers.Shutdown,
	}
}
