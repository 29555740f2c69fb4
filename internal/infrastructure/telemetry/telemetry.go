// Package telemetry wires OpenTelemetry traces, metrics and logs, Pyroscope
// profiling, and GORM instrumentation for the asset console.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/assetops/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Providers holds every telemetry provider of the process
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup starts the providers enabled in cfg. Disabled providers are no-ops,
// so callers never check for nil.
func Setup(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Providers, error) {
	res, err := newResource(cfg.Telemetry.ServiceName, cfg.App.Version)
	if err != nil {
		return nil, err
	}

	p := &Providers{}
	if p.Tracer, err = NewTracerProvider(ctx, cfg.Telemetry, res, logger); err != nil {
		return nil, err
	}
	if p.Meter, err = NewMeterProvider(ctx, cfg.Telemetry, res, logger); err != nil {
		return nil, errors.Join(err, p.Tracer.Shutdown(ctx))
	}
	if p.Logs, err = NewLoggerProvider(ctx, cfg.Telemetry, res, logger); err != nil {
		return nil, errors.Join(err, p.Meter.Shutdown(ctx), p.Tracer.Shutdown(ctx))
	}
	if p.Profiler, err = NewProfiler(cfg.Profiling, cfg.Telemetry.ServiceName, logger); err != nil {
		return nil, errors.Join(err, p.Logs.Shutdown(ctx), p.Meter.Shutdown(ctx), p.Tracer.Shutdown(ctx))
	}
	if p.Profiler.IsEnabled() {
		p.Tracer.EnableSpanProfiles()
	}
	return p, nil
}

// LogCore returns the zap core that forwards entries at level and above to
// OpenTelemetry logs. It is a no-op core when logs are disabled.
func (p *Providers) LogCore(serviceName string, level zapcore.Level) zapcore.Core {
	return NewZapCore(p.Logs, serviceName, level)
}

// Shutdown flushes and stops every provider, in reverse start order
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Profiler.Stop(),
		p.Logs.Shutdown(ctx),
		p.Meter.Shutdown(ctx),
		p.Tracer.Shutdown(ctx),
	)
}

func newResource(serviceName, version string) (*resource.Resource, error) {
	if version == "" {
		version = "dev"
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry resource: %w", err)
	}
	return res, nil
}
