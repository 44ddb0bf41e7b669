package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// ReminderMetrics exposes the reminder pipeline instruments.
type ReminderMetrics struct {
	dispatched metric.Int64Counter
	denied     metric.Int64Counter
	failures   metric.Int64Counter
	cycles     metric.Int64Counter
	stale      metric.Int64Gauge
}

// NewReminderMetrics configures the reminder counters.
func NewReminderMetrics(cfg Config, provider metric.MeterProvider) (*ReminderMetrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "vetsync"
	}
	meter := provider.Meter(name)

	dispatched, err := meter.Int64Counter("vetsync_reminders_dispatched_total")
	if err != nil {
		return nil, err
	}
	denied, err := meter.Int64Counter("vetsync_reminders_denied_total")
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("vetsync_reminder_failures_total")
	if err != nil {
		return nil, err
	}
	cycles, err := meter.Int64Counter("vetsync_reminder_cycles_total")
	if err != nil {
		return nil, err
	}
	stale, err := meter.Int64Gauge("vetsync_reminders_stale")
	if err != nil {
		return nil, err
	}

	return &ReminderMetrics{
		dispatched: dispatched,
		denied:     denied,
		failures:   failures,
		cycles:     cycles,
		stale:      stale,
	}, nil
}

func (m *ReminderMetrics) IncDispatched(ctx context.Context) {
	if m == nil {
		return
	}
	m.dispatched.Add(ctx, 1)
}

func (m *ReminderMetrics) IncDenied(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.denied.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *ReminderMetrics) IncFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1)
}

// RecordStale records how many scheduled reminders a clinic has whose due
// date has already passed without dispatch.
func (m *ReminderMetrics) RecordStale(ctx context.Context, clinicID string, count int64) {
	if m == nil {
		return
	}
	m.stale.Record(ctx, count, metric.WithAttributes(attribute.String("clinic_id", clinicID)))
}

func (m *ReminderMetrics) ObserveCycle(ctx context.Context, dispatched, failures int) {
	if m == nil {
		return
	}
	m.cycles.Add(ctx, 1, metric.WithAttributes(
		attribute.Int("dispatched", dispatched),
		attribute.Int("failures", failures),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch protocol {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp metrics protocol %q", protocol)
	}
}
