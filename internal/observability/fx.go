package observability

import (
	"go.uber.org/fx"

	"github.com/omarwahbi/VetSync-sub002/internal/config"
	"github.com/omarwahbi/VetSync-sub002/internal/observability/metrics"
	"github.com/omarwahbi/VetSync-sub002/internal/observability/tracing"
)

// Module wires tracing and metrics providers from application config.
var Module = fx.Module("observability",
	fx.Provide(
		newTracingConfig,
		newMetricsConfig,
		tracing.NewProvider,
		metrics.NewProvider,
		metrics.NewReminderMetrics,
		metrics.NewHTTPMetrics,
	),
)

func newTracingConfig(cfg config.Config) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.OtelEnabled,
		ServiceName:      cfg.AppName,
		ServiceVersion:   cfg.AppVersion,
		Environment:      cfg.Environment,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
	}
}

func newMetricsConfig(cfg config.Config) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.OtelEnabled,
		ExporterEndpoint: cfg.OtelExporterEndpoint,
		ExporterProtocol: cfg.OtelExporterProtocol,
		ServiceName:      cfg.AppName,
		Environment:      cfg.Environment,
	}
}
