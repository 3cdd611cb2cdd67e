package metrics

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
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
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	quotesCreated     metric.Int64Counter
	sequenceConflicts metric.Int64Counter
	rateReads         metric.Int64Counter
	loginsDenied      metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
	if cfg.ExporterEndpoint != "" {
		opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.ExporterEndpoint))
	}
	exporter, err := otlpmetricgrpc.New(context.Background(), opts...)
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

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "aquarate"
	}
	meter := provider.Meter(name)

	quotesCreated, err := meter.Int64Counter("aquarate_quotes_created_total")
	if err != nil {
		return nil, err
	}
	sequenceConflicts, err := meter.Int64Counter("aquarate_quote_sequence_conflicts_total")
	if err != nil {
		return nil, err
	}
	rateReads, err := meter.Int64Counter("aquarate_rate_reads_total")
	if err != nil {
		return nil, err
	}
	loginsDenied, err := meter.Int64Counter("aquarate_logins_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		quotesCreated:     quotesCreated,
		sequenceConflicts: sequenceConflicts,
		rateReads:         rateReads,
		loginsDenied:      loginsDenied,
	}, nil
}

// RecordQuoteCreated increments quote creation counts.
func (m *Metrics) RecordQuoteCreated(ctx context.Context, state string) {
	if m == nil {
		return
	}
	m.quotesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("state", strings.ToUpper(strings.TrimSpace(state))),
	))
}

// RecordSequenceConflict increments ledger append conflict counts.
func (m *Metrics) RecordSequenceConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.sequenceConflicts.Add(ctx, 1)
}

// RecordRateRead increments base rate read counts.
func (m *Metrics) RecordRateRead(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.rateReads.Add(ctx, 1, metric.WithAttributes(
		attribute.String("source", source),
	))
}

// RecordLoginDenied increments rejected login counts.
func (m *Metrics) RecordLoginDenied(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.loginsDenied.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", strings.TrimSpace(reason)),
	))
}
