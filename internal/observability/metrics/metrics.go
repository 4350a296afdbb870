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

// Metrics exposes application-level instruments.
type Metrics struct {
	invoicesSubmitted    metric.Int64Counter
	approvalTransitions  metric.Int64Counter
	notificationsEmitted metric.Int64Counter
	archiveSaves         metric.Int64Counter
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

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "billingdesk"
	}
	meter := provider.Meter(name)

	invoicesSubmitted, err := meter.Int64Counter("billingdesk_invoices_submitted_total")
	if err != nil {
		return nil, err
	}
	approvalTransitions, err := meter.Int64Counter("billingdesk_approval_transitions_total")
	if err != nil {
		return nil, err
	}
	notificationsEmitted, err := meter.Int64Counter("billingdesk_notifications_emitted_total")
	if err != nil {
		return nil, err
	}
	archiveSaves, err := meter.Int64Counter("billingdesk_archive_saves_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		invoicesSubmitted:    invoicesSubmitted,
		approvalTransitions:  approvalTransitions,
		notificationsEmitted: notificationsEmitted,
		archiveSaves:         archiveSaves,
	}, nil
}

func (m *Metrics) RecordInvoiceSubmitted(ctx context.Context, authorRole string) {
	if m == nil {
		return
	}
	m.invoicesSubmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("author_role", authorRole),
	))
}

func (m *Metrics) RecordApprovalTransition(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.approvalTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordNotificationEmitted(ctx context.Context, role string) {
	if m == nil {
		return
	}
	m.notificationsEmitted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("recipient_role", role),
	))
}

func (m *Metrics) RecordArchiveSave(ctx context.Context) {
	if m == nil {
		return
	}
	m.archiveSaves.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
