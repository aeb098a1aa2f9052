package loader

import (
	"context"

	"github.com/gabapcia/transferscope/internal/pkg/logger"
	"github.com/gabapcia/transferscope/internal/transfer"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type metrics struct {
	loads      metric.Int64Counter
	classified metric.Int64Counter
	discarded  metric.Int64Counter
	batches    metric.Int64Counter
}

func newMetrics(meter metric.Meter) *metrics {
	m, err := buildMetrics(meter)
	if err != nil {
		logger.Warn(context.Background(), "falling back to no-op loader metrics", "error", err)
		m, _ = buildMetrics(noop.NewMeterProvider().Meter(instrumentationName))
	}
	return m
}

func buildMetrics(meter metric.Meter) (*metrics, error) {
	loads, err := meter.Int64Counter("transferscope.loads",
		metric.WithDescription("Completed wallet loads by status."))
	if err != nil {
		return nil, err
	}

	classified, err := meter.Int64Counter("transferscope.transfers.classified",
		metric.WithDescription("Transfers appended to a store, by kind."))
	if err != nil {
		return nil, err
	}

	discarded, err := meter.Int64Counter("transferscope.records.discarded",
		metric.WithDescription("Stream records that could not be classified."))
	if err != nil {
		return nil, err
	}

	batches, err := meter.Int64Counter("transferscope.batches",
		metric.WithDescription("Stream batches classified."))
	if err != nil {
		return nil, err
	}

	return &metrics{
		loads:      loads,
		classified: classified,
		discarded:  discarded,
		batches:    batches,
	}, nil
}

func (m *metrics) recordLoad(ctx context.Context, status string) {
	m.loads.Add(ctx, 1, metric.WithAttributes(attribute.String("load.status", status)))
}

func (m *metrics) recordBatch(ctx context.Context, stats transfer.Stats) {
	m.batches.Add(ctx, 1)
	m.classified.Add(ctx, int64(stats.Native), metric.WithAttributes(attribute.String("transfer.kind", "native")))
	m.classified.Add(ctx, int64(stats.ERC20), metric.WithAttributes(attribute.String("transfer.kind", "erc20")))
	m.classified.Add(ctx, int64(stats.ERC721), metric.WithAttributes(attribute.String("transfer.kind", "erc721")))
	m.discarded.Add(ctx, int64(stats.Discarded))
}
