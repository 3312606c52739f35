package main

import (
	"context"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const (
	meterName     = "xlist/shell"
	unknownOpAttr = "unknown"
)

// sessionStats counts the executed and the failed commands by op.
type sessionStats struct {
	commands metric.Int64Counter
	failures metric.Int64Counter
}

func newSessionStats(mp metric.MeterProvider) (*sessionStats, error) {
	meter := mp.Meter(meterName)
	commands, err := meter.Int64Counter(
		"xlist.commands",
		metric.WithDescription(`The executed commands by op.`),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"xlist.command.failures",
		metric.WithDescription(`The failed commands by op.`),
	)
	if err != nil {
		return nil, err
	}
	return &sessionStats{
		commands: commands,
		failures: failures,
	}, nil
}

// record is a no-op if the metrics are disabled.
func (stats *sessionStats) record(ctx context.Context, op string, err error) {
	if stats == nil {
		return
	}
	if _, ok := commandArity[op]; !ok {
		op = unknownOpAttr
	}
	attrs := metric.WithAttributes(attribute.String("op", op))
	stats.commands.Add(ctx, 1, attrs)
	if err != nil {
		stats.failures.Add(ctx, 1, attrs)
	}
}

// newConsoleMeterProvider exports to w every interval. Shutdown flushes
// the last collection, so a run shorter than interval still exports once.
func newConsoleMeterProvider(w io.Writer, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, err
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(
		exporter,
		sdkmetric.WithInterval(interval),
	))), nil
}
