package database

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ano333333/llm-time-manager/internal/app/observability/metrics"
)

// Observe records the duration of query op started at start, and counts it
// as failed when err is set. Use it deferred:
//
//	defer func() { database.Observe(ctx, "goals.list", start, err) }()
func Observe(ctx context.Context, op string, start time.Time, err error) {
	m := metrics.Get()
	attrs := metric.WithAttributes(attribute.String("query", op))
	m.DBQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		m.DBQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}
