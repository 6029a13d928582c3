package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ano333333/llm-time-manager/internal/app/observability/metrics"
	"github.com/ano333333/llm-time-manager/internal/app/observability/tracer"
	"github.com/ano333333/llm-time-manager/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(tracer.Options{
		ServiceName:  cfg.ServiceName,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("service", cfg.ServiceName),
		zap.String("metrics_addr", cfg.MetricsAddr),
		zap.Bool("otlp_traces", cfg.OTLPEndpoint != ""))

	return otelShutdown, nil
}

// NewMetricsServer returns the /metrics server for addr, or nil when addr is
// empty.
func NewMetricsServer(addr string, logger *zap.Logger) *http.Server {
	srv := tracer.NewMetricsServer(addr)
	if srv != nil {
		logger.Info("Prometheus metrics server configured", zap.String("addr", addr))
	}
	return srv
}

// ShutdownObservability flushes the providers, giving them ShutdownTimeout.
func ShutdownObservability(shutdown ObservabilityShutdownFunc) error {
	return shutdownWithin(ShutdownTimeout, shutdown)
}

func shutdownWithin(d time.Duration, shutdown ObservabilityShutdownFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return shutdown(ctx)
}
