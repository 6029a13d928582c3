package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long in-flight requests may take to finish.
const ShutdownTimeout = 5 * time.Second

// GracefulShutdown waits for ctx to be cancelled and then shuts every
// server down, giving in-flight requests ShutdownTimeout to finish.
func GracefulShutdown(ctx context.Context, logger *zap.Logger, servers ...*http.Server) error {
	<-ctx.Done()
	logger.Info("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs error
	for _, srv := range servers {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
			errs = errors.Join(errs, err)
		}
	}

	logger.Info("Server exiting")
	return errs
}
