package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ano333333/llm-time-manager/internal/pkg/cache"
	"github.com/ano333333/llm-time-manager/internal/pkg/config"
	"github.com/ano333333/llm-time-manager/internal/pkg/logger"
	"github.com/ano333333/llm-time-manager/internal/routes"
	"github.com/ano333333/llm-time-manager/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	if err := logger.Init(cfg.LogLevel, zap.String("service", cfg.Observability.ServiceName)); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize observability
	otelShutdown, err := server.InitObservability(cfg.Observability, logger.Log)
	if err != nil {
		return err
	}
	defer func() {
		if err := server.ShutdownObservability(otelShutdown); err != nil {
			logger.Log.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	// Create server
	srv, err := server.New(ctx, cfg, logger.Log)
	if err != nil {
		return err
	}
	defer srv.Close()

	headers := cache.NewHeaderStore(cfg.HeaderStateTTL, cfg.HeaderStateTTL/2, logger.Log)

	router := server.SetupRouter(cfg.Observability.ServiceName, routes.Dependencies{
		Logger:   logger.Log,
		Headers:  headers,
		Location: cfg.Location,
		DB:       srv.DB(),
	})
	srv.SetRouter(router)

	httpServer := srv.HTTPServer()
	pprofServer := server.NewPprofServer(cfg.Observability.PprofAddr, logger.Log)
	metricsServer := server.NewMetricsServer(cfg.Observability.MetricsAddr, logger.Log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("Server starting", zap.String("port", cfg.ServerPort))
		return server.ListenAndServe(httpServer)
	})
	if pprofServer != nil {
		g.Go(func() error {
			return server.ListenAndServe(pprofServer)
		})
	}
	if metricsServer != nil {
		g.Go(func() error {
			return server.ListenAndServe(metricsServer)
		})
	}
	g.Go(func() error {
		return server.GracefulShutdown(gctx, logger.Log, httpServer, pprofServer, metricsServer)
	})

	if err := g.Wait(); err != nil {
		logger.Log.Error("Server error", zap.Error(err))
		return err
	}
	logger.Log.Info("Graceful shutdown complete")
	return nil
}
