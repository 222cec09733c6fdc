// @title			pass.in API
// @version		1.0
// @description	Event check-in service. Looks up a single event with its live attendee count.
// @BasePath		/
// @schemes		http https
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"

	"passin/config"
	_ "passin/docs"
	httpdelivery "passin/internal/delivery/http"
	"passin/internal/delivery/http/controllers"
	"passin/internal/domain"
	"passin/internal/observability"
	"passin/internal/repository/orm"
	"passin/internal/repository/postgres"
	"passin/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	logger.Info("Starting pass.in API server", "environment", cfg.Environment, "storage_driver", cfg.StorageDriver)

	ctx := context.Background()

	tracerProvider, err := observability.NewTracerProvider(cfg.TracingExporter, os.Stdout)
	if err != nil {
		logger.Error("Failed to set up tracing", "error", err)
		os.Exit(1)
	}
	otel.SetTracerProvider(tracerProvider)

	eventRepo, db, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Connected to database successfully")

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Error("Failed to apply schema", "error", err)
			os.Exit(1)
		}
		logger.Info("Database schema applied")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	eventService := services.NewEventService(observability.WithEventRepositoryTelemetry(eventRepo, metrics, tracerProvider))

	mux := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService),
		controllers.NewHealthController(logger, db),
		registry,
	)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      httpdelivery.NewHandler(mux, logger, metrics, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to flush traces", "error", err)
	}
	logger.Info("Server exited")
}

// openStorage returns the event repository for the configured driver together
// with the underlying *sql.DB used for readiness checks and migrations.
func openStorage(ctx context.Context, cfg *config.Config) (domain.EventRepository, *sql.DB, error) {
	switch cfg.StorageDriver {
	case config.DriverGorm:
		gdb, err := orm.Open(cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("gorm sql handle: %w", err)
		}
		return orm.NewEventRepository(gdb, cfg.QueryTimeout), sqlDB, nil
	default:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewEventRepository(db, cfg.QueryTimeout), db, nil
	}
}
