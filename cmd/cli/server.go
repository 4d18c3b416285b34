package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theblitlabs/system-stats/internal/api"
	"github.com/theblitlabs/system-stats/internal/api/handlers"
	"github.com/theblitlabs/system-stats/internal/config"
	"github.com/theblitlabs/system-stats/internal/monitoring/health"
	"github.com/theblitlabs/system-stats/internal/monitoring/metrics"
	"github.com/theblitlabs/system-stats/internal/services"
	"github.com/theblitlabs/system-stats/internal/telemetry"
	"github.com/theblitlabs/system-stats/pkg/logger"
)

var Version = "dev"

type ServerOptions struct {
	ConfigPath string
	// LogMode overrides log.mode from the config when set.
	LogMode string
}

// verifyPortAvailable checks if the given address is available for use
func verifyPortAvailable(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("address %s is not available: %w", addr, err)
	}
	return ln.Close()
}

// NewServer wires the collector, service, handlers and router for cfg. The
// checker may be nil.
func NewServer(cfg *config.Config, source metrics.Source, checker *health.HealthChecker) *http.Server {
	collector := metrics.NewSystemMetricsCollector(metrics.CollectorConfig{
		DiskPath:     cfg.Stats.DiskPath,
		SampleWindow: cfg.Stats.SampleWindow,
		Parallel:     cfg.Stats.Parallel,
	}, source)
	statsService := services.NewStatsService(collector, cfg.Stats.Parallel)

	var reporter handlers.HealthReporter
	if checker != nil {
		reporter = checker
	}
	router := api.NewRouter(handlers.NewStatsHandler(statsService), handlers.NewHealthHandler(reporter), cfg)

	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func RunServer(opts ServerOptions) error {
	cfg, err := config.LoadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	mode := cfg.Log.Mode
	if opts.LogMode != "" {
		mode = opts.LogMode
	}
	if err := logger.InitWithConfig(logger.Config{Mode: logger.LogMode(mode), File: cfg.Log.File}); err != nil {
		return fmt.Errorf("failed to initialise logger: %w", err)
	}
	defer logger.Close()
	log := logger.WithComponent("server")

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stopChan)

	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())
	defer shutdownCancel()

	shutdownTelemetry, err := telemetry.InitTelemetry(shutdownCtx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialise telemetry: %w", err)
	}

	if err := verifyPortAvailable(cfg.Addr()); err != nil {
		return err
	}

	source := metrics.NewHostSource()
	checker := health.NewHealthChecker(cfg.Stats.HealthInterval, source)
	checker.Start()
	defer checker.Stop()

	server := NewServer(cfg, source, checker)
	serverErr := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", cfg.Addr()).
			Str("disk_path", cfg.Stats.DiskPath).
			Dur("sample_window", cfg.Stats.SampleWindow).
			Bool("parallel", cfg.Stats.Parallel).
			Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-stopChan:
		log.Info().Msg("Shutdown signal received, gracefully shutting down...")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	timeout := cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	shutdownStart := time.Now()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown error")
		if errors.Is(err, context.DeadlineExceeded) {
			log.Warn().Msg("Server shutdown deadline exceeded, forcing immediate shutdown")
		}
	} else {
		log.Info().Dur("duration", time.Since(shutdownStart)).Msg("Server HTTP connections gracefully closed")
	}

	if err := shutdownTelemetry(ctx); err != nil {
		log.Error().Err(err).Msg("Telemetry shutdown error")
	}

	log.Info().Msg("Shutdown complete")
	return nil
}
