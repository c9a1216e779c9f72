// Package main is the entry point for the citation footer service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/footer-citations/internal/adapters/document"
	"github.com/jsamuelsen/footer-citations/internal/adapters/http"
	"github.com/jsamuelsen/footer-citations/internal/adapters/http/handlers"
	"github.com/jsamuelsen/footer-citations/internal/app"
	"github.com/jsamuelsen/footer-citations/internal/domain"
	"github.com/jsamuelsen/footer-citations/internal/platform/config"
	"github.com/jsamuelsen/footer-citations/internal/platform/logging"
	"github.com/jsamuelsen/footer-citations/internal/platform/telemetry"
	"github.com/jsamuelsen/footer-citations/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

const healthCheckTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Load the host page and check it can hold a citation
	page, err := document.LoadPage(cfg.Footer.PagePath, cfg.Footer.TargetID)
	if err != nil {
		return fmt.Errorf("loading host page: %w", err)
	}

	if err := page.Check(ctx); err != nil {
		return fmt.Errorf("checking host page: %w", err)
	}

	healthRegistry := ports.NewHealthRegistry(ports.WithCheckTimeout(healthCheckTimeout))
	if err := healthRegistry.Register(page); err != nil {
		return fmt.Errorf("registering host page health check: %w", err)
	}

	// 6. Create the footer selector (application layer)
	registry := domain.DefaultRegistry()
	selector := app.NewFooterSelector(app.FooterSelectorConfig{
		Registry: registry,
		Random:   app.NewRandomSource(cfg.Footer.Seed),
		TargetID: cfg.Footer.TargetID,
		Recorder: telemetry.NewCitationMetrics(prometheus.DefaultRegisterer),
		Logger:   logger,
	})

	logger.Info("citation footer ready",
		slog.Int("citations", registry.Len()),
		slog.String("target_id", selector.TargetID()),
		slog.Bool("seeded", cfg.Footer.Seed != 0),
	)

	// 7. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime).WithCitations(registry.Len())
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	footerHandler := handlers.NewFooterHandler(selector, page)

	// 8. Create HTTP server and router
	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler, footerHandler))

	// 9. Start server (non-blocking) and wait for shutdown
	serverErr := server.Start()

	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	logger.Info("initiating graceful shutdown", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
