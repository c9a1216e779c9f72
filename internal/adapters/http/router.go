package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/footer-citations/internal/adapters/http/handlers"
	"github.com/jsamuelsen/footer-citations/internal/adapters/http/middleware"
	"github.com/jsamuelsen/footer-citations/internal/platform/config"
	"github.com/jsamuelsen/footer-citations/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// FooterHandler serves the host page and the citation API.
	FooterHandler *handlers.FooterHandler

	// Timeout is the request timeout for the page and API routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - propagate the caller's correlation ID
//  4. Tracing - otelgin span per request
//  5. Metrics - request counters and duration
//  6. Logging - request logging (skips health endpoints)
//
// Route groups:
//   - / : the host page with a citation in its footer
//   - /-/ (internal): health, build info and metrics
//   - /api/v1/ : citation API
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(cfg.AppConfig.Name),
		middleware.Logging(cfg.Logger),
	)

	// Probes get no timeout.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	if cfg.FooterHandler == nil {
		return
	}

	page := engine.Group("")
	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		page.Use(middleware.Timeout(cfg.Timeout))
		apiV1.Use(middleware.Timeout(cfg.Timeout))
	}

	cfg.FooterHandler.RegisterPageRoutes(page)
	cfg.FooterHandler.RegisterCitationRoutes(apiV1)
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	healthHandler *handlers.HealthHandler,
	footerHandler *handlers.FooterHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: healthHandler,
		FooterHandler: footerHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
