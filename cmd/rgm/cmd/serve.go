package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/rocketgrowth-margin/internal/api/handlers"
	"github.com/donaldgifford/rocketgrowth-margin/internal/api/middleware"
	"github.com/donaldgifford/rocketgrowth-margin/internal/config"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
	"github.com/donaldgifford/rocketgrowth-margin/internal/telemetry"
	"github.com/donaldgifford/rocketgrowth-margin/pkg/logger"
)

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Example: `  rgm serve --config config.yaml
  rgm serve --config config.yaml --env-file prod.env`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	eng := engine.NewEngine(
		cfg.Fees.Schedule(),
		engine.WithLogger(log),
		engine.WithPreferences(cfg.Preferences),
	)
	if err := eng.Ready(); err != nil {
		return fmt.Errorf("fee schedule: %w", err)
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	e := newServer(cfg, eng, log)

	addr := cfg.Server.Addr()
	log.Info("starting server",
		"addr", addr,
		"version", Version,
		"keywords", len(eng.Schedule().Keywords),
		"rate_limit", cfg.Server.RateLimit.Enabled,
		"tracing", cfg.Tracing.Enabled,
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newServer wires middleware, operational endpoints and the Huma API onto
// a new Echo instance.
func newServer(cfg *config.Config, eng *engine.Engine, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	if cfg.Tracing.Enabled {
		e.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}
	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	if rl := cfg.Server.RateLimit; rl.Enabled {
		e.Use(middleware.RateLimit(rl.PerSecond, rl.Burst))
	}

	health := handlers.NewHealthHandler(eng)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Rocket Growth Margin API", Version))
	handlers.RegisterCalculateRoutes(api, handlers.NewCalculateHandler(eng))
	handlers.RegisterAnalyzeRoutes(api, handlers.NewAnalyzeHandler(eng))
	handlers.RegisterCategoryRoutes(api, handlers.NewCategoryHandler(eng))
	handlers.RegisterLogisticsRoutes(api, handlers.NewLogisticsHandler(eng))

	return e
}
