package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

const (
	bodyLimit       = "1M"
	shutdownTimeout = 15 * time.Second
)

// Dependencies are the services the HTTP layer serves
type Dependencies struct {
	TransactionService services.TransactionServiceInterface
	ReportService      services.ReportServiceInterface
	Health             handlers.HealthChecker
	// Gatherer backs /metrics. Nil means the default registry.
	Gatherer prometheus.Gatherer
}

// Server owns the echo instance and its lifecycle
type Server struct {
	echo    *echo.Echo
	cfg     *config.Config
	limiter *middleware.IPRateLimiter
}

// New builds the echo instance with middleware and routes
func New(cfg *config.Config, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	limiter := middleware.NewIPRateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst)

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
	e.Use(echomw.BodyLimit(bodyLimit))
	e.Use(limiter.Middleware())
	e.Use(echomw.ContextTimeoutWithConfig(echomw.ContextTimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))

	s := &Server{echo: e, cfg: cfg, limiter: limiter}
	s.registerRoutes(deps)
	return s
}

func (s *Server) registerRoutes(deps Dependencies) {
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	healthHandler := handlers.NewHealthCheckHandler(deps.Health)
	transactionHandler := handlers.NewTransactionHandler(deps.TransactionService)
	reportHandler := handlers.NewReportHandler(deps.ReportService)
	devHandler := handlers.NewDevHandler(deps.TransactionService, s.cfg.IsDevelopment())

	s.echo.GET("/health", healthHandler.HealthCheck)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.echo.Group("/api")
	api.POST("/transactions", transactionHandler.CreateTransaction)
	api.GET("/transactions", transactionHandler.ListTransactions)
	api.GET("/reports/monthly", reportHandler.MonthlyReport)
	api.GET("/balance", reportHandler.Balance)
	api.POST("/dev/seed", devHandler.SeedTransactions)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Address(),
		Handler:           s.echo,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.limiter.Run(gctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("Starting HTTP server",
			"address", httpServer.Addr,
			"environment", s.cfg.Server.Environment)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
