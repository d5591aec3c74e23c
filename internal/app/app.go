package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/alex-user-go/hotel-widget/docs"
	"github.com/alex-user-go/hotel-widget/internal/config"
	"github.com/alex-user-go/hotel-widget/internal/handler"
	"github.com/alex-user-go/hotel-widget/internal/middleware"
	"github.com/alex-user-go/hotel-widget/internal/obs"
	"github.com/alex-user-go/hotel-widget/internal/providers"
	"github.com/alex-user-go/hotel-widget/internal/search"
	"github.com/alex-user-go/hotel-widget/internal/widget"
)

// Run initializes and runs the application.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := NewLogger(cfg.Logging, os.Stdout)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	h, err := NewHandler(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	figure.NewFigure("HOTEL WIDGET", "", true).Print()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", srv.Addr,
			"provider_mode", cfg.Provider.Mode,
			"search_timeout", cfg.Search.Timeout.String(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}

// NewLogger builds the process logger from the logging config.
func NewLogger(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// NewHandler wires providers, the aggregator and every route into one
// http.Handler with logging, panic recovery and CORS applied.
func NewHandler(cfg *config.Config, logger *slog.Logger) (http.Handler, error) {
	metrics := obs.NewMetrics(logger)

	aggregator := search.NewAggregator(
		providers.All(cfg.Provider.Mode, cfg.Provider.Affiliates),
		cfg.Search.Timeout,
		metrics,
		logger,
	)

	h := handler.New(aggregator, metrics, logger)

	page, err := widget.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load widget assets: %w", err)
	}

	router := mux.NewRouter()

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", obs.HealthHandler(logger)).Methods(http.MethodGet)
	api.HandleFunc("/search", h.SearchHandler).Methods(http.MethodGet)

	router.HandleFunc("/metrics", metrics.MetricsHandler()).Methods(http.MethodGet)
	router.HandleFunc(widget.PagePath, page.Page).Methods(http.MethodGet)
	router.HandleFunc("/", widget.RedirectToPage).Methods(http.MethodGet)
	router.PathPrefix(widget.PublicPrefix).Handler(page.Static()).Methods(http.MethodGet)
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	logRoutes(router, logger)

	wrapped := middleware.Logging(logger)(middleware.Recover(logger)(router))

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", middleware.RequestIDHeader}),
		handlers.ExposedHeaders([]string{middleware.RequestIDHeader}),
	)

	return cors(wrapped), nil
}

func logRoutes(router *mux.Router, logger *slog.Logger) {
	err := router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}
		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ALL"}
		}
		logger.Debug("route registered", "methods", strings.Join(methods, ","), "path", path)
		return nil
	})
	if err != nil {
		logger.Error("error walking routes", "error", err)
	}
}
