package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/asakaida/annostore/internal/handlers"
	"github.com/asakaida/annostore/internal/handlers/middleware"
	"github.com/asakaida/annostore/internal/infrastructure/config"
	"github.com/asakaida/annostore/internal/infrastructure/health"
	"github.com/asakaida/annostore/internal/infrastructure/logging"
	"github.com/asakaida/annostore/internal/infrastructure/metrics"
	"github.com/asakaida/annostore/internal/repositories/memory"
	"github.com/asakaida/annostore/internal/services"
)

const metricsRefreshInterval = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API (default command)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Initialize configuration from .env.{env} file
	if err := config.InitConfig(envFlag); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	slog.SetDefault(logger)
	logger.Info("using environment", "env", envFlag)

	// Initialize store and services
	store := memory.NewStore()
	targetService := services.NewTargetService(store.Targets(), logger)
	annotationService := services.NewAnnotationService(store.Targets(), store.Annotations(), logger)

	// Initialize metrics
	collector := metrics.NewCollector()
	collector.SetStore(store)
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	exporter := metrics.NewPrometheusExporter(collector, registry)

	router := handlers.NewRouter(targetService, annotationService, handlers.RouterConfig{
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Instrument:   metrics.Middleware(collector, exporter),
		Logger:       logger,
	})

	apiServer := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: middleware.Chain(router,
			middleware.RequestLogger(logger),
			middleware.Recover(logger),
			middleware.CORS(cfg.CORS),
			middleware.WorkerPool(cfg.Server.Workers),
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bind every listener before serving
	lis, err := bindListeners(cfg)
	if err != nil {
		return err
	}
	defer lis.Close()
	apiListener, metricsListener, healthListener := lis.api, lis.metrics, lis.health

	serverErrors := make(chan error, 3)

	// Start API server
	logger.Info("HTTP server listening", "addr", apiListener.Addr().String(), "workers", cfg.Server.Workers)
	go func() {
		if err := apiServer.Serve(apiListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Start metrics server
	var metricsServer *http.Server
	if metricsListener != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", exporter.Handler())
		mux.Handle("/debug/stats", collector.DebugHandler())
		metricsServer = &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		logger.Info("metrics server listening", "addr", metricsListener.Addr().String())
		go func() {
			if err := metricsServer.Serve(metricsListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErrors <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
		go refreshMetrics(ctx, exporter)
	}

	// Start health server
	var healthServer *health.Server
	if healthListener != nil {
		healthServer = health.NewServer()
		logger.Info("gRPC health server listening", "addr", healthListener.Addr().String())
		go func() {
			if err := healthServer.Serve(healthListener); err != nil {
				serverErrors <- fmt.Errorf("gRPC health server error: %w", err)
			}
		}()
		healthServer.SetServing(true)
	}

	// Wait for shutdown signal or server error
	var serveErr error
	select {
	case serveErr = <-serverErrors:
		logger.Error("server failed, shutting down", "error", serveErr)
	case <-ctx.Done():
		logger.Info("initiating graceful shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if healthServer != nil {
		healthServer.SetServing(false)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown timeout exceeded, closing HTTP server", "error", err)
		_ = apiServer.Close()
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			_ = metricsServer.Close()
		}
	}
	if healthServer != nil {
		healthServer.Shutdown(shutdownCtx)
	}

	logger.Info("shutdown complete")
	return serveErr
}

// listeners holds the bound sockets; metrics and health are nil when disabled.
type listeners struct {
	api     net.Listener
	metrics net.Listener
	health  net.Listener
}

// bindListeners binds the API, metrics and health addresses. On failure
// every listener already bound is closed.
func bindListeners(cfg *config.Config) (*listeners, error) {
	lis := &listeners{}

	var err error
	lis.api, err = listen(cfg.Server.Addr())
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.Enabled {
		lis.metrics, err = listen(net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Metrics.Port)))
		if err != nil {
			lis.Close()
			return nil, err
		}
	}
	if cfg.Health.Enabled {
		lis.health, err = listen(net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Health.Port)))
		if err != nil {
			lis.Close()
			return nil, err
		}
	}
	return lis, nil
}

func listen(addr string) (net.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return l, nil
}

// Close closes every bound listener. Closing a listener a server already
// shut down is harmless.
func (l *listeners) Close() {
	for _, ln := range []net.Listener{l.api, l.metrics, l.health} {
		if ln != nil {
			_ = ln.Close()
		}
	}
}

func refreshMetrics(ctx context.Context, exporter *metrics.PrometheusExporter) {
	ticker := time.NewTicker(metricsRefreshInterval)
	defer ticker.Stop()

	exporter.Update(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			exporter.Update(ctx)
		}
	}
}
