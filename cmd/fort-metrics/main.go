package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/metrics"
	"github.com/gmcclure382/DragaliaAPI/internal/adapters/persistence"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/queries"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/application/setup"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/database"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to config file")
	pidPath := flag.String("pid-file", "/tmp/fort-metrics.pid", "PID file enforcing a single exporter")
	interval := flag.Duration("interval", metrics.DefaultSweepInterval, "Carpenter gauge refresh interval")
	flag.Parse()

	fmt.Println("Fort Metrics Exporter")
	fmt.Println("=====================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configPath)

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", *pidPath)
	pf := pidfile.New(*pidPath)
	if err := pf.Acquire(); err != nil {
		log.Fatalf("Failed to acquire PID file lock: %v", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Failed to release PID file: %v", err)
		}
	}()

	if err := run(cfg, *interval); err != nil {
		log.Printf("Exporter stopped with error: %v", err)
		pf.Release()
		os.Exit(1)
	}
}

func run(cfg *config.Config, interval time.Duration) error {
	logOut, err := cfg.Logging.OpenOutput()
	if err != nil {
		return err
	}
	defer logOut.Close()
	logger := logging.NewStdLogger(logOut, cfg.Logging.Level, cfg.Logging.Format)

	// Connect to database
	fmt.Println("Connecting to database...")
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Metrics are always on for the exporter
	metrics.InitRegistry()
	fortCollector := metrics.NewFortMetricsCollector()
	if err := fortCollector.Register(); err != nil {
		return fmt.Errorf("failed to register fort metrics: %w", err)
	}
	metrics.SetGlobalFortCollector(fortCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return fmt.Errorf("failed to register command metrics: %w", err)
	}

	// Build mediator
	catalog, err := fort.DefaultCatalog()
	if err != nil {
		return fmt.Errorf("failed to load facility catalog: %w", err)
	}

	opts := services.DefaultSchedulerOptions()
	if cfg.Fort.TimeSkipUnit > 0 {
		opts.TimeSkipUnit = cfg.Fort.TimeSkipUnit
	}

	med := mediator.NewMediator()
	med.RegisterMiddleware(mediator.LoggingMiddleware(logger))
	med.RegisterMiddleware(metrics.PrometheusMiddleware(commandCollector))

	registry := setup.NewHandlerRegistry(persistence.NewGormUnitOfWork(db, nil), catalog, nil, opts)
	if err := registry.RegisterFortHandlers(med); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// GetFortDetail records the carpenter gauges for the player it reads
	refresh := func(ctx context.Context, playerID int) error {
		_, err := med.Send(ctx, &queries.GetFortDetailQuery{PlayerID: playerID})
		return err
	}
	sweeper := metrics.NewCarpenterSweeper(persistence.NewGormFortRepository(db), refresh, interval, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	server := &http.Server{
		Addr:              cfg.Metrics.Address(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	fmt.Printf("Serving metrics on http://%s%s (refresh every %s)\n", cfg.Metrics.Address(), cfg.Metrics.Path, interval)
	logger.Log("INFO", "Metrics exporter started", map[string]interface{}{
		"address":  cfg.Metrics.Address(),
		"path":     cfg.Metrics.Path,
		"interval": interval.String(),
	})

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	fmt.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
