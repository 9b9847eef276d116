package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/gmcclure382/DragaliaAPI/internal/adapters/metrics"
	"github.com/gmcclure382/DragaliaAPI/internal/adapters/persistence"
	"github.com/gmcclure382/DragaliaAPI/internal/application/fort/services"
	"github.com/gmcclure382/DragaliaAPI/internal/application/logging"
	"github.com/gmcclure382/DragaliaAPI/internal/application/mediator"
	"github.com/gmcclure382/DragaliaAPI/internal/application/setup"
	"github.com/gmcclure382/DragaliaAPI/internal/domain/fort"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/database"
)

// app holds the dependencies of one CLI invocation
type app struct {
	cfg      *config.Config
	db       *gorm.DB
	logOut   io.WriteCloser
	mediator mediator.Mediator
	stdout   io.Writer
}

// newApp loads configuration, opens the database and wires the mediator
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logOut, err := cfg.Logging.OpenOutput()
	if err != nil {
		database.Close(db)
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	logger := logging.NewStdLogger(logOut, level, cfg.Logging.Format)

	m, err := newMediator(db, cfg, logger)
	if err != nil {
		logOut.Close()
		database.Close(db)
		return nil, err
	}

	return &app{cfg: cfg, db: db, logOut: logOut, mediator: m}, nil
}

// newMediator registers the fort handlers behind the logging, rate limit and metrics middleware
func newMediator(db *gorm.DB, cfg *config.Config, logger logging.Logger) (mediator.Mediator, error) {
	catalog, err := fort.DefaultCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load facility catalog: %w", err)
	}

	opts := services.DefaultSchedulerOptions()
	if cfg.Fort.TimeSkipUnit > 0 {
		opts.TimeSkipUnit = cfg.Fort.TimeSkipUnit
	}

	m := mediator.NewMediator()
	m.RegisterMiddleware(mediator.LoggingMiddleware(logger))
	if cfg.Fort.RateLimit.Enabled() {
		limiter := mediator.NewPlayerRateLimiter(cfg.Fort.RateLimit.Requests, cfg.Fort.RateLimit.Burst)
		m.RegisterMiddleware(mediator.RateLimitMiddleware(limiter))
	}
	if cfg.Metrics.Enabled {
		collector, err := initMetrics()
		if err != nil {
			return nil, err
		}
		m.RegisterMiddleware(metrics.PrometheusMiddleware(collector))
	}

	registry := setup.NewHandlerRegistry(persistence.NewGormUnitOfWork(db, nil), catalog, nil, opts)
	if err := registry.RegisterFortHandlers(m); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}

	return m, nil
}

// initMetrics creates the registry and the global fort collector once per process
func initMetrics() (*metrics.CommandMetricsCollector, error) {
	if metrics.IsEnabled() {
		return nil, nil
	}
	metrics.InitRegistry()

	fortCollector := metrics.NewFortMetricsCollector()
	if err := fortCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register fort metrics: %w", err)
	}
	metrics.SetGlobalFortCollector(fortCollector)

	commandCollector := metrics.NewCommandMetricsCollector()
	if err := commandCollector.Register(); err != nil {
		return nil, fmt.Errorf("failed to register command metrics: %w", err)
	}
	return commandCollector, nil
}

// send dispatches request through the mediator
func (a *app) send(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	return a.mediator.Send(ctx, request)
}

// out returns the writer command output goes to
func (a *app) out() io.Writer {
	if a.stdout == nil {
		return os.Stdout
	}
	return a.stdout
}

// Close releases the database connection and log output
func (a *app) Close() {
	if a.logOut != nil {
		a.logOut.Close()
	}
	if a.db != nil {
		database.Close(a.db)
	}
}

// withApp wraps a RunE body with player resolution and app lifetime management
func withApp(run func(ctx context.Context, a *app, playerID int, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		pid, err := resolvePlayerID()
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()
		a.stdout = cmd.OutOrStdout()

		return run(cmd.Context(), a, pid, args)
	}
}
