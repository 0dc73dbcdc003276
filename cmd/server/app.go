package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/events"
	"github.com/phrazzld/task-api/internal/metrics"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
)

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	store        *memory.TaskStore
	eventEmitter *events.InMemoryEventEmitter
	taskService  service.TaskService

	// nil when metrics are disabled
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	// nil when no JWT secret is configured
	jwtService auth.JWTService
}

// newApplication creates a new application instance with all dependencies
// initialized. The task store is created here and handed to the service;
// nothing else holds a reference to it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	app.store = memory.NewTaskStore(memory.WithLogger(logger))
	app.eventEmitter = events.NewInMemoryEventEmitter(logger)

	var err error
	app.taskService, err = service.NewTaskService(app.store, app.eventEmitter, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	if cfg.Metrics.Enabled {
		app.registry = prometheus.NewRegistry()
		app.metrics, err = metrics.New(app.registry)
		if err != nil {
			return nil, fmt.Errorf("failed to register metrics: %w", err)
		}

		updater := metrics.NewTaskGaugeUpdater(app.metrics, app.store, logger)
		app.eventEmitter.RegisterHandler(updater)
		if err := updater.Refresh(ctx); err != nil {
			return nil, fmt.Errorf("failed to initialize task gauges: %w", err)
		}
		logger.Info("Metrics enabled", "path", cfg.Metrics.Path)
	}

	if cfg.Auth.Enabled() {
		app.jwtService, err = auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
		}
		logger.Info("JWT authentication enabled for mutating routes",
			"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)
	}

	if cfg.Store.SeedDemoData {
		seeded, err := service.SeedDemoTasks(ctx, app.taskService)
		if err != nil {
			return nil, fmt.Errorf("failed to seed demo tasks: %w", err)
		}
		logger.Info("Demo tasks seeded", "count", len(seeded))
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until it shuts down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources after the server has stopped.
func (app *application) cleanup() {
	app.logger.Info("Application shutdown completed",
		"tasks_in_memory", app.store.Len())
}
