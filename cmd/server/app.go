package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskman-api/internal/config"
	"github.com/phrazzld/taskman-api/internal/events"
	"github.com/phrazzld/taskman-api/internal/platform/postgres"
	"github.com/phrazzld/taskman-api/internal/service"
	"github.com/phrazzld/taskman-api/internal/service/auth"
	"github.com/phrazzld/taskman-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService   auth.JWTService
	authService  auth.Service
	taskService  service.TaskService
	eventEmitter *events.InMemoryEventEmitter
}

// newApplication wires the PostgreSQL stores, services and event handlers
// around an open database connection.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:    cfg,
		logger:    logger,
		db:        db,
		userStore: postgres.NewPostgresUserStore(db, cfg.Auth.BCryptCost, logger),
		taskStore: postgres.NewPostgresTaskStore(db, logger),
	}

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// initServices builds everything that sits on top of the stores.
func (app *application) initServices() error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", app.config.Auth.TokenLifetimeMinutes)

	app.authService, err = auth.NewAuthService(app.userStore, auth.NewBcryptVerifier(), app.jwtService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(app.logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(app.logger))

	app.taskService, err = service.NewTaskService(app.taskStore, app.db, app.eventEmitter, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create task service: %w", err)
	}

	return nil
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
