package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds the shared dependencies of the running server and
// releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore  store.UserStore
	taskStore  store.TaskStore
	closeStore func(ctx context.Context) error

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
}

// newApplication connects to the configured database and wires the services.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	stores, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		userStore:  stores.users,
		taskStore:  stores.tasks,
		closeStore: stores.close,
	}

	if err := app.wireServices(); err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// wireServices builds the services on top of the stores already set on app.
func (app *application) wireServices() error {
	var err error

	app.jwtService, err = auth.NewJWTService(app.config.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher, err := auth.NewBcryptHasher(app.config.Auth.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to create password hasher: %w", err)
	}

	opTimeout := app.config.Database.OpTimeout()
	app.userService = service.NewUserService(app.userStore, hasher, auth.NewBcryptVerifier(), opTimeout, app.logger)
	app.taskService = service.NewTaskService(app.taskStore, opTimeout, app.logger)
	return nil
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases the database connections.
func (app *application) cleanup() {
	if app.closeStore != nil {
		if err := app.closeStore(context.Background()); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
