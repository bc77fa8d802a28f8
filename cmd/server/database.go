package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/mongo"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// connectTimeout bounds the startup ping of either database.
const connectTimeout = 10 * time.Second

// storeSet is the storage backend chosen by database.driver.
type storeSet struct {
	users store.UserStore
	tasks store.TaskStore

	// close releases the backend's connections.
	close func(ctx context.Context) error
}

// setupAppDatabase connects to the configured backend and builds its stores.
// The connection is verified before returning so a bad URL fails at startup.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeSet, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.Database.URL, connectTimeout)
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established", "driver", "postgres")
		return &storeSet{
			users: postgres.NewPostgresUserStore(db, logger),
			tasks: postgres.NewPostgresTaskStore(db, logger),
			close: func(context.Context) error { return db.Close() },
		}, nil

	case "mongo":
		conn := mongo.NewConnection(cfg.Database.URL, cfg.Database.Name, connectTimeout, logger)
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := conn.Ping(pingCtx); err != nil {
			_ = conn.Close(context.Background())
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		logger.Info("Database connection established", "driver", "mongo", "database", cfg.Database.Name)
		return &storeSet{
			users: mongo.NewMongoUserStore(conn, logger),
			tasks: mongo.NewMongoTaskStore(conn, logger),
			close: conn.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// openMigrationDB opens the Postgres database for a migration command.
func openMigrationDB(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	return postgres.Open(ctx, cfg.Database.URL, connectTimeout)
}
