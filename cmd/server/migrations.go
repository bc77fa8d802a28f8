package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
)

// errMigrationsNeedPostgres is returned for -migrate with the mongo driver,
// whose indexes are created on first connect instead.
var errMigrationsNeedPostgres = errors.New("migrations require database.driver=postgres")

// handleMigrations executes one goose command against the configured
// Postgres database.
func handleMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver != "postgres" {
		return errMigrationsNeedPostgres
	}

	logger.Info("Executing migrations", "command", command)

	db, err := openMigrationDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("failed to close database connection", "error", closeErr)
		}
	}()

	return postgres.Migrate(ctx, db, command, logger)
}
