package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/phrazzld/taskboard-api/internal/config"
)

// loadAppConfig loads a .env file into the process environment, if one
// exists, and then reads the configuration. Variables already set in the
// environment win over .env entries.
func loadAppConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfigSummary logs non-secret configuration. Secrets are only reported
// as present.
func logConfigSummary(log *slog.Logger, cfg *config.Config) {
	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"database_driver", cfg.Database.Driver)

	log.Debug("Database configuration",
		"url_present", cfg.Database.URL != "",
		"name", cfg.Database.Name,
		"op_timeout", cfg.Database.OpTimeout())
	log.Debug("Auth configuration",
		"jwt_secret_present", cfg.Auth.JWTSecret != "",
		"bcrypt_cost", cfg.Auth.BcryptCost)
}
