// Package main implements the entry point for the taskboard API server,
// a JSON API for personal task lists with cookie-based sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/redact"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command ("+strings.Join(postgres.MigrationCommands, ", ")+") and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		slog.Error("taskboard-api exited with error", "error", redact.Error(err))
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// HTTP until SIGINT or SIGTERM.
func run(migrateCmd string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfigSummary(log, cfg)

	if migrateCmd != "" {
		return handleMigrations(ctx, cfg, migrateCmd, log)
	}

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}
