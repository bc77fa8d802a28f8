package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

// withOpTimeout bounds a single store call. A non-positive timeout only
// attaches a cancel func.
func withOpTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// componentLogger prefers the request-scoped logger so trace IDs are kept.
func componentLogger(ctx context.Context, fallback *slog.Logger, component string) *slog.Logger {
	return logger.FromContextOrDefault(ctx, fallback).With("component", component)
}
