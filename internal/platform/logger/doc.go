// Package logger configures the process-wide slog logger and carries
// request-scoped loggers through context.Context.
package logger
