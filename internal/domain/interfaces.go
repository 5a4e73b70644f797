package domain

import (
	"context"
)

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// RunStore defines operations for recording dispatched commands.
type RunStore interface {
	// Start records the beginning of a run and returns it with its ID set.
	Start(ctx context.Context, run Run) (Run, error)

	// Finish records the exit code and end time of a run.
	Finish(ctx context.Context, id string, exitCode int) error

	// Recent returns up to limit runs, newest first.
	Recent(ctx context.Context, limit int) ([]Run, error)

	// Close closes the store connection.
	Close() error
}
