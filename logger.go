package celltable

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with consistent field names for table I/O.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON logs to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable logs to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// WithName adds the table file name to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{Logger: l.With("name", name)}
}

// LogRead logs a table read.
func (l *Logger) LogRead(ctx context.Context, name string, format Format, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"name", name,
			"format", format.String(),
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "read completed",
		"name", name,
		"format", format.String(),
		"rows", rows,
	)
}

// LogWrite logs a table write.
func (l *Logger) LogWrite(ctx context.Context, name string, format Format, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"name", name,
			"format", format.String(),
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "table written",
		"name", name,
		"format", format.String(),
		"rows", rows,
	)
}
