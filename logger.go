package jdx

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with jdx-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithPath adds a path field to the logger.
func (l *Logger) WithPath(path string) *Logger {
	return &Logger{
		Logger: l.Logger.With("path", path),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRead logs a dataset or header read.
func (l *Logger) LogRead(ctx context.Context, path string, h *Header, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "read failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "read completed",
		"path", path,
		"images", h.ImageCount,
		"labels", len(h.Labels),
		"geometry", geometryString(h),
		"duration", duration,
	)
}

// LogWrite logs a dataset or header write.
func (l *Logger) LogWrite(ctx context.Context, path string, h *Header, compressed int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"path", path,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "write completed",
		"path", path,
		"images", h.ImageCount,
		"labels", len(h.Labels),
		"compressed_bytes", compressed,
		"duration", duration,
	)
}

// LogMerge logs a dataset merge.
func (l *Logger) LogMerge(ctx context.Context, source string, stats MergeStats, err error) {
	if err != nil {
		l.WarnContext(ctx, "merge rejected",
			"source", source,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "merge completed",
		"source", source,
		"images_added", stats.ImagesAdded,
		"labels_added", stats.LabelsAdded,
		"labels_reused", stats.LabelsReused,
	)
}

func geometryString(h *Header) string {
	return fmt.Sprintf("%dx%dx%d", h.ImageWidth, h.ImageHeight, h.BitDepth)
}
