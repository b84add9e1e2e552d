// Package ctxlog passes a slog.Logger through context.Context so every
// pipeline stage can emit warnings without threading a logger argument.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to avoid collisions with other packages' context keys.
type key struct{}

var loggerKey = key{}

// WithLogger returns a new context carrying the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger, falling back to slog.Default when the
// context carries none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
