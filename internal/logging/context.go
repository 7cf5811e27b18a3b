package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

// ctxKey keys the logger attached to a context by WithLogger.
type ctxKey struct{}

// WithLogger attaches logger to ctx so request-scoped work further down
// the call chain picks it up via FromContext.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger attached to ctx, falling back to the
// package default when none is attached.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(ctxKey{}).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
