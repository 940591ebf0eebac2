package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey int

const loggerKey ctxKey = iota

// WithLogger attaches logger to ctx.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// WithDocument scopes the logger carried by ctx to the document at path.
// Records logged through the returned context name the document.
func WithDocument(ctx context.Context, path string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With(FieldPath, path))
}

// FromContext returns the logger attached to ctx, or the default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}
