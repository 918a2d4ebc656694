// Package logging carries the allocator's request-scoped slog.Logger through
// context so service and persistence layers log with the request attributes
// the HTTP middleware attached.
package logging

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// ContextWithLogger returns a derived context carrying the provided logger.
// A nil logger leaves the context unchanged.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context, or nil
// when none was attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return nil
	}
	logger, _ := ctx.Value(contextKey{}).(*slog.Logger)
	return logger
}
