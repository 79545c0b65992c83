package logging

import (
	"context"
	"log/slog"

	"github.com/myrjola/interrogation-room/internal/errors"
)

type contextKey string

const attrsContextKey contextKey = "slogAttrs"

// ContextHandler enriches log records with [slog.Attr] carried in [context.Context].
//
// This lets middleware attach request-scoped attributes such as the
// authenticated user id once and have them show up on every log line emitted
// while handling that request.
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler wraps the underlying [slog.Handler].
func NewContextHandler(h slog.Handler) ContextHandler {
	return ContextHandler{Handler: h}
}

// Handle adds the attributes stored with [WithAttrs] to the record.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(attrsContextKey).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	if err := h.Handler.Handle(ctx, r); err != nil {
		return errors.Wrap(err, "handle log record")
	}
	return nil
}

// WithAttrs returns a context whose log records carry the given attributes.
func WithAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	if existing, ok := ctx.Value(attrsContextKey).([]slog.Attr); ok {
		// Copy so that sibling contexts sharing the parent slice don't see each other's attributes.
		merged := make([]slog.Attr, 0, len(existing)+len(attrs))
		merged = append(merged, existing...)
		merged = append(merged, attrs...)
		return context.WithValue(ctx, attrsContextKey, merged)
	}
	return context.WithValue(ctx, attrsContextKey, attrs)
}
