// Package ctxutil carries request-scoped identifiers through context.Context
// so that log lines written deep in the services can be correlated with the
// HTTP request and the conversation session that caused them.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type (
	sessionIDKey struct{}
	requestIDKey struct{}
)

// WithSessionID stores the conversation session ID in the context.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

// SessionIDFromCtx returns the session ID, or false when it is absent or nil.
func SessionIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromCtx returns the request ID or "".
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// LogAttrs returns request_id and session_id attributes for whichever of the
// two ctx carries, ready to pass to slog's variadic methods.
func LogAttrs(ctx context.Context) []any {
	var attrs []any
	if id := RequestIDFromCtx(ctx); id != "" {
		attrs = append(attrs, slog.String("request_id", id))
	}
	if id, ok := SessionIDFromCtx(ctx); ok {
		attrs = append(attrs, slog.String("session_id", id.String()))
	}
	return attrs
}
