package ctxutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSessionID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name   string
		ctx    context.Context
		want   uuid.UUID
		wantOK bool
	}{
		{"set", WithSessionID(context.Background(), id), id, true},
		{"absent", context.Background(), uuid.Nil, false},
		{"nil uuid", WithSessionID(context.Background(), uuid.Nil), uuid.Nil, false},
		{"wrong type", context.WithValue(context.Background(), sessionIDKey{}, id.String()), uuid.Nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := SessionIDFromCtx(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "req-123", RequestIDFromCtx(WithRequestID(context.Background(), "req-123")))
	assert.Empty(t, RequestIDFromCtx(context.Background()))
	assert.Empty(t, RequestIDFromCtx(context.WithValue(context.Background(), requestIDKey{}, 12345)))
}

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, LogAttrs(context.Background()))

	id := uuid.New()
	ctx := WithSessionID(WithRequestID(context.Background(), "req-1"), id)

	assert.Equal(t, []any{
		slog.String("request_id", "req-1"),
		slog.String("session_id", id.String()),
	}, LogAttrs(ctx))

	assert.Equal(t, []any{slog.String("session_id", id.String())},
		LogAttrs(WithSessionID(context.Background(), id)))
}
