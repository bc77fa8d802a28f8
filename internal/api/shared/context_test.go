package shared

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctxWithTrace := SetTraceID(ctx)
	traceID := GetTraceID(ctxWithTrace)
	assert.Len(t, traceID, 32, "trace ID should be 32 hex characters")

	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err)

	// parent context is untouched
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDWithInvalidContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)
	assert.Empty(t, GetTraceID(ctx))
}

func TestGenerateTraceIDUniqueness(t *testing.T) {
	const iterations = 1000
	seen := make(map[string]struct{}, iterations)

	for i := 0; i < iterations; i++ {
		id := generateTraceID()
		require.Len(t, id, 32)
		_, dup := seen[id]
		require.False(t, dup, "duplicate trace ID %s", id)
		seen[id] = struct{}{}
	}
}

func TestGenerateFallbackTraceID(t *testing.T) {
	first := generateFallbackTraceID()
	time.Sleep(time.Millisecond)
	second := generateFallbackTraceID()

	for _, id := range []string{first, second} {
		assert.Len(t, id, 32)
		_, err := hex.DecodeString(id)
		assert.NoError(t, err)
	}
	assert.NotEqual(t, first, second)
}

func TestUserIDContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID uuid.UUID
		wantOK bool
	}{
		{
			name:   "set",
			ctx:    WithUserID(context.Background(), uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
			wantID: uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			wantOK: true,
		},
		{
			name:   "missing",
			ctx:    context.Background(),
			wantID: uuid.Nil,
		},
		{
			name:   "nil uuid",
			ctx:    WithUserID(context.Background(), uuid.Nil),
			wantID: uuid.Nil,
		},
		{
			name:   "wrong type",
			ctx:    context.WithValue(context.Background(), UserIDContextKey, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			wantID: uuid.Nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := GetUserID(tc.ctx)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantID, id)
		})
	}
}
