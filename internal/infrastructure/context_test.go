package infrastructure

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	ctx = WithTraceID(ctx, "abc-123")
	assert.Equal(t, "abc-123", GetTraceID(ctx))
}

func TestEnsureTraceID(t *testing.T) {
	ctx := EnsureTraceID(context.Background())
	generated := GetTraceID(ctx)
	require.NotEmpty(t, generated)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	// An existing ID is preserved.
	ctx2 := EnsureTraceID(ctx)
	assert.Equal(t, generated, GetTraceID(ctx2))
}

func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		require.False(t, seen[id], "duplicate trace ID %s", id)
		seen[id] = true
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "debug", want: "DEBUG"},
		{in: "info", want: "INFO"},
		{in: "warn", want: "WARN"},
		{in: "error", want: "ERROR"},
		{in: "nonsense", want: "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.in).String())
		})
	}
}
