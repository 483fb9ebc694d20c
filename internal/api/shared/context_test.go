package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := SetTraceID(context.Background())

	traceID := GetTraceID(ctx)
	require.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	assert.NoError(t, err, "trace ID should be hex encoded")

	assert.NotEqual(t, traceID, GetTraceID(SetTraceID(context.Background())))
}

func TestGetTraceIDWithoutTrace(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
	assert.Empty(t, GetTraceID(context.WithValue(context.Background(), TraceIDKey, 42)))
}

func TestUsernameContext(t *testing.T) {
	_, ok := GetUsername(context.Background())
	assert.False(t, ok)

	_, ok = GetUsername(WithUsername(context.Background(), ""))
	assert.False(t, ok)

	username, ok := GetUsername(WithUsername(context.Background(), "bob"))
	assert.True(t, ok)
	assert.Equal(t, "bob", username)
}
