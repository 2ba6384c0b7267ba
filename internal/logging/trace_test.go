package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestID(t *testing.T) {
	id1 := NewRequestID()
	id2 := NewRequestID()

	assert.Len(t, id1, 16)
	assert.NotEqual(t, id1, id2)
}

func TestWithRequestID(t *testing.T) {
	ctx := context.Background()

	ctx1 := WithRequestID(ctx, "test-id-123")
	assert.Equal(t, "test-id-123", GetRequestID(ctx1))

	ctx2 := WithRequestID(ctx, "")
	assert.Len(t, GetRequestID(ctx2), 16)
}

func TestGetRequestIDEmpty(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestEnsureRequestID(t *testing.T) {
	ctx, id := EnsureRequestID(context.Background())
	assert.Len(t, id, 16)
	assert.Equal(t, id, GetRequestID(ctx))

	same, again := EnsureRequestID(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)
}

func TestRequestIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewRequestID()
		assert.False(t, seen[id], "duplicate ID generated: %s", id)
		seen[id] = true
	}
}
