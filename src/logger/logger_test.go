package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-1")
	id, ok := RequestID(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)

	_, ok = RequestID(context.Background())
	assert.False(t, ok)

	assert.NotNil(t, FromContext(ctx))
	assert.Same(t, L, FromContext(context.Background()))
}
