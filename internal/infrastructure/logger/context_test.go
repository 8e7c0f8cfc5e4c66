package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestContextHelpers(t *testing.T) {
	t.Run("round-trips the logger through context", func(t *testing.T) {
		base := zap.NewNop()
		ctx := WithContext(context.Background(), base)
		assert.Same(t, base, FromContext(ctx))
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("stores and retrieves the request ID", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-42")
		assert.Equal(t, "req-42", GetRequestID(ctx))
		assert.Same(t, enriched, FromContext(ctx))
	})

	t.Run("request ID is empty when never set", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
	})
}
