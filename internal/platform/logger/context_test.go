package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Skarbonka1/serwerfinal/internal/platform/logger"
	"github.com/stretchr/testify/assert"
)

func TestFromContext_ReturnsStoredLogger(t *testing.T) {
	t.Parallel()

	stored := slog.Default().With("component", "test")
	ctx := logger.WithContext(context.Background(), stored)

	assert.Same(t, stored, logger.FromContext(ctx))
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	assert.NotNil(t, logger.FromContext(context.Background()))
}

func TestFromContextOrDefault_PrefersContextLogger(t *testing.T) {
	t.Parallel()

	stored := slog.Default().With("component", "stored")
	fallback := slog.Default().With("component", "fallback")

	ctx := logger.WithContext(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
}
