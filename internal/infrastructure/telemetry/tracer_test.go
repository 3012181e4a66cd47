package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/optivista/backend/internal/infrastructure/config"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	cfg := &config.TelemetryConfig{Enabled: false}

	tp, err := NewTracerProvider(context.Background(), cfg, "optivista", "test", zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))
}
