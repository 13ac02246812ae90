package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/hdrprobe/internal/observability"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	ctx = observability.WithRunID(ctx, "run-1")
	ctx = observability.WithProber(ctx, "raw-http")
	ctx = observability.WithVariant(ctx, "minimal headers")
	ctx = observability.WithTarget(ctx, "https://example.com/v1/chat/completions")

	require.Equal(t, "run-1", observability.GetRunID(ctx))
	require.Equal(t, "raw-http", observability.GetProber(ctx))
	require.Equal(t, "minimal headers", observability.GetVariant(ctx))
	require.Equal(t, "https://example.com/v1/chat/completions", observability.GetTarget(ctx))
}

func TestContextDefaults(t *testing.T) {
	ctx := context.Background()

	require.Empty(t, observability.GetRunID(ctx))
	require.Empty(t, observability.GetProber(ctx))
	require.Empty(t, observability.GetVariant(ctx))
	require.Empty(t, observability.GetTarget(ctx))
}

func TestGenerateRunID(t *testing.T) {
	first := observability.GenerateRunID()
	second := observability.GenerateRunID()

	require.NotEmpty(t, first)
	require.NotEqual(t, first, second)
	require.Len(t, first, 36) // UUID format
}
