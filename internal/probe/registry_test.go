package probe_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/probe"
)

// fakeProber is a scriptable domain.Prober for runner and registry tests.
type fakeProber struct {
	name     string
	variants []domain.HeaderVariant
	results  map[string]*domain.ProbeResult
	probeErr error
	calls    []string
}

func (f *fakeProber) Name() string { return f.name }

func (f *fakeProber) Variants() []domain.HeaderVariant { return f.variants }

func (f *fakeProber) Probe(
	_ context.Context,
	_ *domain.ChatRequest,
	variant domain.HeaderVariant,
) (*domain.ProbeResult, error) {
	f.calls = append(f.calls, variant.Name)

	if f.probeErr != nil {
		return nil, f.probeErr
	}

	if result, ok := f.results[variant.Name]; ok {
		return result, nil
	}

	return &domain.ProbeResult{
		Prober:  f.name,
		Variant: variant.Name,
		OK:      true,
	}, nil
}

func newFakeProber(name string, variantNames ...string) *fakeProber {
	variants := make([]domain.HeaderVariant, len(variantNames))
	for i, variantName := range variantNames {
		variants[i] = domain.HeaderVariant{Name: variantName}
	}
	return &fakeProber{
		name:     name,
		variants: variants,
		results:  make(map[string]*domain.ProbeResult),
	}
}

func TestRegistry_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should register probers", func(t *testing.T) {
		registry := probe.NewRegistry()

		require.NoError(t, registry.Register(ctx, newFakeProber("raw-http", "minimal headers")))

		prober, err := registry.Get(ctx, "raw-http")
		require.NoError(t, err)
		require.Equal(t, "raw-http", prober.Name())
	})

	t.Run("should reject nil probers", func(t *testing.T) {
		registry := probe.NewRegistry()

		err := registry.Register(ctx, nil)

		require.Error(t, err)
		require.Contains(t, err.Error(), "cannot be nil")
	})

	t.Run("should reject unnamed probers", func(t *testing.T) {
		registry := probe.NewRegistry()

		err := registry.Register(ctx, newFakeProber(""))

		require.Error(t, err)
		require.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("should reject duplicate registration", func(t *testing.T) {
		registry := probe.NewRegistry()

		require.NoError(t, registry.Register(ctx, newFakeProber("raw-http")))
		err := registry.Register(ctx, newFakeProber("raw-http"))

		require.Error(t, err)
		require.Contains(t, err.Error(), "already registered")
	})
}

func TestRegistry_Get(t *testing.T) {
	ctx := context.Background()
	registry := probe.NewRegistry()

	t.Run("should fail on empty name", func(t *testing.T) {
		prober, err := registry.Get(ctx, "")

		require.Error(t, err)
		require.Nil(t, prober)
	})

	t.Run("should fail on unknown prober", func(t *testing.T) {
		prober, err := registry.Get(ctx, "missing")

		require.Error(t, err)
		require.Nil(t, prober)
		require.Contains(t, err.Error(), "not found")
	})
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()
	registry := probe.NewRegistry()

	// Registration order must be preserved: probes run in source order.
	for i := 0; i < 5; i++ {
		name := fmt.Sprintf("prober-%d", i)
		require.NoError(t, registry.Register(ctx, newFakeProber(name)))
	}

	names, err := registry.List(ctx)

	require.NoError(t, err)
	require.Equal(t, []string{"prober-0", "prober-1", "prober-2", "prober-3", "prober-4"}, names)
}
