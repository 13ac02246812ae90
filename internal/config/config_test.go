package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/hdrprobe/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, ".openai_config.json", cfg.Probe.CredentialsFile)
		require.Empty(t, cfg.Probe.VariantsFile)
		require.Equal(t, 60, cfg.Probe.Timeout)
		require.Equal(t, 100, cfg.Probe.SnippetLen)
		require.Equal(t, 18888, cfg.Capture.Port)
		require.Equal(t, 30, cfg.Capture.ReadTimeout)
		require.Equal(t, 30, cfg.Capture.WriteTimeout)
		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		require.Empty(t, cfg.History.Addr)
		require.Equal(t, 168, cfg.History.TTLHours)
		require.False(t, cfg.History.Enabled())
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		// Set environment variables using t.Setenv for automatic cleanup
		t.Setenv("HDRPROBE_CREDENTIALS", "/etc/hdrprobe/creds.json")
		t.Setenv("HDRPROBE_VARIANTS", "variants.yaml")
		t.Setenv("HDRPROBE_TIMEOUT", "120")
		t.Setenv("HDRPROBE_SNIPPET_LEN", "200")
		t.Setenv("CAPTURE_PORT", "9999")
		t.Setenv("REDIS_ADDR", "localhost:6379")
		t.Setenv("HISTORY_TTL_HOURS", "24")

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify loaded values
		require.Equal(t, "/etc/hdrprobe/creds.json", cfg.Probe.CredentialsFile)
		require.Equal(t, "variants.yaml", cfg.Probe.VariantsFile)
		require.Equal(t, 120, cfg.Probe.Timeout)
		require.Equal(t, 200, cfg.Probe.SnippetLen)
		require.Equal(t, 9999, cfg.Capture.Port)
		require.Equal(t, "localhost:6379", cfg.History.Addr)
		require.Equal(t, 24, cfg.History.TTLHours)
		require.True(t, cfg.History.Enabled())
	})
}
