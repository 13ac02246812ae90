package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/probelab/hdrprobe/internal/history"
)

func TestConfig_Enabled(t *testing.T) {
	tests := []struct {
		name    string
		config  history.Config
		enabled bool
	}{
		{
			name:    "disabled without an address",
			config:  history.Config{},
			enabled: false,
		},
		{
			name:    "enabled with an address",
			config:  history.Config{Addr: "localhost:6379"},
			enabled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.enabled, tt.config.Enabled())
		})
	}
}

func TestRunKey(t *testing.T) {
	require.Equal(t, "hdrprobe:run:abc-123", history.RunKey("abc-123"))
}
