package report_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/report"
)

func TestConsoleReporter(t *testing.T) {
	ctx := context.Background()

	t.Run("should print the run banner with target and probe count", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.RunStarted(ctx, "https://gateway.example.com/v1/chat/completions", 8)

		out := buf.String()
		require.Contains(t, out, "request header diagnostics")
		require.Contains(t, out, "https://gateway.example.com/v1/chat/completions")
		require.Contains(t, out, "8 probes")
	})

	t.Run("should print one success line with the reply", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.Report(ctx, &domain.ProbeResult{
			Prober:     "raw-http",
			Variant:    "minimal headers",
			OK:         true,
			StatusCode: 200,
			Reply:      "OK",
			Latency:    152 * time.Millisecond,
		})

		out := buf.String()
		require.Contains(t, out, "✅ raw-http / minimal headers (200, 152ms)")
		require.Contains(t, out, "reply: OK")
	})

	t.Run("should print rejections with the upstream message", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.Report(ctx, &domain.ProbeResult{
			Prober:     "raw-http",
			Variant:    "full sdk headers",
			OK:         false,
			StatusCode: 403,
			Upstream:   "unsupported client",
			Snippet:    `{"error":{"message":"unsupported client"}}`,
		})

		out := buf.String()
		require.Contains(t, out, "❌ raw-http / full sdk headers (403")
		require.Contains(t, out, "upstream: unsupported client")
		require.NotContains(t, out, "body:")
	})

	t.Run("should fall back to the body snippet without an upstream message", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.Report(ctx, &domain.ProbeResult{
			Prober:     "raw-http",
			Variant:    "browser user-agent",
			OK:         false,
			StatusCode: 502,
			Snippet:    "<html>bad gateway</html>",
		})

		require.Contains(t, buf.String(), "body: <html>bad gateway</html>")
	})

	t.Run("should print transport errors", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.Report(ctx, &domain.ProbeResult{
			Prober:  "sdk-custom-transport",
			Variant: "sdk with custom-transport override",
			OK:      false,
			Err:     "dial tcp: connection refused",
		})

		require.Contains(t, buf.String(), "❌ sdk-custom-transport / sdk with custom-transport override: dial tcp: connection refused")
	})

	t.Run("should print the run summary", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		started := time.Now()
		reporter.RunFinished(ctx, &domain.RunSummary{
			RunID:    "run-1",
			Total:    8,
			Passed:   6,
			Failed:   2,
			Started:  started,
			Finished: started.Add(3 * time.Second),
		})

		out := buf.String()
		require.Contains(t, out, "run run-1 finished: 6 passed, 2 failed of 8 (3s)")
	})

	t.Run("should emit exactly one marker line per result", func(t *testing.T) {
		var buf bytes.Buffer
		reporter := report.NewConsoleReporter(&buf)

		reporter.Report(ctx, &domain.ProbeResult{Prober: "raw-http", Variant: "a", OK: true})
		reporter.Report(ctx, &domain.ProbeResult{Prober: "raw-http", Variant: "b", OK: false, StatusCode: 500})

		out := buf.String()
		require.Equal(t, 1, strings.Count(out, "✅"))
		require.Equal(t, 1, strings.Count(out, "❌"))
	})
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "long keys keep head and tail",
			value:    "sk-0123456789abcdefghijklmnop",
			expected: "sk-0123456...mnop",
		},
		{
			name:     "short values are returned unchanged",
			value:    "sk-short",
			expected: "sk-short",
		},
		{
			name:     "empty values stay empty",
			value:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, report.MaskSecret(tt.value))
		})
	}
}
