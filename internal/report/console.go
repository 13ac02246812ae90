// Package report renders probe outcomes for the operator. Report output goes
// to stdout; structured logs are a separate concern handled by zap.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/probelab/hdrprobe/internal/domain"
)

const bannerWidth = 70

// ConsoleReporter implements the domain.Reporter interface on an io.Writer.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a console reporter.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// RunStarted announces a probe run against the target.
func (r *ConsoleReporter) RunStarted(_ context.Context, target string, total int) {
	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, banner)
	fmt.Fprintln(r.out, "request header diagnostics")
	fmt.Fprintln(r.out, banner)
	fmt.Fprintf(r.out, "target: %s (%d probes)\n\n", target, total)
}

// Report renders a single probe result as one line, plus an optional detail line.
func (r *ConsoleReporter) Report(_ context.Context, result *domain.ProbeResult) {
	label := fmt.Sprintf("%s / %s", result.Prober, result.Variant)
	latency := result.Latency.Round(time.Millisecond)

	switch {
	case result.OK:
		fmt.Fprintf(r.out, "✅ %s (200, %v)\n", label, latency)
		if result.Reply != "" {
			fmt.Fprintf(r.out, "   reply: %s\n", result.Reply)
		}
	case result.Err != "":
		fmt.Fprintf(r.out, "❌ %s: %s\n", label, result.Err)
	default:
		fmt.Fprintf(r.out, "❌ %s (%d, %v)\n", label, result.StatusCode, latency)
		if result.Upstream != "" {
			fmt.Fprintf(r.out, "   upstream: %s\n", result.Upstream)
		} else if result.Snippet != "" {
			fmt.Fprintf(r.out, "   body: %s\n", result.Snippet)
		}
	}

	fmt.Fprintln(r.out)
}

// RunFinished renders the run summary.
func (r *ConsoleReporter) RunFinished(_ context.Context, summary *domain.RunSummary) {
	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.out, banner)
	fmt.Fprintf(r.out, "run %s finished: %d passed, %d failed of %d (%v)\n",
		summary.RunID,
		summary.Passed,
		summary.Failed,
		summary.Total,
		summary.Finished.Sub(summary.Started).Round(time.Millisecond))
	fmt.Fprintln(r.out, banner)
}
