// Package probe orchestrates a diagnostic run: every registered prober is
// executed sequentially over its header variants, outcomes are reported one
// line at a time and optionally persisted for later comparison.
package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/observability"
)

// DiagnosticRequest returns the fixed chat payload used by every probe.
func DiagnosticRequest(model string) *domain.ChatRequest {
	return &domain.ChatRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []domain.Message{
			{Role: "user", Content: "Hello, reply with OK."},
		},
	}
}

// Runner executes probers sequentially and fans results out to the reporter
// and the optional history sink.
type Runner struct {
	registry domain.ProberRegistry
	reporter domain.Reporter
	sink     domain.HistorySink // may be nil
}

// NewRunner creates a new probe runner (DI constructor).
func NewRunner(registry domain.ProberRegistry, reporter domain.Reporter, sink domain.HistorySink) *Runner {
	return &Runner{
		registry: registry,
		reporter: reporter,
		sink:     sink,
	}
}

// Run executes all registered probers in registration order, one variant at a
// time. A failing probe never stops the run; only context cancellation does.
func (r *Runner) Run(ctx context.Context, target string, req *domain.ChatRequest) (*domain.RunSummary, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	runID := observability.GenerateRunID()
	ctx = observability.WithRunID(ctx, runID)
	ctx = observability.WithTarget(ctx, target)

	names, err := r.registry.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list probers: %w", err)
	}

	if len(names) == 0 {
		return nil, errors.New("no probers registered")
	}

	summary := &domain.RunSummary{
		RunID:   runID,
		Target:  target,
		Started: time.Now(),
	}

	logger := observability.FromContext(ctx)
	logger.Info("probe run started",
		zap.String("model", req.Model),
		zap.Int("probers", len(names)))

	r.reporter.RunStarted(ctx, target, r.countVariants(ctx, names))

	for _, name := range names {
		prober, getErr := r.registry.Get(ctx, name)
		if getErr != nil {
			return nil, fmt.Errorf("failed to get prober %s: %w", name, getErr)
		}

		if runErr := r.runProber(ctx, prober, req, summary); runErr != nil {
			return nil, runErr
		}
	}

	summary.Finished = time.Now()
	r.reporter.RunFinished(ctx, summary)

	logger.Info("probe run finished",
		zap.Int("total", summary.Total),
		zap.Int("passed", summary.Passed),
		zap.Int("failed", summary.Failed))

	return summary, nil
}

// runProber executes all variants of a single prober sequentially.
func (r *Runner) runProber(
	ctx context.Context,
	prober domain.Prober,
	req *domain.ChatRequest,
	summary *domain.RunSummary,
) error {
	proberCtx := observability.WithProber(ctx, prober.Name())

	for _, variant := range prober.Variants() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("probe run cancelled: %w", err)
		}

		variantCtx := observability.WithVariant(proberCtx, variant.Name)

		result, err := prober.Probe(variantCtx, req, variant)
		if err != nil {
			// Prober contract violation, not an upstream failure; surface it
			// as a failed result so the run keeps going.
			result = &domain.ProbeResult{
				Prober:     prober.Name(),
				Variant:    variant.Name,
				OK:         false,
				Err:        err.Error(),
				FinishTime: time.Now(),
			}
		}

		r.record(variantCtx, summary, result)
	}

	return nil
}

// record updates the summary, reports the result and persists it.
func (r *Runner) record(ctx context.Context, summary *domain.RunSummary, result *domain.ProbeResult) {
	summary.Total++
	if result.OK {
		summary.Passed++
	} else {
		summary.Failed++
	}

	r.reporter.Report(ctx, result)

	if r.sink == nil {
		return
	}

	if err := r.sink.Append(ctx, summary.RunID, result); err != nil {
		observability.FromContext(ctx).Warn("failed to store probe result",
			zap.Error(err))
	}
}

// countVariants returns the total number of probes the run will issue.
func (r *Runner) countVariants(ctx context.Context, names []string) int {
	total := 0
	for _, name := range names {
		if prober, err := r.registry.Get(ctx, name); err == nil {
			total += len(prober.Variants())
		}
	}
	return total
}
