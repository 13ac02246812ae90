package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	// RunIDKey holds the unique identifier of a probe run.
	RunIDKey contextKey = "run_id"

	// ProberKey holds the name of the prober executing the current request.
	ProberKey contextKey = "prober"

	// VariantKey holds the name of the header variant under test.
	VariantKey contextKey = "variant"

	// TargetKey holds the upstream URL being probed.
	TargetKey contextKey = "target"
)

// WithRunID injects the run ID into context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// WithProber injects the prober name into context.
func WithProber(ctx context.Context, prober string) context.Context {
	return context.WithValue(ctx, ProberKey, prober)
}

// WithVariant injects the header variant name into context.
func WithVariant(ctx context.Context, variant string) context.Context {
	return context.WithValue(ctx, VariantKey, variant)
}

// WithTarget injects the target URL into context.
func WithTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, TargetKey, target)
}

// GetRunID extracts the run ID from context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// GetProber extracts the prober name from context.
func GetProber(ctx context.Context) string {
	if prober, ok := ctx.Value(ProberKey).(string); ok {
		return prober
	}
	return ""
}

// GetVariant extracts the header variant name from context.
func GetVariant(ctx context.Context) string {
	if variant, ok := ctx.Value(VariantKey).(string); ok {
		return variant
	}
	return ""
}

// GetTarget extracts the target URL from context.
func GetTarget(ctx context.Context) string {
	if target, ok := ctx.Value(TargetKey).(string); ok {
		return target
	}
	return ""
}

// GenerateRunID generates a unique run identifier (UUID).
func GenerateRunID() string {
	return uuid.New().String()
}
