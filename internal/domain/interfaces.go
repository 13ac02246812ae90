package domain

import "context"

// Prober issues one diagnostic request per header variant.
type Prober interface {
	// Name returns the prober identifier.
	Name() string

	// Variants returns the header variants this prober runs, in order.
	Variants() []HeaderVariant

	// Probe sends a single chat-completion request under the given variant.
	// Transport and upstream failures are carried in the result; an error is
	// returned only for invalid input.
	Probe(ctx context.Context, req *ChatRequest, variant HeaderVariant) (*ProbeResult, error)
}

// ProberRegistry manages available probers in registration order.
type ProberRegistry interface {
	// Register adds a prober to the registry.
	Register(ctx context.Context, prober Prober) error

	// Get retrieves a prober by name.
	Get(ctx context.Context, proberName string) (Prober, error)

	// List returns all registered prober names in registration order.
	List(ctx context.Context) ([]string, error)
}

// Reporter renders probe outcomes for the operator.
type Reporter interface {
	// RunStarted announces a probe run against the target.
	RunStarted(ctx context.Context, target string, total int)

	// Report renders a single probe result.
	Report(ctx context.Context, result *ProbeResult)

	// RunFinished renders the run summary.
	RunFinished(ctx context.Context, summary *RunSummary)
}

// HistorySink persists probe results for later comparison between runs.
type HistorySink interface {
	// Append stores a probe result under the given run ID.
	Append(ctx context.Context, runID string, result *ProbeResult) error

	// Close releases the underlying connection.
	Close() error
}
