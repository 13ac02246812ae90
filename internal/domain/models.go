package domain

import "time"

// ChatRequest represents the chat-completion payload sent to the upstream.
type ChatRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature,omitempty"`
	Messages    []Message `json:"messages"`
}

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // user, assistant, system
	Content string `json:"content"`
}

// HeaderVariant is one header combination under test. Headers are applied on
// top of the prober's base headers and override them on key collision.
type HeaderVariant struct {
	Name    string            `json:"name"    yaml:"name"`
	Headers map[string]string `json:"headers" yaml:"headers"`
}

// ProbeResult captures the outcome of a single probe request.
type ProbeResult struct {
	Prober     string        `json:"prober"`
	Variant    string        `json:"variant"`
	OK         bool          `json:"ok"`
	StatusCode int           `json:"status_code,omitempty"`
	Reply      string        `json:"reply,omitempty"`
	Snippet    string        `json:"snippet,omitempty"`
	Upstream   string        `json:"upstream_error,omitempty"`
	Err        string        `json:"error,omitempty"`
	Latency    time.Duration `json:"latency"`
	FinishTime time.Time     `json:"finish_time"`
}

// RunSummary aggregates the outcome of a full probe run.
type RunSummary struct {
	RunID    string    `json:"run_id"`
	Target   string    `json:"target"`
	Total    int       `json:"total"`
	Passed   int       `json:"passed"`
	Failed   int       `json:"failed"`
	Started  time.Time `json:"started"`
	Finished time.Time `json:"finished"`
}
