// Package capture runs a local HTTP server that records every inbound
// request's headers and replies with a canned chat completion. Pointing a
// client's base_url at it shows exactly which headers that client puts on
// the wire.
package capture

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/observability"
	"github.com/probelab/hdrprobe/internal/report"
)

const (
	dumpWidth    = 70
	maxDumpBytes = 64 << 10
)

// Handler handles capture requests.
type Handler struct {
	out io.Writer
}

// NewHandler creates a new capture handler writing dumps to out.
func NewHandler(out io.Writer) *Handler {
	return &Handler{out: out}
}

// HandleCapture dumps the inbound request and returns a canned completion.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	h.dumpRequestLine(r)
	h.dumpHeaders(r)
	h.dumpBody(r)

	fmt.Fprintln(h.out, strings.Repeat("-", dumpWidth))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(cannedCompletion()); err != nil {
		observability.FromContext(ctx).Error("failed to encode capture response",
			zap.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it.
		return
	}
}

func (h *Handler) dumpRequestLine(r *http.Request) {
	banner := strings.Repeat("=", dumpWidth)
	fmt.Fprintln(h.out, banner)
	fmt.Fprintf(h.out, "captured: %s %s\n", r.Method, r.URL.Path)
	fmt.Fprintln(h.out, banner)
}

// dumpHeaders prints every header alphabetically, masking credential values.
func (h *Handler) dumpHeaders(r *http.Request) {
	keys := make([]string, 0, len(r.Header))
	for key := range r.Header {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(h.out, "headers:")
	for _, key := range keys {
		for _, value := range r.Header[key] {
			if isSensitiveHeader(key) {
				value = report.MaskSecret(value)
			}
			fmt.Fprintf(h.out, "  %s: %s\n", key, value)
		}
	}
}

// dumpBody prints the request body, re-indented when it is JSON.
func (h *Handler) dumpBody(r *http.Request) {
	if r.Body == nil {
		return
	}

	body, _ := io.ReadAll(io.LimitReader(r.Body, maxDumpBytes))
	if len(body) == 0 {
		return
	}

	fmt.Fprintln(h.out, "body:")

	var parsed map[string]any
	if json.Unmarshal(body, &parsed) == nil {
		if formatted, err := json.MarshalIndent(parsed, "  ", "  "); err == nil {
			fmt.Fprintf(h.out, "  %s\n", formatted)
			return
		}
	}

	fmt.Fprintf(h.out, "  %s\n", body)
}

// isSensitiveHeader reports whether a header value must be masked.
func isSensitiveHeader(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "key") || strings.Contains(lower, "authorization")
}

// cannedCompletion builds the fixed chat-completion response every captured
// request receives, so SDK clients parse it without complaint.
func cannedCompletion() map[string]any {
	return map[string]any{
		"id":      "chatcmpl-capture",
		"object":  "chat.completion",
		"created": 0,
		"model":   "capture",
		"choices": []map[string]any{
			{
				"index": 0,
				"message": map[string]any{
					"role":    "assistant",
					"content": "Headers captured. Check the capture console.",
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]int{
			"prompt_tokens":     10,
			"completion_tokens": 5,
			"total_tokens":      15,
		},
	}
}
