// Package raw probes the upstream with plain net/http requests, one per
// header variant. Because no SDK is involved, the only headers on the wire
// are the base auth headers plus whatever the variant adds, which makes the
// gateway's verdict attributable to the variant alone.
package raw

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/observability"
)

const (
	proberName   = "raw-http"
	maxBodyBytes = 64 << 10 // cap on upstream bodies read for diagnostics
)

// Config contains raw prober settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Timeout    int // seconds
	SnippetLen int
}

// Prober implements the domain.Prober interface using net/http directly.
type Prober struct {
	apiKey     string
	baseURL    string
	snippetLen int
	variants   []domain.HeaderVariant
	httpClient *http.Client
}

// NewProber creates a new raw HTTP prober over the given variant catalog.
func NewProber(cfg Config, catalog []domain.HeaderVariant) (*Prober, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}

	return &Prober{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		snippetLen: cfg.SnippetLen,
		variants:   catalog,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}, nil
}

// Name returns the prober identifier.
func (p *Prober) Name() string {
	return proberName
}

// Variants returns the header variant catalog in probe order.
func (p *Prober) Variants() []domain.HeaderVariant {
	return p.variants
}

// Probe sends a single chat-completion request under the given variant.
func (p *Prober) Probe(
	ctx context.Context,
	req *domain.ChatRequest,
	variant domain.HeaderVariant,
) (*domain.ProbeResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("sending raw probe request")

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+"/chat/completions",
		bytes.NewReader(reqBody),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	// Variant headers override the base headers on collision.
	for key, value := range variant.Headers {
		httpReq.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := p.httpClient.Do(httpReq)
	latency := time.Since(start)

	if err != nil {
		logger.Warn("probe transport error", zap.Error(err))
		return &domain.ProbeResult{
			Prober:     proberName,
			Variant:    variant.Name,
			OK:         false,
			Err:        err.Error(),
			Latency:    latency,
			FinishTime: time.Now(),
		}, nil
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))

	result := &domain.ProbeResult{
		Prober:     proberName,
		Variant:    variant.Name,
		StatusCode: resp.StatusCode,
		Latency:    latency,
		FinishTime: time.Now(),
	}

	if resp.StatusCode == http.StatusOK {
		result.OK = true
		result.Reply = strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
		logger.Debug("probe succeeded", zap.Duration("latency", latency))
		return result, nil
	}

	result.Snippet = truncate(string(body), p.snippetLen)
	result.Upstream = gjson.GetBytes(body, "error.message").String()
	logger.Warn("probe rejected",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", latency))

	return result, nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
