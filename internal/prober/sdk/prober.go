// Package sdk probes the upstream through the official OpenAI Go SDK. The
// SDK stamps its own identification headers onto every request, so these
// probers check whether overriding the User-Agent, either via SDK options or
// at the transport layer, is enough to get past a rejecting gateway.
package sdk

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/observability"
	"github.com/probelab/hdrprobe/internal/transport"
)

// OverrideUserAgent replaces the SDK's default User-Agent in both probe modes.
const OverrideUserAgent = "Mozilla/5.0"

// Config contains SDK prober settings.
type Config struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds
}

// Prober implements the domain.Prober interface on top of the OpenAI SDK.
// Each instance runs exactly one scenario, described by its single variant.
type Prober struct {
	name    string
	variant domain.HeaderVariant
	client  openai.Client
}

// NewDefaultHeadersProber creates a prober that overrides the User-Agent via
// the SDK's request options.
func NewDefaultHeadersProber(cfg Config) (*Prober, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}

	opts = append(opts, option.WithHeader("User-Agent", OverrideUserAgent))

	return &Prober{
		name: "sdk-default-headers",
		variant: domain.HeaderVariant{
			Name:    "sdk with default-headers override",
			Headers: map[string]string{"User-Agent": OverrideUserAgent},
		},
		client: openai.NewClient(opts...),
	}, nil
}

// NewTransportProber creates a prober that overrides the User-Agent below the
// SDK, inside a header-injecting http.RoundTripper.
func NewTransportProber(cfg Config) (*Prober, error) {
	opts, err := baseOptions(cfg)
	if err != nil {
		return nil, err
	}

	httpClient := transport.NewClient(
		time.Duration(cfg.Timeout)*time.Second,
		map[string]string{"User-Agent": OverrideUserAgent},
	)
	opts = append(opts, option.WithHTTPClient(httpClient))

	return &Prober{
		name: "sdk-custom-transport",
		variant: domain.HeaderVariant{
			Name:    "sdk with custom-transport override",
			Headers: map[string]string{"User-Agent": OverrideUserAgent},
		},
		client: openai.NewClient(opts...),
	}, nil
}

func baseOptions(cfg Config) ([]option.RequestOption, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(cfg.Timeout)*time.Second))
	}

	return opts, nil
}

// Name returns the prober identifier.
func (p *Prober) Name() string {
	return p.name
}

// Variants returns the single scenario this prober runs.
func (p *Prober) Variants() []domain.HeaderVariant {
	return []domain.HeaderVariant{p.variant}
}

// Probe sends one chat completion through the SDK.
func (p *Prober) Probe(
	ctx context.Context,
	req *domain.ChatRequest,
	variant domain.HeaderVariant,
) (*domain.ProbeResult, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("sending SDK probe request")

	params := toSDKParams(req)

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, params)
	latency := time.Since(start)

	if err != nil {
		logger.Warn("SDK probe failed", zap.Error(err))
		return &domain.ProbeResult{
			Prober:     p.name,
			Variant:    variant.Name,
			OK:         false,
			Err:        err.Error(),
			Latency:    latency,
			FinishTime: time.Now(),
		}, nil
	}

	content := ""
	if len(resp.Choices) > 0 {
		content = strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	logger.Debug("SDK probe succeeded", zap.Duration("latency", latency))

	return &domain.ProbeResult{
		Prober:     p.name,
		Variant:    variant.Name,
		OK:         true,
		StatusCode: 200,
		Reply:      content,
		Latency:    latency,
		FinishTime: time.Now(),
	}, nil
}

// toSDKParams converts the diagnostic request to SDK ChatCompletionNewParams.
func toSDKParams(req *domain.ChatRequest) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, len(req.Messages))
	for i, msg := range req.Messages {
		switch msg.Role {
		case "assistant":
			messages[i] = openai.AssistantMessage(msg.Content)
		case "system":
			messages[i] = openai.SystemMessage(msg.Content)
		default:
			messages[i] = openai.UserMessage(msg.Content)
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(req.Model),
		Messages: messages,
	}

	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	return params
}
