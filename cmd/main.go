// Command hdrprobe diagnoses which HTTP request headers make an
// OpenAI-compatible gateway reject chat-completion requests.
//
//	hdrprobe          run the header probes against the configured upstream
//	hdrprobe capture  run a local server that dumps whatever headers arrive
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/dig"

	"github.com/probelab/hdrprobe/internal/capture"
	"github.com/probelab/hdrprobe/internal/config"
	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/history"
	"github.com/probelab/hdrprobe/internal/observability"
	"github.com/probelab/hdrprobe/internal/probe"
	"github.com/probelab/hdrprobe/internal/probe/variants"
	"github.com/probelab/hdrprobe/internal/prober/raw"
	"github.com/probelab/hdrprobe/internal/prober/sdk"
	"github.com/probelab/hdrprobe/internal/report"
)

func main() {
	mode := "probe"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	switch mode {
	case "probe":
		runProbe()
	case "capture":
		runCapture()
	default:
		log.Fatalf("unknown command %q (expected: probe, capture)", mode)
	}
}

func runProbe() {
	container := buildBaseContainer()

	// Credentials: a missing or invalid file is the only fatal startup error.
	provide(container, func(cfg *config.ProbeConfig) (*config.Credentials, error) {
		return config.LoadCredentials(cfg.CredentialsFile)
	})

	// Variant catalog: built-in unless the operator supplied a YAML file.
	provide(container, func(cfg *config.ProbeConfig) ([]domain.HeaderVariant, error) {
		if cfg.VariantsFile != "" {
			return variants.Load(cfg.VariantsFile)
		}
		return variants.Builtin(), nil
	})

	// Prober Registry
	provide(container, func() domain.ProberRegistry {
		return probe.NewRegistry()
	})

	// Register probers (invoked for side effects). Registration order is
	// probe order: raw matrix first, then the two SDK scenarios.
	if err := container.Invoke(func(
		reg domain.ProberRegistry,
		creds *config.Credentials,
		cfg *config.ProbeConfig,
		catalog []domain.HeaderVariant,
	) error {
		ctx := context.Background()

		rawProber, err := raw.NewProber(raw.Config{
			APIKey:     creds.APIKey,
			BaseURL:    creds.BaseURL,
			Timeout:    cfg.Timeout,
			SnippetLen: cfg.SnippetLen,
		}, catalog)
		if err != nil {
			return err
		}
		if err := reg.Register(ctx, rawProber); err != nil {
			return err
		}

		sdkCfg := sdk.Config{
			APIKey:  creds.APIKey,
			BaseURL: creds.BaseURL,
			Timeout: cfg.Timeout,
		}

		defaultHeaders, err := sdk.NewDefaultHeadersProber(sdkCfg)
		if err != nil {
			return err
		}
		if err := reg.Register(ctx, defaultHeaders); err != nil {
			return err
		}

		customTransport, err := sdk.NewTransportProber(sdkCfg)
		if err != nil {
			return err
		}
		return reg.Register(ctx, customTransport)
	}); err != nil {
		log.Fatalf("Failed to register probers: %v", err)
	}

	// Reporting and history
	provide(container, func() domain.Reporter {
		return report.NewConsoleReporter(os.Stdout)
	})
	provide(container, func(cfg *history.Config) domain.HistorySink {
		if !cfg.Enabled() {
			return nil
		}
		return history.NewRedisSink(cfg)
	})

	// Runner
	provide(container, probe.NewRunner)

	err := container.Invoke(func(
		runner *probe.Runner,
		creds *config.Credentials,
		sink domain.HistorySink,
	) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if sink != nil {
			defer sink.Close()
		}

		target := creds.BaseURL + "/chat/completions"
		_, runErr := runner.Run(ctx, target, probe.DiagnosticRequest(creds.Model))
		return runErr
	})
	if err != nil {
		log.Fatalf("Probe run failed: %v", err)
	}
}

func runCapture() {
	container := buildBaseContainer()

	provide(container, func() *capture.Handler {
		return capture.NewHandler(os.Stdout)
	})
	provide(container, capture.NewServer)

	err := container.Invoke(func(server *capture.Server) error {
		return server.Start()
	})
	if err != nil {
		log.Fatalf("Capture server failed: %v", err)
	}
}

// buildBaseContainer wires configuration and logging, shared by both modes.
func buildBaseContainer() *dig.Container {
	container := dig.New()

	provide(container, config.Load)
	provide(container, config.ParseDependenciesConfig)
	provide(container, observability.InitLogger)

	return container
}

func provide(container *dig.Container, constructor interface{}) {
	if err := container.Provide(constructor); err != nil {
		log.Fatalf("Failed to provide dependency: %v", err)
	}
}
