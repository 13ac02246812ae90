// Package variants defines the header combinations sent during a probe run.
// The built-in catalog reproduces the headers the OpenAI SDKs attach by
// default, so a rejecting gateway can be narrowed down to the exact header
// it objects to. Operators can replace the catalog with a YAML file.
package variants

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/probelab/hdrprobe/internal/domain"
)

// Header values mirroring what the OpenAI Python SDK sends.
const (
	sdkUserAgent     = "OpenAI/Python 1.59.9"
	sdkLang          = "python"
	sdkVersion       = "1.59.9"
	sdkRuntime       = "CPython"
	sdkRuntimeVer    = "3.11.2"
	sdkArch          = "x64"
	sdkOS            = "Linux"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// Builtin returns the default header variant catalog in probe order. Base
// headers (Authorization, Content-Type) are always set by the prober; the
// catalog only carries the headers under suspicion.
func Builtin() []domain.HeaderVariant {
	return []domain.HeaderVariant{
		{
			Name:    "minimal headers",
			Headers: nil,
		},
		{
			Name: "openai user-agent",
			Headers: map[string]string{
				"User-Agent": sdkUserAgent,
			},
		},
		{
			Name: "x-stainless headers",
			Headers: map[string]string{
				"X-Stainless-Lang":            sdkLang,
				"X-Stainless-Package-Version": sdkVersion,
				"X-Stainless-Runtime":         sdkRuntime,
				"X-Stainless-Runtime-Version": sdkRuntimeVer,
			},
		},
		{
			Name: "full sdk headers",
			Headers: map[string]string{
				"User-Agent":                  sdkUserAgent,
				"X-Stainless-Lang":            sdkLang,
				"X-Stainless-Package-Version": sdkVersion,
				"X-Stainless-Runtime":         sdkRuntime,
				"X-Stainless-Runtime-Version": sdkRuntimeVer,
				"X-Stainless-Arch":            sdkArch,
				"X-Stainless-OS":              sdkOS,
			},
		},
		{
			Name: "bare openai user-agent",
			Headers: map[string]string{
				"User-Agent": "OpenAI",
			},
		},
		{
			Name: "browser user-agent",
			Headers: map[string]string{
				"User-Agent": browserUserAgent,
			},
		},
	}
}

// Load reads a YAML variant catalog from disk, replacing the built-in one.
func Load(path string) ([]domain.HeaderVariant, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("variants file %s: %w", path, err)
	}

	var catalog []domain.HeaderVariant
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse variants file %s: %w", path, err)
	}

	if err := validate(catalog); err != nil {
		return nil, fmt.Errorf("invalid variants file %s: %w", path, err)
	}

	return catalog, nil
}

// validate rejects empty catalogs, unnamed variants and duplicate names.
func validate(catalog []domain.HeaderVariant) error {
	if len(catalog) == 0 {
		return fmt.Errorf("catalog contains no variants")
	}

	seen := make(map[string]bool, len(catalog))
	for i, variant := range catalog {
		if variant.Name == "" {
			return fmt.Errorf("variant %d has no name", i)
		}
		if seen[variant.Name] {
			return fmt.Errorf("duplicate variant name: %s", variant.Name)
		}
		seen[variant.Name] = true
	}

	return nil
}
