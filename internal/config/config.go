package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/probelab/hdrprobe/internal/history"
)

// Config represents the diagnostic tool configuration.
type Config struct {
	Probe   ProbeConfig
	Capture CaptureConfig
	CORS    CORSConfig
	History history.Config
}

// ProbeConfig contains probe run settings.
type ProbeConfig struct {
	CredentialsFile string `env:"HDRPROBE_CREDENTIALS" envDefault:".openai_config.json"`
	VariantsFile    string `env:"HDRPROBE_VARIANTS"`
	Timeout         int    `env:"HDRPROBE_TIMEOUT"     envDefault:"60"`
	SnippetLen      int    `env:"HDRPROBE_SNIPPET_LEN" envDefault:"100"`
}

// CaptureConfig contains capture server settings.
type CaptureConfig struct {
	Port         int `env:"CAPTURE_PORT"          envDefault:"18888"`
	ReadTimeout  int `env:"CAPTURE_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"CAPTURE_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings for the capture server.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"*"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ProbeConfig
	*CaptureConfig
	*CORSConfig
	*history.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Probe,
		&cfg.Capture,
		&cfg.CORS,
		&cfg.History,
	}
}
