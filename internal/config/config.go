package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

type Provider string

const (
	GeminiProvider Provider = "gemini"
	OpenAiProvider Provider = "openai"
)

func (p Provider) Valid() bool {
	return p == GeminiProvider || p == OpenAiProvider
}

type Config struct {
	Port                  string        `env:"PORT" envDefault:"3000"`
	ModelProvider         Provider      `env:"MODEL_PROVIDER" envDefault:"gemini"`
	GeminiKey             string        `env:"GEMINI_API_KEY"`
	GeminiModel           string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiBaseUrl         string        `env:"GEMINI_BASE_URL"`
	OpenAiKey             string        `env:"OPENAI_API_KEY"`
	OpenAiBaseUrl         string        `env:"OPENAI_BASE_URL"`
	OpenAiModel           string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	VariantFile           string        `env:"VARIANT_FILE"`
	MaxUploadSizeBytes    int64         `env:"MAX_UPLOAD_SIZE_BYTES" envDefault:"33554432"`
	ShutdownTimeout       time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	TelemetryProvider     string        `env:"TELEMETRY_PROVIDER" envDefault:"statsd"`
	StatsEnabled          bool          `env:"STATS_ENABLED" envDefault:"false"`
	StatsAddress          string        `env:"STATS_ADDRESS" envDefault:"127.0.0.1:8125"`
	PrometheusEnabled     bool          `env:"PROMETHEUS_ENABLED" envDefault:"false"`
	PrometheusPort        string        `env:"PROMETHEUS_PORT" envDefault:"2112"`
	OpenTelemetryEnabled  bool          `env:"OTEL_ENABLED" envDefault:"false"`
	OpenTelemetryEndpoint string        `env:"OTEL_ENDPOINT" envDefault:"localhost:4318"`
}

// LoadDotEnv reads the given .env files into the process environment.
// Files that do not exist are skipped; variables already set are kept.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}

	existing := []string{}
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	return godotenv.Load(existing...)
}

func ParseEnvVariables() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if !c.ModelProvider.Valid() {
		return fmt.Errorf("model provider must be of %s or %s", GeminiProvider, OpenAiProvider)
	}

	if c.ModelProvider == GeminiProvider && len(c.GeminiKey) == 0 {
		return errors.New("GEMINI_API_KEY is not configured")
	}

	if c.ModelProvider == OpenAiProvider && len(c.OpenAiKey) == 0 {
		return errors.New("OPENAI_API_KEY is not configured")
	}

	if c.MaxUploadSizeBytes <= 0 {
		return errors.New("max upload size must be positive")
	}

	return nil
}

// Model returns the model identifier sent with every outbound call.
func (c *Config) Model() string {
	if c.ModelProvider == OpenAiProvider {
		return c.OpenAiModel
	}

	return c.GeminiModel
}
