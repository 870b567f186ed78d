package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel string `env:"TP_LOG_LEVEL" envDefault:"info"`

	GenerationBackend string `env:"TP_GENERATION_BACKEND" envDefault:"openai"`

	OpenAIAPIKey string `env:"TP_OPENAI_API_KEY"`
	OpenAIModel  string `env:"TP_OPENAI_MODEL" envDefault:"gpt-4"`

	OllamaHost  string `env:"TP_OLLAMA_HOST" envDefault:"http://localhost:11434"`
	OllamaModel string `env:"TP_OLLAMA_MODEL" envDefault:"llama3"`

	MaxTokens   int     `env:"TP_MAX_TOKENS" envDefault:"500"`
	Temperature float32 `env:"TP_TEMPERATURE" envDefault:"0.7"`

	RegistryBaseURL string `env:"TP_REGISTRY_BASE_URL"`
	RegistryAPIKey  string `env:"TP_REGISTRY_API_KEY"`
}

func (c *Config) Validate() error {
	switch c.GenerationBackend {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("TP_OPENAI_API_KEY not found in environment variables")
		}
	case "ollama":
		// Local backend needs no credential.
	default:
		return fmt.Errorf("TP_GENERATION_BACKEND must be 'openai' or 'ollama', got %q", c.GenerationBackend)
	}

	if c.MaxTokens < 1 {
		return fmt.Errorf("TP_MAX_TOKENS must be at least 1")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("TP_TEMPERATURE must be between 0 and 2")
	}

	if c.RegistryBaseURL != "" && c.RegistryAPIKey == "" {
		return fmt.Errorf("TP_REGISTRY_API_KEY is required when TP_REGISTRY_BASE_URL is set")
	}

	return nil
}

// Load reads configuration from the environment (and an optional .env file).
// A validation failure is returned rather than aborting the process, so the
// caller can report it through the normal result envelope.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
