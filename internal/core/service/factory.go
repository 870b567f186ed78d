package service

import (
	"textproc/internal/adapters/generation"
	"textproc/internal/adapters/registry"
	"textproc/internal/config"
	"textproc/internal/core/domain/ports"
)

func CreateGenerator(cfg *config.Config) ports.Generator {
	switch cfg.GenerationBackend {
	case "ollama":
		return generation.NewOllamaClient(cfg.OllamaHost, cfg.OllamaModel, cfg.LogLevel)
	default:
		return generation.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "", cfg.LogLevel)
	}
}

// CreateRegistry returns the prompt-registry client, or nil when none is
// configured. The nil case means local templates and no usage tracking.
func CreateRegistry(cfg *config.Config) *registry.Client {
	if cfg.RegistryBaseURL == "" {
		return nil
	}
	return registry.NewClient(cfg.RegistryBaseURL, cfg.RegistryAPIKey, cfg.LogLevel)
}
