package ports

import (
	"context"

	"textproc/internal/core/domain/models"
)

type Generator interface {
	Generate(ctx context.Context, prompt models.Prompt) (string, error)
	Name() string
}

type TemplateStore interface {
	FetchTemplate(ctx context.Context, name string) (string, error)
}

type UsageTracker interface {
	Track(ctx context.Context, promptName string, prompt models.Prompt, output string) error
}
