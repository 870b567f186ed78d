package service

import (
	"context"
	"log"

	"textproc/internal/config"
	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
	"textproc/internal/prompt"
)

const systemPrompt = "You are a helpful assistant that provides clear, concise responses."

// Processor runs a single text-transformation task end to end and packages
// the outcome into a Result envelope.
type Processor struct {
	resolver    *prompt.Resolver
	generator   ports.Generator
	tracker     ports.UsageTracker
	maxTokens   int
	temperature float32
}

// NewProcessor wires a processor from its collaborators. tracker may be nil
// when no registry is configured.
func NewProcessor(cfg *config.Config, resolver *prompt.Resolver, generator ports.Generator, tracker ports.UsageTracker) *Processor {
	return &Processor{
		resolver:    resolver,
		generator:   generator,
		tracker:     tracker,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Process executes task against text. It never returns an error; every
// failure mode is folded into the envelope.
func (p *Processor) Process(ctx context.Context, text string, task models.Task) models.Result {
	if !task.Valid() {
		return models.FailureResult(task, text, models.InvalidTaskMessage(task))
	}

	template, err := p.resolver.Resolve(ctx, task)
	if err != nil {
		return models.FailureResult(task, text, err.Error())
	}

	req := models.Prompt{
		System:      systemPrompt,
		User:        prompt.Build(template, text),
		MaxTokens:   p.maxTokens,
		Temperature: p.temperature,
	}

	output, err := p.generator.Generate(ctx, req)
	if err != nil {
		return models.FailureResult(task, text, err.Error())
	}

	if p.tracker != nil {
		if err := p.tracker.Track(ctx, task.PromptName(), req, output); err != nil {
			log.Printf("Usage tracking for %s failed: %v", task.PromptName(), err)
		}
	}

	return models.SuccessResult(task, text, output)
}
