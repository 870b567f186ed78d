package prompt

import (
	"context"
	"fmt"
	"log"
	"strings"

	"textproc/internal/core/domain/models"
	"textproc/internal/core/domain/ports"
)

// slot is the single substitution marker every template carries.
const slot = "{text}"

var templates = map[models.Task]string{
	models.TaskSummarize: `Please provide a concise summary of the following text. Focus on the main ideas and key information.
Keep the summary clear and informative, approximately 2-3 sentences.

Text to summarize:
{text}

Summary:`,
	models.TaskExtractKeyPoints: `Please extract the key points from the following text. Present them as a bulleted list.
Focus on the most important information and main arguments.

Text to analyze:
{text}

Key Points:`,
	models.TaskClassify: `Please classify the following text into one of these categories: Opinion, Fact, or News.
Provide the classification and a brief explanation of why it fits that category.

Text to classify:
{text}

Classification:`,
}

// Build substitutes text into the template's slot verbatim. No escaping or
// truncation; input-size limits are the caller's problem.
func Build(template, text string) string {
	return strings.Replace(template, slot, text, 1)
}

// Resolver maps tasks to prompt templates, preferring a remote registry when
// one is configured and always falling back to the built-in table.
type Resolver struct {
	store ports.TemplateStore
}

// NewResolver creates a resolver. A nil store means local templates only.
func NewResolver(store ports.TemplateStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the template for task. Remote fetch failures are logged and
// downgraded to the local template; they never reach the caller.
func (r *Resolver) Resolve(ctx context.Context, task models.Task) (string, error) {
	local, ok := templates[task]
	if !ok {
		return "", fmt.Errorf("no template registered for task %q", task)
	}

	if r.store == nil {
		return local, nil
	}

	remote, err := r.store.FetchTemplate(ctx, task.PromptName())
	if err != nil {
		log.Printf("Registry fetch for %s failed, using local template: %v", task.PromptName(), err)
		return local, nil
	}
	if !strings.Contains(remote, slot) {
		log.Printf("Registry template %s has no %s slot, using local template", task.PromptName(), slot)
		return local, nil
	}

	return remote, nil
}
