package prompt_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"textproc/internal/core/domain/models"
	"textproc/internal/prompt"
)

// mockTemplateStore implements ports.TemplateStore
type mockTemplateStore struct {
	template string
	err      error
	calls    int
}

func (m *mockTemplateStore) FetchTemplate(ctx context.Context, name string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.template, nil
}

func TestResolve_LocalTemplates(t *testing.T) {
	r := prompt.NewResolver(nil)

	for _, task := range models.AllTasks() {
		tpl, err := r.Resolve(context.Background(), task)
		if err != nil {
			t.Fatalf("Resolve(%s) failed: %v", task, err)
		}
		if !strings.Contains(tpl, "{text}") {
			t.Errorf("template for %s has no {text} slot", task)
		}
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := prompt.NewResolver(nil)

	first, err := r.Resolve(context.Background(), models.TaskSummarize)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Resolve(context.Background(), models.TaskSummarize)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Resolve returned different templates for the same task")
	}
}

func TestResolve_UnknownTask(t *testing.T) {
	r := prompt.NewResolver(nil)

	if _, err := r.Resolve(context.Background(), models.Task("bogus_task")); err == nil {
		t.Error("expected error for unknown task, got nil")
	}
}

func TestResolve_RemoteOverride(t *testing.T) {
	store := &mockTemplateStore{template: "Custom summary prompt:\n{text}\nGo:"}
	r := prompt.NewResolver(store)

	tpl, err := r.Resolve(context.Background(), models.TaskSummarize)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if tpl != store.template {
		t.Errorf("expected remote template, got %q", tpl)
	}
	if store.calls != 1 {
		t.Errorf("expected 1 registry call, got %d", store.calls)
	}
}

func TestResolve_RemoteFailureFallsBack(t *testing.T) {
	store := &mockTemplateStore{err: errors.New("connection refused")}
	r := prompt.NewResolver(store)

	tpl, err := r.Resolve(context.Background(), models.TaskClassify)
	if err != nil {
		t.Fatalf("Resolve must not propagate registry failures, got: %v", err)
	}

	local, _ := prompt.NewResolver(nil).Resolve(context.Background(), models.TaskClassify)
	if tpl != local {
		t.Error("expected fallback to local template")
	}
}

func TestResolve_RemoteWithoutSlotFallsBack(t *testing.T) {
	store := &mockTemplateStore{template: "no substitution slot here"}
	r := prompt.NewResolver(store)

	tpl, err := r.Resolve(context.Background(), models.TaskSummarize)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tpl, "{text}") {
		t.Error("expected fallback to a template with a {text} slot")
	}
}

func TestBuild_VerbatimSubstitution(t *testing.T) {
	got := prompt.Build("Before {text} after", `raw "input" with {braces}`)
	want := `Before raw "input" with {braces} after`
	if got != want {
		t.Errorf("Build = %q, want %q", got, want)
	}
}
