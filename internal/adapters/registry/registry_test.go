package registry_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textproc/internal/adapters/registry"
	"textproc/internal/core/domain/models"
)

func TestFetchTemplate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/prompt-templates/text_processor_summarize", r.URL.Path)
		assert.Equal(t, "latest", r.URL.Query().Get("version"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"text_processor_summarize","version":3,"template":"Summarize: {text}"}`))
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	tpl, err := client.FetchTemplate(context.Background(), "text_processor_summarize")
	require.NoError(t, err)
	assert.Equal(t, "Summarize: {text}", tpl)
}

func TestFetchTemplate_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such template", http.StatusNotFound)
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	_, err := client.FetchTemplate(context.Background(), "text_processor_summarize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchTemplate_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	_, err := client.FetchTemplate(context.Background(), "text_processor_classify")
	require.Error(t, err)
}

func TestFetchTemplate_EmptyTemplate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"text_processor_classify","version":1,"template":""}`))
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	_, err := client.FetchTemplate(context.Background(), "text_processor_classify")
	require.Error(t, err)
}

func TestTrack(t *testing.T) {
	var got struct {
		PromptName string `json:"prompt_name"`
		Input      string `json:"input"`
		Output     string `json:"output"`
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/track", r.URL.Path)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	err := client.Track(context.Background(), "text_processor_classify",
		models.Prompt{User: "built prompt"}, "model output")
	require.NoError(t, err)
	assert.Equal(t, "text_processor_classify", got.PromptName)
	assert.Equal(t, "built prompt", got.Input)
	assert.Equal(t, "model output", got.Output)
}

func TestTrack_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := registry.NewClient(ts.URL, "secret", "info")

	err := client.Track(context.Background(), "x", models.Prompt{}, "y")
	require.Error(t, err)
}
