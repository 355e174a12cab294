package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSpecks/Website-Summarizer/internal/catalog"
	"github.com/MrSpecks/Website-Summarizer/internal/credentials"
	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/infrastructure/scraper"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
	"github.com/MrSpecks/Website-Summarizer/internal/usecase"
)

type stubChat struct {
	response string
	err      error
}

func (s stubChat) Complete(ctx context.Context, target domain.BackendTarget, req domain.ChatRequest) (string, error) {
	return s.response, s.err
}

type stubLister struct {
	models []string
	err    error
}

func (s stubLister) ListModels(ctx context.Context, target domain.BackendTarget) ([]string, error) {
	return s.models, s.err
}

type noStore struct{}

func (noStore) Get(name string) (string, bool) { return "", false }

func newTestServer(t *testing.T, chat stubChat, lister stubLister) *Server {
	t.Helper()

	registry := provider.NewRegistry()
	resolver := credentials.NewResolver(noStore{})
	cat := catalog.New(lister, time.Hour, nil)
	sc := scraper.New(nil, nil)

	summarizer := usecase.NewSummarizer(registry, resolver, chat, "", nil)
	pipeline := usecase.NewPipeline(sc, summarizer, nil)

	return New(":0", registry, resolver, cat, pipeline, nil)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) (*httptest.ResponseRecorder, Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestProvidersEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, stubChat{}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodGet, "/api/providers", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	providers := data["providers"].([]any)
	assert.Len(t, providers, 3)

	first := providers[0].(map[string]any)
	assert.Equal(t, "OpenAI", first["name"])
	assert.Equal(t, true, first["remote"])
	assert.Equal(t, "gpt-4o-mini", first["default_model"])
}

func TestModelsUnknownProvider(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, stubChat{}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/models", ModelsRequest{Provider: "Mistral"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Message, "unknown provider")
}

func TestModelsMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	srv := newTestServer(t, stubChat{}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/models", ModelsRequest{Provider: provider.OpenAI})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp.Message, "API key not found")
}

func TestModelsDegradedListCarriesWarning(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, stubChat{}, stubLister{err: context.DeadlineExceeded})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/models", ModelsRequest{
		Provider: provider.OpenAI,
		APIKey:   "sk-test",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Empty(t, data["models"])
	assert.Equal(t, "gpt-4o-mini", data["default_model"])
	assert.Contains(t, data["warning"], "Could not load models")
}

func TestSummarizeRejectsBadURL(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, stubChat{}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/summarize", SummarizeRequest{
		URL:      "ftp://example.com",
		Provider: provider.OpenAI,
		APIKey:   "sk-test",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp.Message, "valid URL")
}

func TestSummarizeScrapeFailure(t *testing.T) {
	t.Parallel()

	pages := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	site := httptest.NewServer(pages)
	t.Cleanup(site.Close)

	srv := newTestServer(t, stubChat{response: "unused"}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/summarize", SummarizeRequest{
		URL:      site.URL,
		Provider: provider.OpenAI,
		APIKey:   "sk-test",
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, resp.Message, "Network error")
}

func TestSummarizeSuccess(t *testing.T) {
	t.Parallel()

	pages := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Example</title></head><body><p>content here</p></body></html>`))
	})
	site := httptest.NewServer(pages)
	t.Cleanup(site.Close)

	srv := newTestServer(t, stubChat{response: "## Markdown summary"}, stubLister{})
	rec, resp := doJSON(t, srv.Handler(), http.MethodPost, "/api/summarize", SummarizeRequest{
		URL:      site.URL,
		Provider: provider.OpenAI,
		APIKey:   "sk-test",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Example", data["title"])
	assert.Equal(t, "## Markdown summary", data["summary"])
}
