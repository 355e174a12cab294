package ports

import (
	"context"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
)

// Scraper fetches one page and converts it to cleaned text. Failures are
// captured inside the result, never returned as errors.
type Scraper interface {
	Scrape(ctx context.Context, url string) domain.ScrapeResult
}

// ChatCompleter performs one chat-completion exchange against a backend.
type ChatCompleter interface {
	Complete(ctx context.Context, target domain.BackendTarget, req domain.ChatRequest) (string, error)
}

// ModelLister queries a backend's model-catalog endpoint.
type ModelLister interface {
	ListModels(ctx context.Context, target domain.BackendTarget) ([]string, error)
}

// SecretStore resolves managed secrets by name.
type SecretStore interface {
	Get(name string) (string, bool)
}
