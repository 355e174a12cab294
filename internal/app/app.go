package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/MrSpecks/Website-Summarizer/internal/catalog"
	"github.com/MrSpecks/Website-Summarizer/internal/config"
	"github.com/MrSpecks/Website-Summarizer/internal/credentials"
	"github.com/MrSpecks/Website-Summarizer/internal/infrastructure/llm"
	"github.com/MrSpecks/Website-Summarizer/internal/infrastructure/scraper"
	"github.com/MrSpecks/Website-Summarizer/internal/logging"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
	"github.com/MrSpecks/Website-Summarizer/internal/secrets"
	"github.com/MrSpecks/Website-Summarizer/internal/server"
	"github.com/MrSpecks/Website-Summarizer/internal/usecase"
)

// Application wires configs to components and lifecycle orchestration.
type Application struct {
	cfg    config.Config
	server *server.Server
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store, err := secrets.Open(cfg.Secrets.File)
	if err != nil {
		return nil, err
	}

	registry := provider.NewRegistry()
	resolver := credentials.NewResolver(store)

	chat := llm.NewClient(nil, cfg.LLM.Timeout())
	cat := catalog.New(chat, cfg.LLM.CatalogTTL(), logging.Component(baseLogger, "catalog"))

	fetcher := scraper.New(
		&http.Client{Timeout: cfg.Scrape.Timeout()},
		logging.Component(baseLogger, "scraper"),
	)

	summarizer := usecase.NewSummarizer(registry, resolver, chat, cfg.LLM.OllamaEndpoint, logging.Component(baseLogger, "summarizer"))
	pipeline := usecase.NewPipeline(fetcher, summarizer, logging.Component(baseLogger, "pipeline"))

	srv := server.New(cfg.Server.Addr, registry, resolver, cat, pipeline, logging.Component(baseLogger, "server"))

	return &Application{cfg: cfg, server: srv, logger: baseLogger}, nil
}

// Run serves HTTP until the context is canceled.
func (a *Application) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}
