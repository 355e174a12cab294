package usecase

import (
	"context"
	"log/slog"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
)

// Outcome carries everything one scrape-and-summarize interaction produced.
type Outcome struct {
	Scrape  domain.ScrapeResult
	Summary string
}

// Pipeline runs the two-step scrape → summarize workflow for one session.
type Pipeline struct {
	scraper    ports.Scraper
	summarizer *Summarizer
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(scraper ports.Scraper, summarizer *Summarizer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		scraper:    scraper,
		summarizer: summarizer,
		logger:     logger,
	}
}

// Run fetches the page and, only on a successful scrape, asks the backend
// for a summary. Scrape failures come back as data inside the outcome;
// summarization failures come back as the error.
func (p *Pipeline) Run(ctx context.Context, session domain.Session, url string) (Outcome, error) {
	result := p.scraper.Scrape(ctx, url)
	if !result.OK() {
		if p.logger != nil {
			p.logger.Info("scrape failed, skipping summary", "url", url, "error", result.Error)
		}
		return Outcome{Scrape: result}, nil
	}

	summary, err := p.summarizer.Summarize(ctx, session, result.Text, result.Title)
	if err != nil {
		return Outcome{Scrape: result}, err
	}

	return Outcome{Scrape: result, Summary: summary}, nil
}
