package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrSpecks/Website-Summarizer/internal/credentials"
	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
)

const (
	summaryTemperature = 0.3
	summaryMaxTokens   = 1000

	// Local backends ignore authentication, but the client calling
	// convention requires a non-empty token. If a local backend ever
	// starts honoring auth this placeholder would be sent verbatim.
	localPlaceholderKey = "ollama_local_key"

	systemPrompt = "You are an assistant that analyzes the contents of a website or web application " +
		"and provides a comprehensive summary of the website's content, ignoring navigation " +
		"elements and focusing on the main information. Respond in markdown format with " +
		"clear headings and bullet points."

	userPromptFormat = "You are looking at a website titled '%s'\n\n" +
		"The contents of this website are as follows; please provide a detailed summary " +
		"of this website in markdown. If it includes news or announcements, then " +
		"summarize these too. Focus on the main content and key information.\n\n%s"
)

// SummarizationError wraps any failure from the completion call. There is
// intentionally no retry; the cause is surfaced to the user verbatim.
type SummarizationError struct {
	Cause error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed: %v", e.Cause)
}

func (e *SummarizationError) Unwrap() error {
	return e.Cause
}

// Summarizer turns cleaned page text into a markdown summary via the
// session-selected backend.
type Summarizer struct {
	registry      *provider.Registry
	resolver      *credentials.Resolver
	chat          ports.ChatCompleter
	localEndpoint string
	logger        *slog.Logger
}

// NewSummarizer wires the provider table, credential resolution, and the
// chat client. localEndpoint is the deployment-configured default for local
// backends; a session override still wins, the profile default is the last
// resort.
func NewSummarizer(registry *provider.Registry, resolver *credentials.Resolver, chat ports.ChatCompleter, localEndpoint string, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		registry:      registry,
		resolver:      resolver,
		chat:          chat,
		localEndpoint: localEndpoint,
		logger:        logger,
	}
}

// Summarize validates the session's provider, resolves its backend target,
// and performs the single chat-completion call of the pipeline. Provider
// and credential errors are returned before any network traffic.
func (s *Summarizer) Summarize(ctx context.Context, session domain.Session, text, title string) (string, error) {
	profile, err := s.registry.Lookup(session.Provider)
	if err != nil {
		return "", err
	}

	var target domain.BackendTarget
	switch backend := profile.Backend.(type) {
	case provider.Remote:
		key, err := s.resolver.Resolve(profile, session)
		if err != nil {
			return "", err
		}
		target = domain.BackendTarget{BaseURL: backend.BaseURL, APIKey: key}
	case provider.Local:
		endpoint := session.EndpointURL
		if endpoint == "" {
			endpoint = s.localEndpoint
		}
		if endpoint == "" {
			endpoint = backend.EndpointURL
		}
		target = domain.BackendTarget{BaseURL: endpoint, APIKey: localPlaceholderKey}
	}

	model := session.Model
	if model == "" {
		model = profile.DefaultModel
	}

	if s.logger != nil {
		s.logger.Info("requesting summary", "provider", profile.Name, "model", model, "chars", len(text))
	}

	summary, err := s.chat.Complete(ctx, target, domain.ChatRequest{
		Model:        model,
		SystemPrompt: systemPrompt,
		UserPrompt:   fmt.Sprintf(userPromptFormat, title, text),
		Temperature:  summaryTemperature,
		MaxTokens:    summaryMaxTokens,
	})
	if err != nil {
		return "", &SummarizationError{Cause: err}
	}

	return summary, nil
}
