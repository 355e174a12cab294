package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
)

// DefaultTTL bounds how stale a cached model list may get.
const DefaultTTL = time.Hour

type cacheKey struct {
	provider string
	apiKey   string
}

type cacheEntry struct {
	models  []string
	fetched time.Time
}

// Service lists the models a backend offers, with a TTL cache keyed by
// (provider, key) so repeated UI interactions do not hammer the catalog
// endpoint. Listing failures degrade to an empty list; the cause is logged
// so it stays observable.
type Service struct {
	lister ports.ModelLister
	logger *slog.Logger
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// New builds a catalog service; ttl <= 0 selects DefaultTTL.
func New(lister ports.ModelLister, ttl time.Duration, logger *slog.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		lister:  lister,
		logger:  logger,
		ttl:     ttl,
		now:     time.Now,
		entries: map[cacheKey]cacheEntry{},
	}
}

// Models returns the sorted model identifiers for a remote profile, or nil
// for local profiles (no network call is made). An empty list means the
// catalog could not be determined and the caller should fall back to the
// profile's default model.
func (s *Service) Models(ctx context.Context, profile provider.Profile, apiKey string) []string {
	remote, ok := profile.Backend.(provider.Remote)
	if !ok {
		return nil
	}

	key := cacheKey{provider: profile.Name, apiKey: apiKey}

	s.mu.Lock()
	entry, cached := s.entries[key]
	s.mu.Unlock()
	if cached && s.now().Sub(entry.fetched) < s.ttl {
		return copyOf(entry.models)
	}

	models, err := s.lister.ListModels(ctx, domain.BackendTarget{
		BaseURL: remote.BaseURL,
		APIKey:  apiKey,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("model catalog unavailable", "provider", profile.Name, "error", err)
		}
		// The degraded empty list is cached for the full window as well,
		// so a dead or misconfigured backend is probed at most once per TTL.
		models = nil
	}

	s.mu.Lock()
	s.entries[key] = cacheEntry{models: models, fetched: s.now()}
	s.mu.Unlock()

	return copyOf(models)
}

func copyOf(models []string) []string {
	if len(models) == 0 {
		return nil
	}
	out := make([]string, len(models))
	copy(out, models)
	return out
}
