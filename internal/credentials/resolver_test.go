package credentials

import (
	"errors"
	"testing"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
)

type mapStore map[string]string

func (m mapStore) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok && v != ""
}

func openAIProfile(t *testing.T) provider.Profile {
	t.Helper()
	profile, err := provider.NewRegistry().Lookup(provider.OpenAI)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	return profile
}

func TestResolvePrecedence(t *testing.T) {
	profile := openAIProfile(t)
	store := mapStore{"OPENAI_API_KEY": "B"}
	t.Setenv("OPENAI_API_KEY", "C")

	r := NewResolver(store)

	key, err := r.Resolve(profile, domain.Session{Provider: provider.OpenAI, APIKey: "A"})
	if err != nil || key != "A" {
		t.Fatalf("session key should win, got %q, %v", key, err)
	}

	key, err = r.Resolve(profile, domain.Session{Provider: provider.OpenAI})
	if err != nil || key != "B" {
		t.Fatalf("secret store should win over env, got %q, %v", key, err)
	}

	key, err = NewResolver(mapStore{}).Resolve(profile, domain.Session{Provider: provider.OpenAI})
	if err != nil || key != "C" {
		t.Fatalf("env var should be the last fallback, got %q, %v", key, err)
	}
}

func TestResolveMissingKey(t *testing.T) {
	profile := openAIProfile(t)
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewResolver(mapStore{}).Resolve(profile, domain.Session{Provider: provider.OpenAI})

	var missing *MissingKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingKeyError, got %v", err)
	}
	if missing.Provider != provider.OpenAI {
		t.Fatalf("unexpected provider in error: %s", missing.Provider)
	}
}

func TestResolveLocalShortCircuits(t *testing.T) {
	t.Parallel()

	profile, err := provider.NewRegistry().Lookup(provider.Ollama)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	key, err := NewResolver(nil).Resolve(profile, domain.Session{Provider: provider.Ollama})
	if err != nil {
		t.Fatalf("local backend must not require credentials: %v", err)
	}
	if key != "" {
		t.Fatalf("expected empty key for local backend, got %q", key)
	}
}
