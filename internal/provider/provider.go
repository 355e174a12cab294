package provider

import (
	"errors"
	"fmt"
)

// Supported provider names. The set is closed; there is no registration API.
const (
	OpenAI     = "OpenAI"
	OpenRouter = "OpenRouter"
	Ollama     = "Ollama (Local)"
)

// ErrUnknownProvider signals a provider name outside the fixed set.
var ErrUnknownProvider = errors.New("unknown provider")

// Backend is a closed variant: a profile is either Remote or Local. Callers
// dispatch with a type switch, which keeps the "local providers skip
// credential resolution" rule an explicit branch.
type Backend interface {
	backend()
}

// Remote describes a hosted OpenAI-compatible API and the names under which
// its credential can be found.
type Remote struct {
	BaseURL    string
	SecretName string
	EnvVar     string
}

// Local describes a backend running on the user's machine, reachable without
// credentials.
type Local struct {
	EndpointURL string
}

func (Remote) backend() {}
func (Local) backend()  {}

// Profile is the static description of one LLM backend.
type Profile struct {
	Name         string
	DefaultModel string
	Backend      Backend
}

// Remote reports whether the profile points at a hosted API.
func (p Profile) Remote() bool {
	_, ok := p.Backend.(Remote)
	return ok
}

// Registry holds the fixed provider table.
type Registry struct {
	order    []string
	profiles map[string]Profile
}

// NewRegistry builds the three built-in profiles.
func NewRegistry() *Registry {
	profiles := []Profile{
		{
			Name:         OpenAI,
			DefaultModel: "gpt-4o-mini",
			Backend: Remote{
				BaseURL:    "https://api.openai.com/v1",
				SecretName: "OPENAI_API_KEY",
				EnvVar:     "OPENAI_API_KEY",
			},
		},
		{
			Name:         OpenRouter,
			DefaultModel: "nousresearch/nous-hermes-2-mixtral-8x7b-dpo",
			Backend: Remote{
				BaseURL:    "https://openrouter.ai/api/v1",
				SecretName: "OPENROUTER_API_KEY",
				EnvVar:     "OPENROUTER_API_KEY",
			},
		},
		{
			Name:         Ollama,
			DefaultModel: "llama2",
			Backend: Local{
				EndpointURL: "http://localhost:11434/v1",
			},
		},
	}

	r := &Registry{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		r.order = append(r.order, p.Name)
		r.profiles[p.Name] = p
	}
	return r
}

// Lookup returns the profile for a provider name.
func (r *Registry) Lookup(name string) (Profile, error) {
	if p, ok := r.profiles[name]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("provider %q: %w", name, ErrUnknownProvider)
}

// Names lists the supported providers in their fixed order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
