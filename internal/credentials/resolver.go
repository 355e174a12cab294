package credentials

import (
	"fmt"
	"os"

	"github.com/MrSpecks/Website-Summarizer/internal/domain"
	"github.com/MrSpecks/Website-Summarizer/internal/ports"
	"github.com/MrSpecks/Website-Summarizer/internal/provider"
)

// MissingKeyError is raised when no credential source yields a key for a
// remote provider. It is user-recoverable: the message tells the user what
// to supply.
type MissingKeyError struct {
	Provider string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("API key not found. Please enter your %s key in the configuration panel.", e.Provider)
}

// Resolver determines the active API key for a provider. Precedence is
// session value, then secret store, then environment variable.
type Resolver struct {
	store ports.SecretStore
}

// NewResolver wires the managed secret store; store may be nil.
func NewResolver(store ports.SecretStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the first non-empty credential for the profile. Local
// backends never need credentials and short-circuit to an empty key.
func (r *Resolver) Resolve(profile provider.Profile, session domain.Session) (string, error) {
	remote, ok := profile.Backend.(provider.Remote)
	if !ok {
		return "", nil
	}

	if session.APIKey != "" {
		return session.APIKey, nil
	}

	if r.store != nil {
		if v, ok := r.store.Get(remote.SecretName); ok {
			return v, nil
		}
	}

	if v := os.Getenv(remote.EnvVar); v != "" {
		return v, nil
	}

	return "", &MissingKeyError{Provider: profile.Name}
}
