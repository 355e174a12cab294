package secrets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileStore reads a flat YAML file of key/value secrets once at startup.
// Values stay in memory only; they are never written back or logged.
type FileStore struct {
	values map[string]string
}

// Open loads the secrets file. A missing file is not an error: the store is
// simply empty and resolution falls through to environment variables.
func Open(path string) (*FileStore, error) {
	store := &FileStore{values: map[string]string{}}
	if path == "" {
		return store, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, fmt.Errorf("read secrets file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &store.values); err != nil {
		return nil, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	return store, nil
}

// Get returns the secret stored under name.
func (s *FileStore) Get(name string) (string, bool) {
	if s == nil || name == "" {
		return "", false
	}
	v, ok := s.values[name]
	return v, ok && v != ""
}
