package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenMissingFileYieldsEmptyStore(t *testing.T) {
	t.Parallel()

	store, err := Open(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if _, ok := store.Get("OPENAI_API_KEY"); ok {
		t.Fatal("empty store must not resolve secrets")
	}
}

func TestOpenReadsValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte("OPENAI_API_KEY: sk-from-store\nEMPTY_KEY: \"\"\n"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	v, ok := store.Get("OPENAI_API_KEY")
	if !ok || v != "sk-from-store" {
		t.Fatalf("unexpected value: %q, %v", v, ok)
	}
	if _, ok := store.Get("EMPTY_KEY"); ok {
		t.Fatal("empty values must not count as present")
	}
	if _, ok := store.Get("UNKNOWN"); ok {
		t.Fatal("unknown names must not resolve")
	}
}

func TestOpenRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "secrets.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := Open(path); err == nil {
		t.Fatal("expected parse error")
	}
}
