package hotwords

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadJoinsNonEmptyLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotwords.txt")
	content := "  Kubernetes \n\n\tgRPC\r\n   \nPostgreSQL"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if want := "Kubernetes, gRPC, PostgreSQL"; got != want {
		t.Fatalf("Load = %q, want %q", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty hotwords, got %q", got)
	}
}

func TestLoadDisabled(t *testing.T) {
	got, err := Load("")
	if err != nil || got != "" {
		t.Fatalf("Load(\"\") = %q, %v", got, err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotwords.txt")
	if err := os.WriteFile(path, []byte("\n \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil || got != "" {
		t.Fatalf("Load = %q, %v", got, err)
	}
}
