//go:build linux

package resources

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadMemAvailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meminfo")
	content := "MemTotal:       16384000 kB\nMemFree:         1000000 kB\nMemAvailable:    8388608 kB\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write meminfo: %v", err)
	}
	gb, ok := readMemAvailable(path)
	if !ok {
		t.Fatal("expected MemAvailable to parse")
	}
	if gb != 8 {
		t.Fatalf("MemAvailable = %v GB, want 8", gb)
	}
}

func TestReadMemAvailableMissingField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meminfo")
	if err := os.WriteFile(path, []byte("MemTotal: 1 kB\n"), 0o644); err != nil {
		t.Fatalf("write meminfo: %v", err)
	}
	if _, ok := readMemAvailable(path); ok {
		t.Fatal("expected missing MemAvailable to report not ok")
	}
	if _, ok := readMemAvailable(filepath.Join(t.TempDir(), "absent")); ok {
		t.Fatal("expected unreadable file to report not ok")
	}
}

func TestAvailableMemoryGBNeverNegative(t *testing.T) {
	if gb := AvailableMemoryGB(); gb < 0 {
		t.Fatalf("AvailableMemoryGB() = %v", gb)
	}
}
