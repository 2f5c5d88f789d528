package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"whisperbatch/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckNtfy_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"healthy":true}`))
	}))
	defer srv.Close()

	result := CheckNtfy(context.Background(), srv.URL+"/transcripts")
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckNtfy_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if result := CheckNtfy(context.Background(), srv.URL+"/topic"); result.Passed {
		t.Fatal("expected failure for server error")
	}
}

func TestCheckNtfy_InvalidURL(t *testing.T) {
	if result := CheckNtfy(context.Background(), "just-a-topic"); result.Passed {
		t.Fatal("expected failure for bare topic")
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_SkipsMissingInputFolder(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(t.TempDir(), "missing")
	cfg.Paths.OutputRoot = t.TempDir()

	results := RunAll(context.Background(), &cfg)
	if len(results) != 1 || results[0].Name != "Output root" {
		t.Fatalf("expected only the output root check, got %+v", results)
	}
	if !results[0].Passed {
		t.Fatalf("output root check failed: %s", results[0].Detail)
	}
}

func TestRunAll_ChecksExistingInputFolder(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.InputDir = t.TempDir()
	cfg.Paths.OutputRoot = t.TempDir()

	results := RunAll(context.Background(), &cfg)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
}

func TestRequirementsFollowConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Engine.FFmpegBinary = "/opt/ffmpeg"
	reqs := Requirements(&cfg)
	if reqs[0].Command != "/opt/ffmpeg" {
		t.Fatalf("ffmpeg command = %q", reqs[0].Command)
	}
	var notify bool
	for _, r := range reqs {
		if r.Name == "notify-send" {
			notify = true
			if !r.Optional {
				t.Fatal("notify-send should be optional when desktop notices are off")
			}
		}
	}
	if !notify {
		t.Fatal("expected notify-send requirement")
	}
	if len(VersionTools(&cfg)) != 3 {
		t.Fatal("expected three version tools")
	}
}
