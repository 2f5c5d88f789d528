package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"whisperbatch/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("WHISPERBATCH_NTFY_TOPIC", "")
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "whisperbatch", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if want := filepath.Join(workDir, "_input"); cfg.Paths.InputDir != want {
		t.Fatalf("input dir = %q, want %q", cfg.Paths.InputDir, want)
	}
	if cfg.Paths.OutputRoot != workDir {
		t.Fatalf("output root = %q, want %q", cfg.Paths.OutputRoot, workDir)
	}
	if want := filepath.Join(workDir, "hotwords.txt"); cfg.Paths.HotwordsFile != want {
		t.Fatalf("hotwords file = %q, want %q", cfg.Paths.HotwordsFile, want)
	}
	if cfg.Transcription.Language != "ru" {
		t.Fatalf("language = %q, want ru", cfg.Transcription.Language)
	}
	if cfg.Transcription.Model != "" {
		t.Fatalf("expected empty model for auto selection, got %q", cfg.Transcription.Model)
	}
	if cfg.Transcription.Device != "auto" {
		t.Fatalf("device = %q, want auto", cfg.Transcription.Device)
	}
	if cfg.Report.YAML || cfg.Report.Manifest {
		t.Fatal("expected optional report outputs disabled by default")
	}
	if cfg.NotificationTimeout() != 10 {
		t.Fatalf("notification timeout = %d, want 10", cfg.NotificationTimeout())
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "whisperbatch.toml")

	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(dir, "media")
	cfg.Transcription.Language = "English"
	cfg.Transcription.Model = "Small"
	cfg.Transcription.Device = "CPU"
	cfg.Notifications.NtfyTopic = "https://ntfy.sh/transcripts"
	cfg.Logging.Format = "JSON"

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	loaded, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists=%v, want %q true", resolved, exists, path)
	}
	if loaded.Paths.InputDir != filepath.Join(dir, "media") {
		t.Fatalf("input dir = %q", loaded.Paths.InputDir)
	}
	if loaded.Transcription.Language != "en" {
		t.Fatalf("language = %q, want en", loaded.Transcription.Language)
	}
	if loaded.Transcription.Model != "small" {
		t.Fatalf("model = %q, want small", loaded.Transcription.Model)
	}
	if loaded.Transcription.Device != "cpu" {
		t.Fatalf("device = %q, want cpu", loaded.Transcription.Device)
	}
	if loaded.Logging.Format != "json" {
		t.Fatalf("log format = %q, want json", loaded.Logging.Format)
	}
}

func TestNtfyTopicFromEnvironment(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WHISPERBATCH_NTFY_TOPIC", "https://ntfy.example/batch")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.example/batch" {
		t.Fatalf("ntfy topic = %q", cfg.Notifications.NtfyTopic)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"model", func(c *config.Config) { c.Transcription.Model = "huge" }, "transcription.model"},
		{"device", func(c *config.Config) { c.Transcription.Device = "tpu" }, "transcription.device"},
		{"language", func(c *config.Config) { c.Transcription.Language = "not a language" }, "transcription.language"},
		{"ntfy", func(c *config.Config) { c.Notifications.NtfyTopic = "mytopic" }, "notifications.ntfy_topic"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"batch size", func(c *config.Config) { c.Engine.BatchSize = -1 }, "engine.batch_size"},
		{"settle", func(c *config.Config) { c.Watch.SettleSeconds = -2 }, "watch.settle_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("WHISPERBATCH_NTFY_TOPIC", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Watch.SettleSeconds != 5 {
		t.Fatalf("settle seconds = %d, want 5", cfg.Watch.SettleSeconds)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}
