package report

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"whisperbatch/internal/deps"
	"whisperbatch/internal/engine"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/resources"
	"whisperbatch/internal/services"
)

func media(name string, size int64) inventory.MediaFile {
	return inventory.MediaFile{Path: "/in/" + name, Name: name, Ext: filepath.Ext(name), Size: size}
}

func TestSpeedRatio(t *testing.T) {
	if got := SpeedRatio(60, 10*time.Second); got != 6 {
		t.Fatalf("SpeedRatio(60, 10s) = %v, want 6", got)
	}
	if got := SpeedRatio(60, 0); got != 0 {
		t.Fatalf("SpeedRatio with zero elapsed = %v, want 0", got)
	}
	if got := SpeedRatio(60, -time.Second); got != 0 {
		t.Fatalf("SpeedRatio with negative elapsed = %v, want 0", got)
	}
	if got := SpeedRatio(-5, time.Second); got != 0 {
		t.Fatalf("SpeedRatio with negative media = %v, want 0", got)
	}
}

func TestNewSuccessDerivesSpeed(t *testing.T) {
	o := NewSuccess(media("a.wav", 3<<20), "/out/a.txt", 10*time.Second, inventory.DurationInfo{Human: "01:00", Seconds: 60})
	if o.Kind != KindSuccess || o.SpeedRatio != 6 || o.MediaSeconds != 60 {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if o.SizeMB() != 3 {
		t.Fatalf("SizeMB() = %v", o.SizeMB())
	}
	neg := NewSuccess(media("b.wav", 1), "/out/b.txt", -time.Second, inventory.DurationInfo{Seconds: 10})
	if neg.Elapsed != 0 || neg.SpeedRatio != 0 {
		t.Fatalf("negative elapsed not clamped: %+v", neg)
	}
}

func TestNewFailureClassifies(t *testing.T) {
	cause := services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", "", errors.New("exit 1"))
	o := NewFailure(media("a.mp4", 1), "extraction failed", cause)
	if o.Kind != KindFailure || o.Reason != "extraction failed" || o.Category != "external_tool" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	if NewFailure(media("a.mp4", 1), "duration probe failed", nil).Category != "" {
		t.Fatal("expected empty category without cause")
	}
}

func TestAggregatorPreservesOrderAndTotals(t *testing.T) {
	agg := NewAggregator()
	agg.Record(NewSuccess(media("1.wav", 1), "/o/1.txt", 10*time.Second, inventory.DurationInfo{Human: "01:00", Seconds: 60}))
	agg.Record(NewFailure(media("2.mp4", 1), "duration probe failed", nil))
	agg.Record(NewSuccess(media("3.wav", 1), "/o/3.txt", 30*time.Second, inventory.DurationInfo{Human: "02:00", Seconds: 120}))
	agg.Record(NewFailure(media("4.mp4", 1), "engine failed", nil))

	if agg.Count() != 4 {
		t.Fatalf("Count() = %d", agg.Count())
	}
	r := agg.Finalize(time.Minute, Meta{Version: "v1"})
	if r.Total() != 4 || len(r.Successes) != 2 || len(r.Failures) != 2 {
		t.Fatalf("unexpected partition: %d successes %d failures", len(r.Successes), len(r.Failures))
	}
	if r.Successes[0].File.Name != "1.wav" || r.Successes[1].File.Name != "3.wav" {
		t.Fatal("success order not preserved")
	}
	if r.Failures[0].File.Name != "2.mp4" || r.Failures[1].File.Name != "4.mp4" {
		t.Fatal("failure order not preserved")
	}
	if r.TotalMediaSeconds != 180 || r.TotalElapsed != 40*time.Second {
		t.Fatalf("totals = %d, %v", r.TotalMediaSeconds, r.TotalElapsed)
	}
	if r.AverageSpeed != 4.5 {
		t.Fatalf("AverageSpeed = %v, want 4.5", r.AverageSpeed)
	}
	if r.RunElapsed != time.Minute {
		t.Fatalf("RunElapsed = %v", r.RunElapsed)
	}
}

func TestFinalizeEmptyGuardsAverage(t *testing.T) {
	r := NewAggregator().Finalize(0, Meta{})
	if r.AverageSpeed != 0 || math.IsNaN(r.AverageSpeed) {
		t.Fatalf("AverageSpeed = %v, want 0", r.AverageSpeed)
	}
}

func sampleReport() RunReport {
	agg := NewAggregator()
	agg.Record(NewSuccess(media("talk.mp4", 5<<20), "/out/talk.txt", 10*time.Second, inventory.DurationInfo{Human: "01:00", Seconds: 60}))
	agg.Record(NewFailure(media("broken.wav", 10), "duration probe failed", nil))
	return agg.Finalize(75*time.Second, Meta{
		Version:      "v24",
		RunID:        "run-123",
		Engine:       engine.Info{Name: "WhisperX", Version: "3.4.2"},
		Config:       engine.Config{Tier: engine.TierSmall, Device: engine.DeviceCPU, Language: "ru", Hotwords: "alpha, beta"},
		Environment:  []resources.Fact{{Label: "OS", Value: "Linux 6.1"}},
		Dependencies: []deps.Version{{Name: "ffmpeg", Version: deps.NotInstalled}},
	})
}

func TestRenderSectionOrder(t *testing.T) {
	doc := Render(sampleReport())

	order := []string{
		"Transcription report v24",
		"=== Successfully transcribed (1) ===",
		"talk.mp4",
		"Size: 5.00 MB",
		"Processing time: 10.00 s (00:10)",
		"Speed: 6.00x",
		"=== Failed (1) ===",
		"Reason: duration probe failed",
		"=== Transcription parameters ===",
		"Model: small",
		"Language: ru (Russian)",
		"Hotwords: alpha, beta",
		"=== Environment ===",
		"OS: Linux 6.1",
		"=== Dependency versions ===",
		"not installed",
		"=== Statistics ===",
		"Average speed: 6.00x",
		"=== About the speed metric ===",
		"Total run time: 01:15",
	}
	pos := 0
	for _, want := range order {
		idx := strings.Index(doc[pos:], want)
		if idx < 0 {
			t.Fatalf("missing %q after offset %d in:\n%s", want, pos, doc)
		}
		pos += idx + len(want)
	}
}

func TestRenderEmptyLists(t *testing.T) {
	doc := Render(NewAggregator().Finalize(time.Second, Meta{Version: "v24"}))
	if !strings.Contains(doc, "=== Failed (0) ===\n0 files\n") {
		t.Fatalf("expected empty failure section, got:\n%s", doc)
	}
	if !strings.Contains(doc, "=== Successfully transcribed (0) ===\n0 files\n") {
		t.Fatalf("expected empty success section, got:\n%s", doc)
	}
	if !strings.Contains(doc, "Files processed successfully: 0\n") {
		t.Fatalf("expected zero-success statistics, got:\n%s", doc)
	}
	if !strings.Contains(doc, "Hotwords: (none)") {
		t.Fatalf("expected hotwords placeholder, got:\n%s", doc)
	}
}

func TestWriteAndWriteYAML(t *testing.T) {
	dir := t.TempDir()
	r := sampleReport()

	path, err := Write(dir, r)
	if err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Fatalf("path = %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != Render(r) {
		t.Fatal("written report differs from Render output")
	}

	yamlPath, err := WriteYAML(dir, r)
	if err != nil {
		t.Fatalf("WriteYAML returned error: %v", err)
	}
	raw, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	stats, ok := decoded["statistics"].(map[string]any)
	if !ok {
		t.Fatalf("missing statistics in %v", decoded)
	}
	if stats["succeeded"] != 1 || stats["failed"] != 1 {
		t.Fatalf("unexpected statistics %v", stats)
	}
	if decoded["run_id"] != "run-123" {
		t.Fatalf("run_id = %v", decoded["run_id"])
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sampleReport())
	for _, want := range []string{
		"Processed 2 file(s): 1 succeeded, 1 failed",
		"talk.mp4",
		"6.00x",
		"Failed files:",
		"broken.wav: duration probe failed",
		SpeedNote,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	empty := Summary(NewAggregator().Finalize(0, Meta{}))
	if strings.Contains(empty, "Failed files:") || strings.Contains(empty, "Average speed") {
		t.Fatalf("empty summary should omit lists and averages:\n%s", empty)
	}
}
