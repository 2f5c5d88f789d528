package inventory

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestScanFiltersByExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.mp4"), 10)
	writeFile(t, filepath.Join(dir, "b.txt"), 10)
	writeFile(t, filepath.Join(dir, "c.wav"), 20)

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d (%v)", len(files), files)
	}
	if files[0].Name != "a.mp4" || files[1].Name != "c.wav" {
		t.Fatalf("unexpected files %v", files)
	}
	if files[1].Size != 20 {
		t.Fatalf("size = %d, want 20", files[1].Size)
	}
	if files[0].Path != filepath.Join(dir, "a.mp4") {
		t.Fatalf("path = %q", files[0].Path)
	}
	if !files[0].IsVideo() || files[1].IsVideo() {
		t.Fatal("IsVideo misclassified files")
	}
}

func TestScanIsCaseInsensitiveAndSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "LOUD.MP3"), 1)
	writeFile(t, filepath.Join(dir, "Clip.MkV"), 1)
	if err := os.Mkdir(filepath.Join(dir, "folder.wav"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "noext"), 1)

	files, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	for _, f := range files {
		if f.Ext != ".mp3" && f.Ext != ".mkv" {
			t.Fatalf("extension not lower-cased: %q", f.Ext)
		}
	}
}

func TestScanEmptyAndMissing(t *testing.T) {
	files, err := Scan(t.TempDir())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %v", files)
	}
	if _, err := Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestMediaFileHelpers(t *testing.T) {
	file := MediaFile{Name: "talk.final.mp4", Ext: ".mp4", Size: 3 << 20}
	if file.BaseName() != "talk.final" {
		t.Fatalf("BaseName() = %q", file.BaseName())
	}
	if file.SizeMB() != 3 {
		t.Fatalf("SizeMB() = %v", file.SizeMB())
	}
}

func TestFormatParseDurationRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 59, 60, 61, 599, 3599, 3600, 3661, 86399, 360000} {
		formatted := FormatDuration(n)
		parsed, err := ParseDuration(formatted)
		if err != nil {
			t.Fatalf("ParseDuration(%q) returned error: %v", formatted, err)
		}
		if parsed != n {
			t.Fatalf("round trip %d -> %q -> %d", n, formatted, parsed)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:    "00:00",
		75:   "01:15",
		3599: "59:59",
		3600: "01:00:00",
		3725: "01:02:05",
		-5:   "00:00",
	}
	for in, want := range tests {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDurationRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "12", "1:2:3:4", "aa:bb", "01:75", "-1:00"} {
		if _, err := ParseDuration(in); err == nil {
			t.Fatalf("ParseDuration(%q) expected error", in)
		}
	}
}

type stubProber struct {
	seconds float64
	err     error
	panics  bool
}

func (s stubProber) Duration(context.Context, string) (float64, error) {
	if s.panics {
		panic("boom")
	}
	return s.seconds, s.err
}

func TestProbeDuration(t *testing.T) {
	file := MediaFile{Path: "/in/a.wav"}
	ctx := context.Background()

	info := ProbeDuration(ctx, stubProber{seconds: 61.9}, file)
	if !info.OK() || info.Seconds != 61 || info.Human != "01:01" {
		t.Fatalf("unexpected info %+v", info)
	}

	failures := []DurationProber{
		stubProber{err: errors.New("probe failed")},
		stubProber{seconds: math.NaN()},
		stubProber{seconds: -1},
		stubProber{panics: true},
		nil,
	}
	for i, prober := range failures {
		if info := ProbeDuration(ctx, prober, file); info.OK() {
			t.Fatalf("case %d: expected failure, got %+v", i, info)
		}
	}
}
