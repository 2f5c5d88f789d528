package watcher

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"whisperbatch/internal/batch"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/logging"
	"whisperbatch/internal/report"
)

func scanRunner(dir string, batches chan<- []string) RunFunc {
	return func(_ context.Context, keep func(inventory.MediaFile) bool) (report.RunReport, error) {
		files, err := inventory.Scan(dir)
		if err != nil {
			return report.RunReport{}, err
		}
		var picked []string
		for _, f := range files {
			if keep(f) {
				picked = append(picked, f.Name)
			}
		}
		if len(picked) == 0 {
			return report.RunReport{}, batch.ErrNoFiles
		}
		batches <- picked
		return report.RunReport{}, nil
	}
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestWatcherRunsOnlyNewFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.wav"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	batches := make(chan []string, 4)
	svc := New(dir, 50*time.Millisecond, scanRunner(dir, batches), logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	if got := waitBatch(t, batches); !slices.Equal(got, []string{"existing.wav"}) {
		t.Fatalf("first batch = %v", got)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fresh.mp3"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := waitBatch(t, batches); !slices.Equal(got, []string{"fresh.mp3"}) {
		t.Fatalf("second batch = %v", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherRetriesLockedFolder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.wav"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	batches := make(chan []string, 4)
	inner := scanRunner(dir, batches)
	calls := 0
	run := func(ctx context.Context, keep func(inventory.MediaFile) bool) (report.RunReport, error) {
		calls++
		if calls == 1 {
			return report.RunReport{}, batch.ErrLocked
		}
		return inner(ctx, keep)
	}

	svc := New(dir, 20*time.Millisecond, run, logging.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = svc.Start(ctx) }()

	if got := waitBatch(t, batches); !slices.Equal(got, []string{"a.wav"}) {
		t.Fatalf("batch after retry = %v", got)
	}
}

func TestStartFailsForMissingFolder(t *testing.T) {
	svc := New(filepath.Join(t.TempDir(), "missing"), time.Second, nil, nil)
	if err := svc.Start(context.Background()); err == nil {
		t.Fatal("expected error for missing folder")
	}
}
