package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"whisperbatch/internal/batch"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/logging"
	"whisperbatch/internal/report"
)

// RunFunc runs one batch over the files accepted by keep.
type RunFunc func(ctx context.Context, keep func(inventory.MediaFile) bool) (report.RunReport, error)

// Service watches one folder and triggers batches.
type Service struct {
	dir    string
	run    RunFunc
	logger *slog.Logger
	settle time.Duration
	onRun  func(report.RunReport)

	handled map[string]struct{}
}

// New creates a watcher for dir. A non-positive settle uses one second.
func New(dir string, settle time.Duration, run RunFunc, logger *slog.Logger) *Service {
	if settle <= 0 {
		settle = time.Second
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Service{
		dir:     dir,
		run:     run,
		logger:  logging.NewComponentLogger(logger, "watcher"),
		settle:  settle,
		handled: make(map[string]struct{}),
	}
}

// OnRun registers a callback for every completed batch.
func (s *Service) OnRun(fn func(report.RunReport)) {
	s.onRun = fn
}

// Start blocks until ctx is canceled. Files already present when watching
// begins are processed by the first batch.
func (s *Service) Start(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close() //nolint:errcheck

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("add watch path: %w", err)
	}
	s.logger.Info("folder watcher started",
		logging.String("dir", s.dir),
		logging.Duration("settle", s.settle),
	)

	settleTimer := time.NewTimer(0)
	pending := true

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("folder watcher stopping")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !relevant(ev) {
				continue
			}
			s.logger.Debug("media change detected", logging.String("path", ev.Name), logging.String("op", ev.Op.String()))
			if !settleTimer.Stop() {
				select {
				case <-settleTimer.C:
				default:
				}
			}
			settleTimer.Reset(s.settle)
			pending = true

		case err, ok := <-w.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			s.logger.Error("fsnotify error", logging.Error(err))

		case <-settleTimer.C:
			if !pending {
				continue
			}
			pending = false
			if retry := s.runBatch(ctx); retry {
				settleTimer.Reset(s.settle)
				pending = true
			}
		}
	}
}

func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return inventory.Supported(filepath.Base(ev.Name))
}

// runBatch runs one batch and reports whether it should be retried later.
func (s *Service) runBatch(ctx context.Context) bool {
	selected := make([]string, 0)
	keep := func(f inventory.MediaFile) bool {
		if _, done := s.handled[f.Path]; done {
			return false
		}
		s.handled[f.Path] = struct{}{}
		selected = append(selected, f.Name)
		return true
	}

	rep, err := s.run(ctx, keep)
	switch {
	case errors.Is(err, batch.ErrNoFiles):
		s.logger.Debug("no new media files")
		return false
	case errors.Is(err, batch.ErrLocked):
		logging.WarnWithContext(s.logger, "input folder busy", "watch_locked",
			logging.Error(err),
			logging.String(logging.FieldImpact, "batch retried after the settle interval"),
		)
		return true
	case err != nil:
		s.logger.Error("watch batch failed", logging.Error(err), logging.Int("files", len(selected)))
		return false
	}

	s.logger.Info("watch batch finished",
		logging.Int("files", len(selected)),
		logging.Int("succeeded", len(rep.Successes)),
		logging.Int("failed", len(rep.Failures)),
		logging.String("output_dir", rep.OutputDir),
	)
	if s.onRun != nil {
		s.onRun(rep)
	}
	return false
}
