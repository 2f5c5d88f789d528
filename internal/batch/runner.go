package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"whisperbatch/internal/deps"
	"whisperbatch/internal/engine"
	"whisperbatch/internal/hotwords"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/logging"
	"whisperbatch/internal/manifest"
	"whisperbatch/internal/notifications"
	"whisperbatch/internal/report"
	"whisperbatch/internal/resources"
)

// LockFileName is the lock taken inside the input folder for the whole run.
const LockFileName = ".whisperbatch.lock"

const outputTimestampLayout = "2006-01-02_15-04-05"

// AudioExtractor converts a video container into a mono WAV file.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, source, dest string) error
}

// InfoProvider is implemented by engines that can report their version.
type InfoProvider interface {
	Info(ctx context.Context) engine.Info
}

// Options are the per-run settings resolved from config and flags.
type Options struct {
	InputDir     string
	OutputRoot   string
	HotwordsFile string
	Language     string
	// Model is the requested tier. Empty selects one from available memory.
	Model  string
	Device string

	Version  string
	YAML     bool
	Manifest bool
}

// Dependencies are the collaborators a Runner drives. Nil optional fields
// fall back to defaults.
type Dependencies struct {
	Engine    engine.Engine
	Extractor AudioExtractor
	Prober    inventory.DurationProber
	Probe     *resources.Probe
	Notifier  notifications.Notifier
	// Versions lists external tool and module versions for the report.
	Versions func(ctx context.Context) []deps.Version
	Logger   *slog.Logger
	// Console receives progress lines and the notification fallback.
	Console io.Writer
	Now     func() time.Time
	NewID   func() string
}

// Runner executes batch runs.
type Runner struct {
	opts      Options
	engine    engine.Engine
	extractor AudioExtractor
	prober    inventory.DurationProber
	probe     *resources.Probe
	notifier  notifications.Notifier
	versions  func(ctx context.Context) []deps.Version
	logger    *slog.Logger
	console   io.Writer
	now       func() time.Time
	newID     func() string
}

// New builds a Runner. Engine, Extractor and Prober are required.
func New(opts Options, d Dependencies) (*Runner, error) {
	if d.Engine == nil || d.Extractor == nil || d.Prober == nil {
		return nil, errors.New("batch runner requires engine, extractor, and prober")
	}
	r := &Runner{
		opts:      opts,
		engine:    d.Engine,
		extractor: d.Extractor,
		prober:    d.Prober,
		probe:     d.Probe,
		notifier:  d.Notifier,
		versions:  d.Versions,
		logger:    d.Logger,
		console:   d.Console,
		now:       d.Now,
		newID:     d.NewID,
	}
	if r.probe == nil {
		r.probe = resources.New()
	}
	if r.notifier == nil {
		r.notifier = notifications.Noop{}
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	r.logger = logging.NewComponentLogger(r.logger, "batch")
	if r.console == nil {
		r.console = io.Discard
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	return r, nil
}

// Run processes every eligible file in the input folder.
func (r *Runner) Run(ctx context.Context) (report.RunReport, error) {
	return r.RunFiltered(ctx, nil)
}

// RunFiltered processes the eligible files for which keep returns true. A nil
// keep selects every file.
func (r *Runner) RunFiltered(ctx context.Context, keep func(inventory.MediaFile) bool) (report.RunReport, error) {
	started := r.now()

	if err := EnsureInputDir(r.opts.InputDir); err != nil {
		return report.RunReport{}, err
	}

	lock := flock.New(filepath.Join(r.opts.InputDir, LockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return report.RunReport{}, fmt.Errorf("acquire input lock: %w", err)
	}
	if !ok {
		return report.RunReport{}, fmt.Errorf("%w: %s", ErrLocked, r.opts.InputDir)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release input lock", logging.Error(err))
		}
	}()

	files, err := inventory.Scan(r.opts.InputDir)
	if err != nil {
		return report.RunReport{}, err
	}
	if keep != nil {
		files = filterFiles(files, keep)
	}
	if len(files) == 0 {
		return report.RunReport{}, ErrNoFiles
	}

	runID := r.newID()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	facts := r.probe.Snapshot(ctx)
	cfg, err := r.engineConfig(logger, facts)
	if err != nil {
		return report.RunReport{}, err
	}

	outputDir := filepath.Join(r.opts.OutputRoot, started.Format(outputTimestampLayout)+"_"+string(cfg.Tier))
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return report.RunReport{}, fmt.Errorf("create output folder: %w", err)
	}

	meta := report.Meta{
		Version:     r.opts.Version,
		RunID:       runID,
		InputDir:    r.opts.InputDir,
		OutputDir:   outputDir,
		StartedAt:   started,
		Engine:      r.engineInfo(ctx),
		Config:      cfg,
		Environment: resources.Environment(facts),
	}
	if r.versions != nil {
		meta.Dependencies = r.versions(ctx)
	}

	logger.Info("batch run started",
		logging.String("input_dir", r.opts.InputDir),
		logging.String("output_dir", outputDir),
		logging.Int("files", len(files)),
		logging.String("model", string(cfg.Tier)),
		logging.String("device", string(cfg.Device)),
		logging.String("language", cfg.Language),
		logging.Float64("memory_gb", facts.MemoryGB),
		logging.Bool("accelerator", facts.Accelerator),
	)

	store := r.openManifest(ctx, logger, outputDir, meta)
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close manifest", logging.Error(err))
		}
	}()

	agg := report.NewAggregator()
	for i, file := range files {
		var outcome report.Outcome
		if ctx.Err() != nil {
			outcome = report.NewFailure(file, ReasonInterrupted, ctx.Err())
		} else {
			outcome = r.processFile(ctx, fmt.Sprintf("[%d/%d]", i+1, len(files)), file, cfg, outputDir)
		}
		agg.Record(outcome)
		r.recordManifest(ctx, logger, store, outcome)
		r.logOutcome(logging.WithContext(logging.WithFile(ctx, file.Name), r.logger), outcome)
	}

	final := agg.Finalize(r.now().Sub(started), meta)
	if _, err := report.Write(outputDir, final); err != nil {
		return final, err
	}
	if r.opts.YAML {
		if _, err := report.WriteYAML(outputDir, final); err != nil {
			logging.WarnWithContext(logger, "yaml report not written", "report_yaml_failed", logging.Error(err))
		}
	}
	if store != nil {
		if err := store.FinishRun(context.WithoutCancel(ctx), final); err != nil {
			logging.WarnWithContext(logger, "manifest totals not written", "manifest_failed", logging.Error(err))
		}
	}

	logger.Info("batch run finished",
		logging.Int("succeeded", len(final.Successes)),
		logging.Int("failed", len(final.Failures)),
		logging.Duration("elapsed", final.RunElapsed),
	)

	notifyCtx := context.WithoutCancel(ctx)
	notifications.Deliver(notifyCtx, r.notifier, r.console, logger,
		notifications.CompletionTitle, notifications.CompletionMessage(final.Total(), outputDir))
	return final, nil
}

// EnsureInputDir creates dir when it is missing and rejects a path that is
// not a directory.
func EnsureInputDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("input path %s is not a directory", dir)
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create input folder: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("stat input folder: %w", err)
	}
}

func filterFiles(files []inventory.MediaFile, keep func(inventory.MediaFile) bool) []inventory.MediaFile {
	out := files[:0:0]
	for _, f := range files {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// engineConfig resolves tier, device, language and hotwords once per run.
func (r *Runner) engineConfig(logger *slog.Logger, facts resources.Facts) (engine.Config, error) {
	tier := resources.SuggestTier(facts.MemoryGB, facts.Accelerator)
	if r.opts.Model != "" {
		parsed, err := engine.ParseTier(r.opts.Model)
		if err != nil {
			return engine.Config{}, err
		}
		tier = parsed
	}

	device, degraded := engine.SelectDevice(r.opts.Device, facts.Accelerator)
	if degraded {
		logging.WarnWithContext(logger, "cuda requested but no accelerator found", "device_degraded",
			logging.String(logging.FieldErrorHint, "check nvidia-smi and GPU drivers"),
			logging.String(logging.FieldImpact, "transcription runs on cpu"),
		)
	}

	words, err := hotwords.Load(r.opts.HotwordsFile)
	if err != nil {
		impact := "transcription runs without hotwords"
		if errors.Is(err, hotwords.ErrMissing) {
			logging.WarnWithContext(logger, "hotwords file not found", "hotwords_missing",
				logging.String("path", r.opts.HotwordsFile),
				logging.String(logging.FieldErrorHint, "create the file with one phrase per line"),
				logging.String(logging.FieldImpact, impact),
			)
		} else {
			logging.WarnWithContext(logger, "hotwords file unreadable", "hotwords_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, impact),
			)
		}
		words = ""
	}

	return engine.Config{
		Tier:     tier,
		Device:   device,
		Language: r.opts.Language,
		Hotwords: words,
	}, nil
}

func (r *Runner) engineInfo(ctx context.Context) engine.Info {
	if p, ok := r.engine.(InfoProvider); ok {
		return p.Info(ctx)
	}
	return engine.Info{}
}

func (r *Runner) openManifest(ctx context.Context, logger *slog.Logger, outputDir string, meta report.Meta) *manifest.Store {
	if !r.opts.Manifest {
		return nil
	}
	store, err := manifest.Create(ctx, outputDir)
	if err != nil {
		logging.WarnWithContext(logger, "manifest not created", "manifest_failed", logging.Error(err))
		return nil
	}
	if err := store.BeginRun(ctx, meta); err != nil {
		logging.WarnWithContext(logger, "manifest not created", "manifest_failed", logging.Error(err))
		_ = store.Close()
		return nil
	}
	return store
}

func (r *Runner) recordManifest(ctx context.Context, logger *slog.Logger, store *manifest.Store, outcome report.Outcome) {
	if store == nil {
		return
	}
	if err := store.Record(context.WithoutCancel(ctx), outcome); err != nil {
		logging.WarnWithContext(logger, "manifest row not written", "manifest_failed", logging.Error(err))
	}
}

func (r *Runner) logOutcome(logger *slog.Logger, outcome report.Outcome) {
	if outcome.Kind == report.KindFailure {
		logger.Error("file failed",
			logging.String("reason", outcome.Reason),
			logging.String("category", outcome.Category),
		)
		return
	}
	logger.Info("file transcribed",
		logging.String("duration", outcome.MediaDuration),
		logging.Duration("elapsed", outcome.Elapsed),
		logging.Speed(outcome.SpeedRatio),
		logging.String("transcript", outcome.TranscriptPath),
	)
}
