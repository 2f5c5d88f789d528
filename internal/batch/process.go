package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"whisperbatch/internal/engine"
	"whisperbatch/internal/fileutil"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/logging"
	"whisperbatch/internal/report"
)

// processFile turns one media file into exactly one outcome. Errors and panics
// are converted into failures here. position is the "[i/N]" progress prefix.
func (r *Runner) processFile(ctx context.Context, position string, file inventory.MediaFile, cfg engine.Config, outputDir string) (outcome report.Outcome) {
	ctx = logging.WithFile(ctx, file.Name)
	logger := logging.WithContext(ctx, r.logger)

	stage := StageCopy
	defer func() {
		if rec := recover(); rec != nil {
			err := &StageError{Stage: stage, Err: fmt.Errorf("panic: %v", rec)}
			outcome = report.NewFailure(file, err.Error(), err)
		}
	}()

	if _, err := fileutil.CopyInto(file.Path, outputDir); err != nil {
		logging.WarnWithContext(logger, "source copy failed", "copy_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "transcription continues from the source path"),
		)
	}

	stage = StageDuration
	duration := inventory.ProbeDuration(ctx, r.prober, file)
	if !duration.OK() {
		fmt.Fprintf(r.console, "%s %s | duration unavailable\n", position, file.Name)
		return report.NewFailure(file, ReasonDurationFailed, duration.Err)
	}
	fmt.Fprintf(r.console, "%s %s | %s\n", position, file.Name, duration.Human)

	audioPath := file.Path
	if file.IsVideo() {
		stage = StageExtract
		tempAudio := filepath.Join(outputDir, file.BaseName()+"_temp_audio.wav")
		defer removeTemp(logger, tempAudio)
		if err := r.extractor.ExtractAudio(ctx, file.Path, tempAudio); err != nil {
			return failure(file, stage, err)
		}
		audioPath = tempAudio
	}

	stage = StageTranscribe
	workDir, err := os.MkdirTemp(outputDir, ".work-")
	if err != nil {
		return failure(file, stage, fmt.Errorf("create work dir: %w", err))
	}
	defer removeTemp(logger, workDir)

	start := r.now()
	result, err := r.engine.Transcribe(ctx, engine.Request{AudioPath: audioPath, WorkDir: workDir, Config: cfg})
	elapsed := r.now().Sub(start)
	if err != nil {
		return failure(file, stage, err)
	}

	stage = StageWrite
	transcript := filepath.Join(outputDir, file.BaseName()+".txt")
	if err := fileutil.WriteFileAtomic(transcript, []byte(result.Text())); err != nil {
		return failure(file, stage, err)
	}

	return report.NewSuccess(file, transcript, elapsed, duration)
}

func failure(file inventory.MediaFile, stage string, err error) report.Outcome {
	wrapped := &StageError{Stage: stage, Err: err}
	return report.NewFailure(file, wrapped.Error(), wrapped)
}

func removeTemp(logger *slog.Logger, path string) {
	if err := os.RemoveAll(path); err != nil {
		logger.Warn("failed to remove temporary file", logging.Args(logging.String("path", path), logging.Error(err))...)
	}
}
