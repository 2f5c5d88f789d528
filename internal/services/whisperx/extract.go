package whisperx

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"whisperbatch/internal/services"
)

// Extractor converts the first audio stream of a media file into mono 16 kHz
// PCM WAV suitable for WhisperX.
type Extractor struct {
	ffmpegBinary string
	run          func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewExtractor returns an Extractor that runs the given ffmpeg binary.
func NewExtractor(ffmpegBinary string) *Extractor {
	if strings.TrimSpace(ffmpegBinary) == "" {
		ffmpegBinary = DefaultFFmpeg
	}
	return &Extractor{ffmpegBinary: ffmpegBinary, run: combinedOutput}
}

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput() //nolint:gosec
}

// ExtractAudio writes the audio of source to dest, overwriting dest.
func (e *Extractor) ExtractAudio(ctx context.Context, source, dest string) error {
	if source == "" || dest == "" {
		return services.Wrap(services.ErrValidation, "extract", "ffmpeg", "source and destination required", nil)
	}
	output, err := e.run(ctx, e.ffmpegBinary, buildExtractArgs(source, dest)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("ffmpeg extract: %w", ctx.Err())
		}
		return services.Wrap(services.ErrExternalTool, "extract", "ffmpeg", strings.TrimSpace(string(output)), err)
	}
	return nil
}

func buildExtractArgs(source, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", "0:a:0",
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
}
