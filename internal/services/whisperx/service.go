package whisperx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"whisperbatch/internal/engine"
	"whisperbatch/internal/services"
)

const versionLookupTimeout = 2 * time.Minute

// Service runs WhisperX through uvx, one process per file.
type Service struct {
	cfg           Config
	commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewService creates a WhisperX service with the given configuration.
func NewService(cfg Config) *Service {
	return &Service{cfg: cfg.withDefaults(), commandRunner: runWhisperX}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	s.commandRunner = runner
}

func runWhisperX(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec

	// Torch 2.6 changed torch.load default to weights_only=true, breaking WhisperX/pyannote.
	if os.Getenv("TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD") == "" {
		cmd.Env = append(os.Environ(), "TORCH_FORCE_NO_WEIGHTS_ONLY_LOAD=1")
	}
	return cmd.CombinedOutput()
}

// Transcribe runs WhisperX on req.AudioPath and returns its segments. The JSON
// output lands in req.WorkDir, which the caller owns.
func (s *Service) Transcribe(ctx context.Context, req engine.Request) (engine.Result, error) {
	if req.AudioPath == "" {
		return engine.Result{}, services.Wrap(services.ErrValidation, "transcribe", "whisperx", "audio path required", nil)
	}
	workDir := req.WorkDir
	if workDir == "" {
		workDir = filepath.Dir(req.AudioPath)
	}
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return engine.Result{}, fmt.Errorf("transcribe: ensure work dir: %w", err)
	}

	args := s.buildArgs(req.AudioPath, workDir, req.Config)
	output, err := s.commandRunner(ctx, s.cfg.UVXCommand, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return engine.Result{}, fmt.Errorf("whisperx: %w", ctxErr)
		}
		return engine.Result{}, services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", lastLine(output), err)
	}

	base := strings.TrimSuffix(filepath.Base(req.AudioPath), filepath.Ext(req.AudioPath))
	out, err := loadPayload(filepath.Join(workDir, base+".json"))
	if err != nil {
		return engine.Result{}, services.Wrap(services.ErrExternalTool, "transcribe", "read output", "", err)
	}

	result := engine.Result{Language: out.Language, Segments: make([]engine.Segment, 0, len(out.Segments))}
	for _, seg := range out.Segments {
		result.Segments = append(result.Segments, engine.Segment{Text: seg.Text, Start: seg.Start, End: seg.End})
	}
	return result, nil
}

// buildArgs constructs the uvx command arguments for WhisperX.
func (s *Service) buildArgs(source, outputDir string, cfg engine.Config) []string {
	args := make([]string, 0, 32)

	cuda := cfg.Device == engine.DeviceCUDA
	if cuda {
		args = append(args,
			"--index-url", s.cfg.CUDAIndexURL,
			"--extra-index-url", s.cfg.PyPIIndexURL,
		)
	} else {
		args = append(args, "--index-url", s.cfg.PyPIIndexURL)
	}

	tier := cfg.Tier
	if tier == "" {
		tier = engine.TierTiny
	}

	args = append(args,
		s.cfg.Package,
		source,
		"--model", string(tier),
		"--output_dir", outputDir,
		"--output_format", OutputFormat,
		"--segment_resolution", SegmentResolution,
		"--vad_method", s.cfg.VADMethod,
	)
	if s.cfg.BatchSize > 0 {
		args = append(args, "--batch_size", strconv.Itoa(s.cfg.BatchSize))
	}
	if lang := strings.TrimSpace(cfg.Language); lang != "" {
		args = append(args, "--language", lang)
	}
	if hot := strings.TrimSpace(cfg.Hotwords); hot != "" {
		args = append(args, "--hotwords", hot)
	}

	if cuda {
		args = append(args, "--device", string(engine.DeviceCUDA), "--compute_type", CUDAComputeType)
	} else {
		args = append(args, "--device", string(engine.DeviceCPU), "--compute_type", s.cfg.ComputeType)
	}
	return args
}

// Info returns the engine name and the installed WhisperX version, or
// "unknown" when the version cannot be determined.
func (s *Service) Info(ctx context.Context) engine.Info {
	info := engine.Info{Name: EngineName, Version: "unknown"}
	lookupCtx, cancel := context.WithTimeout(ctx, versionLookupTimeout)
	defer cancel()
	output, err := s.commandRunner(lookupCtx, s.cfg.UVXCommand,
		"--from", s.cfg.Package, "python", "-c",
		"import importlib.metadata as m; print(m.version('whisperx'))")
	if err != nil {
		return info
	}
	if v := lastLine(output); v != "" {
		info.Version = v
	}
	return info
}

// Segment represents a transcribed segment from WhisperX JSON output.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type payload struct {
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

func loadPayload(jsonPath string) (payload, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return payload{}, err
	}
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return payload{}, fmt.Errorf("parse whisperx json: %w", err)
	}
	return p, nil
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

var _ engine.Engine = (*Service)(nil)
