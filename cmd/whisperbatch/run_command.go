package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"whisperbatch/internal/batch"
	"whisperbatch/internal/config"
	"whisperbatch/internal/deps"
	"whisperbatch/internal/engine"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/language"
	"whisperbatch/internal/media/ffprobe"
	"whisperbatch/internal/notifications"
	"whisperbatch/internal/preflight"
	"whisperbatch/internal/report"
	"whisperbatch/internal/resources"
	"whisperbatch/internal/services/whisperx"
)

// reportModules are the Go modules listed in the report's dependency table.
var reportModules = []string{
	"github.com/spf13/cobra",
	"github.com/pelletier/go-toml/v2",
	"modernc.org/sqlite",
	"gopkg.in/yaml.v3",
}

type runFlags struct {
	model      string
	language   string
	device     string
	hotwords   string
	outputRoot string
}

func (f *runFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.model, "model", "", "Model tier ("+strings.Join(engine.TierNames(), ", ")+"); default picks from available memory")
	cmd.Flags().StringVar(&f.language, "language", "", "Spoken language code (default from config)")
	cmd.Flags().StringVar(&f.device, "device", "", "Compute device: auto, cuda, or cpu")
	cmd.Flags().StringVar(&f.hotwords, "hotwords", "", "Hotwords file, one phrase per line")
	cmd.Flags().StringVar(&f.outputRoot, "output-root", "", "Folder that receives the timestamped run folder")
}

// apply returns a copy of cfg with flag and positional overrides validated.
func (f runFlags) apply(cfg *config.Config, args []string) (*config.Config, error) {
	out := *cfg
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		out.Paths.InputDir = args[0]
	}
	if f.outputRoot != "" {
		out.Paths.OutputRoot = f.outputRoot
	}
	if f.hotwords != "" {
		out.Paths.HotwordsFile = f.hotwords
	}
	for _, p := range []*string{&out.Paths.InputDir, &out.Paths.OutputRoot, &out.Paths.HotwordsFile} {
		expanded, err := config.ExpandPath(*p)
		if err != nil {
			return nil, err
		}
		*p = expanded
	}
	if f.language != "" {
		code := language.ToISO2(f.language)
		if code == "" {
			return nil, fmt.Errorf("--language %q is not a recognized language code", f.language)
		}
		out.Transcription.Language = code
	}
	if f.model != "" {
		tier, err := engine.ParseTier(f.model)
		if err != nil {
			return nil, fmt.Errorf("--model: %w", err)
		}
		out.Transcription.Model = string(tier)
	}
	if f.device != "" {
		out.Transcription.Device = strings.ToLower(strings.TrimSpace(f.device))
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "run [input_folder]",
		Short: "Transcribe every media file in a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, ctx, flags, args)
		},
	}
	flags.bind(cmd)
	return cmd
}

func executeRun(cmd *cobra.Command, ctx *commandContext, flags runFlags, args []string) error {
	base, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	cfg, err := flags.apply(base, args)
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintf(out, "whisperbatch %s\n", appVersion)
	warnMissingDeps(out, cfg, colorize)

	runner, err := newBatchRunner(cfg, logger, out)
	if err != nil {
		return err
	}
	rep, err := runner.Run(cmd.Context())
	if errors.Is(err, batch.ErrNoFiles) {
		fmt.Fprintln(out, renderStatusLine("Input", statusWarn,
			fmt.Sprintf("no media files in %s (supported: %s)", cfg.Paths.InputDir, strings.Join(inventory.Extensions(), " ")), colorize))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, report.Summary(rep))
	return cmd.Context().Err()
}

func warnMissingDeps(out io.Writer, cfg *config.Config, colorize bool) {
	for _, s := range deps.MissingRequired(preflight.CheckSystemDeps(cfg)) {
		fmt.Fprintln(out, renderStatusLine(s.Name, statusWarn, s.Detail, colorize))
	}
}

func batchOptions(cfg *config.Config) batch.Options {
	return batch.Options{
		InputDir:     cfg.Paths.InputDir,
		OutputRoot:   cfg.Paths.OutputRoot,
		HotwordsFile: cfg.Paths.HotwordsFile,
		Language:     cfg.Transcription.Language,
		Model:        cfg.Transcription.Model,
		Device:       cfg.Transcription.Device,
		Version:      appVersion,
		YAML:         cfg.Report.YAML,
		Manifest:     cfg.Report.Manifest,
	}
}

func newBatchRunner(cfg *config.Config, logger *slog.Logger, console io.Writer) (*batch.Runner, error) {
	service := whisperx.NewService(whisperx.Config{
		UVXCommand:   cfg.Engine.UVXCommand,
		Package:      cfg.Engine.Package,
		ComputeType:  cfg.Engine.ComputeType,
		BatchSize:    cfg.Engine.BatchSize,
		VADMethod:    cfg.Engine.VADMethod,
		CUDAIndexURL: cfg.Engine.CUDAIndexURL,
		PyPIIndexURL: cfg.Engine.PyPIIndexURL,
	})
	return batch.New(batchOptions(cfg), batch.Dependencies{
		Engine:    service,
		Extractor: whisperx.NewExtractor(cfg.Engine.FFmpegBinary),
		Prober:    ffprobe.NewProber(cfg.Engine.FFprobeBinary),
		Probe:     resources.New(),
		Notifier:  notifications.NewNotifier(cfg),
		Versions: func(ctx context.Context) []deps.Version {
			return collectVersions(ctx, cfg)
		},
		Logger:  logger,
		Console: console,
	})
}
