package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"whisperbatch/internal/batch"
	"whisperbatch/internal/report"
	"whisperbatch/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags
	var settle int
	cmd := &cobra.Command{
		Use:   "watch [input_folder]",
		Short: "Transcribe new media files as they appear in a folder",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(base, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("settle") {
				cfg.Watch.SettleSeconds = settle
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
			// fsnotify needs the folder before the first batch creates it.
			if err := batch.EnsureInputDir(cfg.Paths.InputDir); err != nil {
				return err
			}

			svc := watcher.New(cfg.Paths.InputDir, time.Duration(cfg.Watch.SettleSeconds)*time.Second, runner.RunFiltered, logger)
			svc.OnRun(func(rep report.RunReport) {
				fmt.Fprintln(out)
				fmt.Fprint(out, report.Summary(rep))
			})
			fmt.Fprintln(out, renderStatusLine("Watching", statusInfo, cfg.Paths.InputDir, colorize))
			return svc.Start(cmd.Context())
		},
	}
	flags.bind(cmd)
	cmd.Flags().IntVar(&settle, "settle", 0, "Seconds a new file must stay unchanged before a batch starts")
	return cmd
}
