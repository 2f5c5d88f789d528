package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"whisperbatch/internal/engine"
	"whisperbatch/internal/resources"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Show available memory, accelerator, and the suggested model tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			facts := resources.New().Snapshot(cmd.Context())
			out := cmd.OutOrStdout()
			writeLines(out, probeLines(facts, cfg.Transcription.Device, shouldColorize(out)))
			fmt.Fprintln(out)
			fmt.Fprintln(out, environmentTable(resources.Environment(facts)))
			return nil
		},
	}
}

func probeLines(facts resources.Facts, requestedDevice string, colorize bool) []string {
	lines := renderSectionHeader("Resources", colorize)
	lines = append(lines,
		renderStatusLine("Available memory", statusInfo, fmt.Sprintf("%.2f GB", facts.MemoryGB), colorize),
		renderStatusLine("Accelerator", statusInfo, yesNo(facts.Accelerator), colorize),
	)

	device, degraded := engine.SelectDevice(requestedDevice, facts.Accelerator)
	deviceKind := statusOK
	deviceMsg := string(device)
	if degraded {
		deviceKind = statusWarn
		deviceMsg = fmt.Sprintf("%s (cuda requested, no accelerator found)", device)
	}
	lines = append(lines,
		renderStatusLine("Device", deviceKind, deviceMsg, colorize),
		renderStatusLine("Suggested model", statusOK, string(resources.SuggestTier(facts.MemoryGB, facts.Accelerator)), colorize),
	)
	return lines
}
