package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"whisperbatch/internal/inventory"
	"whisperbatch/internal/manifest"
)

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "show <run_folder>",
		Short:       "Print the outcomes stored in a run folder's manifest",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := manifest.Open(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%w (runs write a manifest when [report] manifest = true)", err)
			}
			defer store.Close()

			run, err := store.Run(cmd.Context())
			if err != nil {
				return err
			}
			rows, err := store.Outcomes(cmd.Context())
			if err != nil {
				return err
			}
			succeeded, failed, err := store.Counts(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			renderManifest(out, run, rows, succeeded, failed, shouldColorize(out))
			return nil
		},
	}
}

func renderManifest(out io.Writer, run manifest.Run, rows []manifest.Row, succeeded, failed int, colorize bool) {
	writeLines(out, renderSectionHeader("Run "+shortID(run.ID), colorize))
	engineName := run.EngineName
	if run.EngineVersion != "" {
		engineName += " " + run.EngineVersion
	}
	lines := []string{
		renderStatusLine("Version", statusInfo, run.Version, colorize),
		renderStatusLine("Started", statusInfo, run.StartedAt, colorize),
		renderStatusLine("Engine", statusInfo, engineName, colorize),
		renderStatusLine("Model", statusInfo, fmt.Sprintf("%s on %s, language %s", run.Model, run.Device, run.Language), colorize),
	}
	if run.FinishedAt == "" {
		lines = append(lines, renderStatusLine("Finished", statusWarn, "run did not finish", colorize))
	} else {
		lines = append(lines, renderStatusLine("Average speed", statusInfo, fmt.Sprintf("%.2fx", run.AverageSpeed), colorize))
	}
	resultKind := statusOK
	if failed > 0 {
		resultKind = statusWarn
	}
	lines = append(lines, renderStatusLine("Files", resultKind, fmt.Sprintf("%d succeeded, %d failed", succeeded, failed), colorize))
	writeLines(out, lines)
	fmt.Fprintln(out)

	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		detail := r.Reason
		if r.Kind == "success" {
			detail = fmt.Sprintf("%s in %s (%.2fx)",
				inventory.FormatDuration(r.MediaSeconds),
				(time.Duration(r.ElapsedMS) * time.Millisecond).Round(10*time.Millisecond),
				r.Speed)
		}
		table = append(table, []string{strconv.Itoa(r.Seq), r.Name, r.Kind, detail})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "File", "Result", "Detail"}, table, 0))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
