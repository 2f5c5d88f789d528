package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"whisperbatch/internal/config"
	"whisperbatch/internal/deps"
	"whisperbatch/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check external tools, folders, and versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			writeLines(out, renderSectionHeader("Dependencies", colorize))
			writeLines(out, dependencyLines(preflight.CheckSystemDeps(cfg), colorize))

			fmt.Fprintln(out)
			writeLines(out, renderSectionHeader("Checks", colorize))
			writeLines(out, checkLines(preflight.RunAll(cmd.Context(), cfg), colorize))

			fmt.Fprintln(out)
			fmt.Fprintln(out, versionTable(collectVersions(cmd.Context(), cfg)))
			return nil
		},
	}
}

// collectVersions lists external tool versions followed by the Go modules
// named in reportModules.
func collectVersions(ctx context.Context, cfg *config.Config) []deps.Version {
	versions := deps.ToolVersions(ctx, preflight.VersionTools(cfg))
	return append(versions, deps.ModuleVersions(reportModules)...)
}

func checkLines(results []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		kind := statusOK
		if !r.Passed {
			kind = statusError
		}
		lines = append(lines, renderStatusLine(r.Name, kind, r.Detail, colorize))
	}
	return lines
}

func dependencyLines(statuses []deps.Status, colorize bool) []string {
	missingRequired := deps.MissingRequired(statuses)
	summaryKind := statusOK
	summary := "All required tools available"
	if len(missingRequired) > 0 {
		summaryKind = statusError
		summary = fmt.Sprintf("%d required tool(s) missing", len(missingRequired))
	}

	lines := make([]string, 0, len(statuses)+2)
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	missing := make([]string, 0)
	for _, dep := range statuses {
		if dep.Available {
			message := "Ready"
			if dep.Command != "" {
				message = fmt.Sprintf("Ready (command: %s)", dep.Command)
			}
			lines = append(lines, renderStatusLine(dep.Name, statusOK, message, colorize))
			continue
		}

		detail := strings.TrimSpace(dep.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if dep.Optional {
			kind = statusWarn
		}
		lines = append(lines, renderStatusLine(dep.Name, kind, detail, colorize))
		missing = append(missing, dep.Name)
	}
	if len(missing) > 0 {
		lines = append(lines, renderStatusLine("Missing dependencies", statusWarn, strings.Join(missing, ", "), colorize))
	}
	return lines
}
