package preflight

import (
	"context"
	"os"

	"whisperbatch/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The input folder is only checked when it already exists because a run
// creates it on demand.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if _, err := os.Stat(cfg.Paths.InputDir); err == nil {
		results = append(results, CheckDirectoryAccess("Input folder", cfg.Paths.InputDir))
	}
	results = append(results, CheckDirectoryAccess("Output root", cfg.Paths.OutputRoot))

	if cfg.Notifications.NtfyTopic != "" {
		results = append(results, CheckNtfy(ctx, cfg.Notifications.NtfyTopic))
	}
	return results
}
