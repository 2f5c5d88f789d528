package preflight

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"whisperbatch/internal/config"
	"whisperbatch/internal/deps"
)

// CheckNtfy verifies that the ntfy server behind topic answers its health
// endpoint.
func CheckNtfy(ctx context.Context, topic string) Result {
	const name = "ntfy"

	parsed, err := url.Parse(strings.TrimSpace(topic))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return Result{Name: name, Detail: "invalid topic url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	health := url.URL{Scheme: parsed.Scheme, Host: parsed.Host, Path: "/v1/health"}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, health.String(), nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%v)", err)}
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%v)", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Name: name, Detail: fmt.Sprintf("health check failed (%d)", resp.StatusCode)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Requirements lists the external binaries a run needs under cfg.
func Requirements(cfg *config.Config) []deps.Requirement {
	return []deps.Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.Engine.FFmpegBinary,
			Description: "Required for audio extraction from video",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.Engine.FFprobeBinary,
			Description: "Required for media duration",
		},
		{
			Name:        "uvx",
			Command:     cfg.Engine.UVXCommand,
			Description: "Required for WhisperX-driven transcription",
		},
		{
			Name:        "nvidia-smi",
			Command:     "nvidia-smi",
			Description: "Detects a CUDA accelerator",
			Optional:    true,
		},
		{
			Name:        "notify-send",
			Command:     "notify-send",
			Description: "Desktop notifications",
			Optional:    !cfg.Notifications.Desktop,
		},
	}
}

// CheckSystemDeps evaluates all system-level dependencies for the given config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(Requirements(cfg))
}

// VersionTools lists the binaries whose versions go into the run report.
func VersionTools(cfg *config.Config) []deps.Tool {
	return []deps.Tool{
		{Name: "ffmpeg", Command: cfg.Engine.FFmpegBinary, Args: []string{"-version"}},
		{Name: "ffprobe", Command: cfg.Engine.FFprobeBinary, Args: []string{"-version"}},
		{Name: "uvx", Command: cfg.Engine.UVXCommand, Args: []string{"--version"}},
	}
}
