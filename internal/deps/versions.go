package deps

import (
	"context"
	"os/exec"
	"runtime/debug"
	"strings"
	"time"
)

// Placeholders used in version tables.
const (
	NotInstalled = "not installed"
	Unknown      = "unknown"
)

const versionTimeout = 10 * time.Second

// Version is one row of the dependency version table.
type Version struct {
	Name    string
	Version string
}

// Tool describes how to ask an external binary for its version.
type Tool struct {
	Name    string
	Command string
	Args    []string
}

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func combinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// ToolVersions queries each tool and returns one row per tool. A tool missing
// from PATH reports NotInstalled; a failed or empty query reports Unknown.
func ToolVersions(ctx context.Context, tools []Tool) []Version {
	return toolVersions(ctx, tools, exec.LookPath, combinedOutput)
}

func toolVersions(ctx context.Context, tools []Tool, lookPath func(string) (string, error), run runner) []Version {
	rows := make([]Version, 0, len(tools))
	for _, tool := range tools {
		row := Version{Name: tool.Name, Version: NotInstalled}
		path, err := lookPath(tool.Command)
		if err != nil {
			rows = append(rows, row)
			continue
		}
		row.Version = queryVersion(ctx, run, path, tool.Args)
		rows = append(rows, row)
	}
	return rows
}

func queryVersion(ctx context.Context, run runner, path string, args []string) string {
	qctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	output, err := run(qctx, path, args...)
	if err != nil {
		return Unknown
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return Unknown
	}
	return line
}

// ModuleVersions reports the versions of the given Go modules as linked into
// the running binary.
func ModuleVersions(paths []string) []Version {
	info, _ := debug.ReadBuildInfo()
	return moduleVersions(info, paths)
}

func moduleVersions(info *debug.BuildInfo, paths []string) []Version {
	linked := map[string]string{}
	if info != nil {
		for _, dep := range info.Deps {
			version := dep.Version
			if dep.Replace != nil && dep.Replace.Version != "" {
				version = dep.Replace.Version
			}
			linked[dep.Path] = version
		}
	}
	rows := make([]Version, 0, len(paths))
	for _, path := range paths {
		version, ok := linked[path]
		switch {
		case !ok:
			version = NotInstalled
		case version == "" || version == "(devel)":
			version = Unknown
		}
		rows = append(rows, Version{Name: path, Version: version})
	}
	return rows
}
