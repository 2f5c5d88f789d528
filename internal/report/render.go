package report

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"whisperbatch/internal/fileutil"
	"whisperbatch/internal/inventory"
	"whisperbatch/internal/language"
)

// FileName is the report document written into each run folder.
const FileName = "_transcription.info"

// SpeedNote explains the speed metric in both the report and the console summary.
const SpeedNote = "Speed is media duration divided by processing time. " +
	"1.00x is real time, above 1.00x is faster than real time, below 1.00x is slower."

const emptyList = "0 files"

// Render produces the report document. Sections always appear in the same
// order, and empty lists keep their header.
func Render(r RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Transcription report %s\n", r.Version)
	if r.RunID != "" {
		fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	}
	if !r.StartedAt.IsZero() {
		fmt.Fprintf(&b, "Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	if r.InputDir != "" {
		fmt.Fprintf(&b, "Input folder: %s\n", r.InputDir)
	}

	section(&b, fmt.Sprintf("Successfully transcribed (%d)", len(r.Successes)))
	if len(r.Successes) == 0 {
		b.WriteString(emptyList + "\n")
	}
	for i, o := range r.Successes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o.File.Name)
		fmt.Fprintf(&b, "   Path: %s\n", o.File.Path)
		fmt.Fprintf(&b, "   Transcript: %s\n", filepath.Base(o.TranscriptPath))
		fmt.Fprintf(&b, "   Size: %.2f MB\n", o.SizeMB())
		fmt.Fprintf(&b, "   Duration: %s\n", o.MediaDuration)
		fmt.Fprintf(&b, "   Processing time: %s\n", formatElapsed(o.Elapsed))
		fmt.Fprintf(&b, "   Speed: %.2fx\n", o.SpeedRatio)
	}

	section(&b, fmt.Sprintf("Failed (%d)", len(r.Failures)))
	if len(r.Failures) == 0 {
		b.WriteString(emptyList + "\n")
	}
	for i, o := range r.Failures {
		fmt.Fprintf(&b, "%d. %s\n", i+1, o.File.Name)
		fmt.Fprintf(&b, "   Path: %s\n", o.File.Path)
		fmt.Fprintf(&b, "   Reason: %s\n", o.Reason)
	}

	section(&b, "Transcription parameters")
	fmt.Fprintf(&b, "Engine: %s\n", orUnknown(r.Engine.Name))
	fmt.Fprintf(&b, "Engine version: %s\n", orUnknown(r.Engine.Version))
	fmt.Fprintf(&b, "Model: %s\n", orUnknown(string(r.Config.Tier)))
	fmt.Fprintf(&b, "Device: %s\n", orUnknown(string(r.Config.Device)))
	fmt.Fprintf(&b, "Language: %s (%s)\n", orUnknown(r.Config.Language), language.DisplayName(r.Config.Language))
	hot := r.Config.Hotwords
	if hot == "" {
		hot = "(none)"
	}
	fmt.Fprintf(&b, "Hotwords: %s\n", hot)

	section(&b, "Environment")
	if len(r.Environment) == 0 {
		b.WriteString("(not collected)\n")
	}
	for _, f := range r.Environment {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}

	section(&b, "Dependency versions")
	b.WriteString(renderDependencies(r))
	b.WriteByte('\n')

	section(&b, "Statistics")
	if len(r.Successes) == 0 {
		b.WriteString("Files processed successfully: 0\n")
	} else {
		fmt.Fprintf(&b, "Files processed successfully: %d of %d\n", len(r.Successes), r.Total())
		fmt.Fprintf(&b, "Total media duration: %s\n", inventory.FormatDuration(r.TotalMediaSeconds))
		fmt.Fprintf(&b, "Total processing time: %s\n", formatElapsed(r.TotalElapsed))
		fmt.Fprintf(&b, "Average speed: %.2fx\n", r.AverageSpeed)
	}

	section(&b, "About the speed metric")
	b.WriteString(SpeedNote + "\n")

	fmt.Fprintf(&b, "\nTotal run time: %s\n", inventory.FormatDuration(int(r.RunElapsed.Seconds())))
	return b.String()
}

func renderDependencies(r RunReport) string {
	if len(r.Dependencies) == 0 {
		return "(not collected)"
	}
	tw := table.NewWriter()
	tw.SetStyle(table.StyleDefault)
	tw.AppendHeader(table.Row{"Component", "Version"})
	for _, d := range r.Dependencies {
		tw.AppendRow(table.Row{d.Name, d.Version})
	}
	return tw.Render()
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n=== %s ===\n", title)
}

func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.2f s (%s)", d.Seconds(), inventory.FormatDuration(int(d.Seconds())))
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

// Write renders r into dir/FileName.
func Write(dir string, r RunReport) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := fileutil.WriteFileAtomic(path, []byte(Render(r))); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
