package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"whisperbatch/internal/inventory"
)

// Summary renders the end-of-run console summary.
func Summary(r RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Processed %d file(s): %d succeeded, %d failed\n", r.Total(), len(r.Successes), len(r.Failures))

	if len(r.Successes) > 0 {
		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"File", "Duration", "Time", "Speed"})
		for _, o := range r.Successes {
			tw.AppendRow(table.Row{
				o.File.Name,
				o.MediaDuration,
				inventory.FormatDuration(int(o.Elapsed.Seconds())),
				fmt.Sprintf("%.2fx", o.SpeedRatio),
			})
		}
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight},
			{Number: 3, Align: text.AlignRight},
			{Number: 4, Align: text.AlignRight},
		})
		b.WriteString(tw.Render())
		b.WriteByte('\n')

		fmt.Fprintf(&b, "Total media duration: %s\n", inventory.FormatDuration(r.TotalMediaSeconds))
		fmt.Fprintf(&b, "Total processing time: %s\n", inventory.FormatDuration(int(r.TotalElapsed.Seconds())))
		fmt.Fprintf(&b, "Average speed: %.2fx\n", r.AverageSpeed)
		b.WriteString(SpeedNote + "\n")
	}

	if len(r.Failures) > 0 {
		b.WriteString("Failed files:\n")
		for _, o := range r.Failures {
			fmt.Fprintf(&b, "  - %s: %s\n", o.File.Name, o.Reason)
		}
	}

	fmt.Fprintf(&b, "Total run time: %s\n", inventory.FormatDuration(int(r.RunElapsed.Seconds())))
	if r.OutputDir != "" {
		fmt.Fprintf(&b, "Results: %s\n", r.OutputDir)
	}
	return b.String()
}
