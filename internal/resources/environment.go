package resources

import (
	"fmt"
	"runtime"
)

// Fact is one labelled line in the environment section of a report.
type Fact struct {
	Label string
	Value string
}

// Environment returns static host facts in report order.
func Environment(facts Facts) []Fact {
	return []Fact{
		{Label: "OS", Value: osDescription()},
		{Label: "Architecture", Value: runtime.GOARCH},
		{Label: "CPUs", Value: fmt.Sprintf("%d", runtime.NumCPU())},
		{Label: "Go runtime", Value: runtime.Version()},
		{Label: "GPU available", Value: fmt.Sprintf("%t", facts.Accelerator)},
		{Label: "RAM available", Value: fmt.Sprintf("%.2f GB", facts.MemoryGB)},
	}
}
