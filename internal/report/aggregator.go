package report

import (
	"time"

	"whisperbatch/internal/deps"
	"whisperbatch/internal/engine"
	"whisperbatch/internal/resources"
)

// Meta carries the run facts that are fixed before the loop starts.
type Meta struct {
	Version      string
	RunID        string
	InputDir     string
	OutputDir    string
	StartedAt    time.Time
	Engine       engine.Info
	Config       engine.Config
	Environment  []resources.Fact
	Dependencies []deps.Version
}

// RunReport is the finalized aggregate of one run.
type RunReport struct {
	Meta

	Successes []Outcome
	Failures  []Outcome

	TotalMediaSeconds int
	TotalElapsed      time.Duration
	AverageSpeed      float64
	RunElapsed        time.Duration
}

// Total returns the number of files that produced an outcome.
func (r RunReport) Total() int {
	return len(r.Successes) + len(r.Failures)
}

// Aggregator accumulates outcomes in arrival order.
type Aggregator struct {
	successes []Outcome
	failures  []Outcome
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record appends outcome to the success or failure sequence.
func (a *Aggregator) Record(outcome Outcome) {
	if outcome.Kind == KindFailure {
		a.failures = append(a.failures, outcome)
		return
	}
	a.successes = append(a.successes, outcome)
}

// Count returns the number of recorded outcomes.
func (a *Aggregator) Count() int {
	return len(a.successes) + len(a.failures)
}

// Finalize computes run totals. runElapsed is the wall-clock time of the whole
// run including overhead outside transcription.
func (a *Aggregator) Finalize(runElapsed time.Duration, meta Meta) RunReport {
	r := RunReport{
		Meta:       meta,
		Successes:  append([]Outcome(nil), a.successes...),
		Failures:   append([]Outcome(nil), a.failures...),
		RunElapsed: runElapsed,
	}
	for _, o := range r.Successes {
		r.TotalMediaSeconds += o.MediaSeconds
		r.TotalElapsed += o.Elapsed
	}
	r.AverageSpeed = SpeedRatio(r.TotalMediaSeconds, r.TotalElapsed)
	return r
}
