// Package report accumulates per-file outcomes into run totals and renders the
// run report, its optional YAML twin, and the console summary.
//
// Aggregator is an explicit accumulator owned by the batch runner. Finalize
// freezes it into a RunReport, which is rendered and written exactly once.
package report
