// Package hotwords reads the hotword sidecar file: one phrase per line.
//
// Blank lines are skipped and the remaining phrases are joined into the
// comma-separated list the engine expects. A missing file is reported as
// ErrMissing so callers can warn and continue without hotwords.
package hotwords
