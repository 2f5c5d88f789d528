// Package batch drives one transcription run over an input folder.
//
// A Runner scans the folder, decides the engine configuration once, and then
// processes files strictly one at a time. Every file that enters the loop
// yields exactly one outcome: per-file errors and panics become failures, and
// files left unprocessed after cancellation are recorded as interrupted. The
// finished run is written as _transcription.info plus the optional YAML and
// SQLite companions, and a completion notice is delivered.
package batch
