// Package logging assembles structured slog loggers and formatting helpers.
//
// It owns the console and JSON handlers, the optional rotating log file, and
// context helpers that tag log lines with the batch run ID and the file in
// progress. A no-op logger is provided for tests and wiring code that cannot
// fail.
package logging
