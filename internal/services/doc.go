// Package services holds the wrappers around external tools (WhisperX today)
// and the error markers they share.
//
// Wrap tags a failure with a stage, an operation, and a sentinel marker;
// Category turns that marker back into a short label for reports and the run
// manifest.
package services
