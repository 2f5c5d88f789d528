// Package language normalizes the transcription language setting and renders
// language names for reports.
package language
