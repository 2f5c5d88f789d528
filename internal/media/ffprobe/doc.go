// Package ffprobe wraps ffprobe JSON output for the duration gate.
//
// Inspect runs ffprobe and decodes streams and container format. Prober adapts
// Inspect to the single question the batch runner asks: how long is this file.
package ffprobe
