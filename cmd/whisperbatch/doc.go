// Package main hosts the whisperbatch CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration, applies flag overrides, and
// wires the batch runner to WhisperX, ffmpeg, and ffprobe. Batch logic lives in
// internal/batch; commands here only translate terminal input into Options and
// render results.
package main
