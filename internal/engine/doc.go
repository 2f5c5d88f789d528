// Package engine defines the speech-recognition contract shared by the batch
// runner and concrete engines: model tiers, compute devices, the per-run
// Config, and the Request/Result types of a single transcription call.
package engine
