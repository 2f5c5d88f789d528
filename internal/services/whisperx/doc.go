// Package whisperx runs WhisperX through uvx and extracts audio with ffmpeg.
//
// Service implements engine.Engine: each Transcribe call launches one WhisperX
// process with JSON output in a caller-owned work directory and returns the
// decoded segments. Extractor converts video containers to the mono 16 kHz WAV
// WhisperX expects.
package whisperx
