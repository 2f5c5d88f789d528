package batch

import (
	"errors"
	"fmt"
)

// ErrNoFiles reports an input folder without eligible media. No output
// folder is created in that case.
var ErrNoFiles = errors.New("no media files to transcribe")

// ErrLocked reports that another run holds the input folder lock.
var ErrLocked = errors.New("input folder is locked by another run")

// Per-file processing stages.
const (
	StageCopy       = "copy"
	StageDuration   = "duration"
	StageExtract    = "extract audio"
	StageTranscribe = "transcribe"
	StageWrite      = "write transcript"
)

// Failure reasons with a fixed wording.
const (
	ReasonDurationFailed = "duration probe failed"
	ReasonInterrupted    = "run interrupted"
)

// StageError labels a per-file error with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
