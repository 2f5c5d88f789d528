package report

import (
	"time"

	"whisperbatch/internal/inventory"
	"whisperbatch/internal/services"
)

// Kind tags an Outcome as a success or a failure.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	if k == KindFailure {
		return "failure"
	}
	return "success"
}

// Outcome is the result of processing one file. Success fields are zero on
// failures and Reason is empty on successes.
type Outcome struct {
	Kind Kind
	File inventory.MediaFile

	TranscriptPath string
	Elapsed        time.Duration
	MediaSeconds   int
	MediaDuration  string
	SpeedRatio     float64

	Reason   string
	Category string
}

// NewSuccess builds a success outcome. Speed is derived from duration and
// elapsed, never supplied by the caller.
func NewSuccess(file inventory.MediaFile, transcriptPath string, elapsed time.Duration, duration inventory.DurationInfo) Outcome {
	if elapsed < 0 {
		elapsed = 0
	}
	return Outcome{
		Kind:           KindSuccess,
		File:           file,
		TranscriptPath: transcriptPath,
		Elapsed:        elapsed,
		MediaSeconds:   duration.Seconds,
		MediaDuration:  duration.Human,
		SpeedRatio:     SpeedRatio(duration.Seconds, elapsed),
	}
}

// NewFailure builds a failure outcome. cause, when set, classifies the failure.
func NewFailure(file inventory.MediaFile, reason string, cause error) Outcome {
	return Outcome{
		Kind:     KindFailure,
		File:     file,
		Reason:   reason,
		Category: services.Category(cause),
	}
}

// SpeedRatio is media seconds per processing second. It is 0 when elapsed is
// zero and never negative.
func SpeedRatio(mediaSeconds int, elapsed time.Duration) float64 {
	secs := elapsed.Seconds()
	if secs <= 0 || mediaSeconds <= 0 {
		return 0
	}
	return float64(mediaSeconds) / secs
}

// SizeMB returns the file size in megabytes rounded to two decimals.
func (o Outcome) SizeMB() float64 {
	return round2(o.File.SizeMB())
}

func round2(v float64) float64 {
	if v < 0 {
		return 0
	}
	return float64(int64(v*100+0.5)) / 100
}
