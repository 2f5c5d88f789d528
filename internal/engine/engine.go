package engine

import (
	"context"
	"fmt"
	"strings"
)

// Tier is a recognition model size.
type Tier string

const (
	TierTiny     Tier = "tiny"
	TierBase     Tier = "base"
	TierSmall    Tier = "small"
	TierMedium   Tier = "medium"
	TierLarge    Tier = "large"
	TierTinyEN   Tier = "tiny.en"
	TierBaseEN   Tier = "base.en"
	TierSmallEN  Tier = "small.en"
	TierMediumEN Tier = "medium.en"
)

var tiers = []Tier{
	TierTiny, TierBase, TierSmall, TierMedium, TierLarge,
	TierTinyEN, TierBaseEN, TierSmallEN, TierMediumEN,
}

// TierNames returns the accepted tiers as plain strings.
func TierNames() []string {
	names := make([]string, len(tiers))
	for i, t := range tiers {
		names[i] = string(t)
	}
	return names
}

// ParseTier validates a tier name.
func ParseTier(value string) (Tier, error) {
	candidate := Tier(strings.ToLower(strings.TrimSpace(value)))
	for _, t := range tiers {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown model %q (choose from %s)", value, strings.Join(TierNames(), ", "))
}

// Device is the compute device the engine runs on.
type Device string

const (
	DeviceCPU  Device = "cpu"
	DeviceCUDA Device = "cuda"
)

// SelectDevice resolves a requested device ("auto", "cuda", "cpu") against
// accelerator availability. CUDA is never returned without an accelerator;
// degraded reports whether an explicit cuda request had to fall back.
func SelectDevice(requested string, accelerator bool) (device Device, degraded bool) {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case string(DeviceCPU):
		return DeviceCPU, false
	case string(DeviceCUDA):
		if accelerator {
			return DeviceCUDA, false
		}
		return DeviceCPU, true
	default:
		if accelerator {
			return DeviceCUDA, false
		}
		return DeviceCPU, false
	}
}

// Config is the engine configuration chosen once per run.
type Config struct {
	Tier     Tier
	Device   Device
	Language string
	// Hotwords is the comma-joined phrase list, possibly empty.
	Hotwords string
}

// Request describes one transcription call.
type Request struct {
	AudioPath string
	// WorkDir is a scratch directory the engine may write into.
	WorkDir string
	Config  Config
}

// Segment is one timed piece of recognized text.
type Segment struct {
	Text  string
	Start float64
	End   float64
}

// Result is the engine output for one file.
type Result struct {
	Segments []Segment
	Language string
}

// Text joins trimmed, non-empty segment texts with a single space.
func (r Result) Text() string {
	parts := make([]string, 0, len(r.Segments))
	for _, seg := range r.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}

// Engine transcribes a single audio file.
type Engine interface {
	Transcribe(ctx context.Context, req Request) (Result, error)
}

// Info identifies the engine in reports.
type Info struct {
	Name    string
	Version string
}
