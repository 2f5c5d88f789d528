package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DurationProber measures media length in seconds.
type DurationProber interface {
	Duration(ctx context.Context, path string) (float64, error)
}

// DurationInfo is either a valid duration or a failure marker.
type DurationInfo struct {
	// Human is MM:SS below one hour and HH:MM:SS otherwise.
	Human string
	// Seconds is truncated to whole seconds.
	Seconds int
	Err     error
}

// OK reports whether the probe produced a usable duration.
func (d DurationInfo) OK() bool {
	return d.Err == nil
}

// ProbeDuration measures file through prober. Every failure, including a
// panic inside the prober, is folded into the returned DurationInfo.
func ProbeDuration(ctx context.Context, prober DurationProber, file MediaFile) (info DurationInfo) {
	defer func() {
		if r := recover(); r != nil {
			info = DurationInfo{Err: fmt.Errorf("duration probe panicked: %v", r)}
		}
	}()
	if prober == nil {
		return DurationInfo{Err: errors.New("no duration prober configured")}
	}
	seconds, err := prober.Duration(ctx, file.Path)
	if err != nil {
		return DurationInfo{Err: err}
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return DurationInfo{Err: fmt.Errorf("invalid duration %v", seconds)}
	}
	whole := int(seconds)
	return DurationInfo{Human: FormatDuration(whole), Seconds: whole}
}

// FormatDuration renders whole seconds as MM:SS, or HH:MM:SS from one hour up.
// Negative input is treated as zero.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// ParseDuration is the inverse of FormatDuration and accepts MM:SS or HH:MM:SS.
func ParseDuration(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("parse duration %q: want MM:SS or HH:MM:SS", value)
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("parse duration %q: invalid field %q", value, part)
		}
		if i > 0 && n > 59 {
			return 0, fmt.Errorf("parse duration %q: field %q out of range", value, part)
		}
		nums[i] = n
	}
	if len(nums) == 2 {
		return nums[0]*60 + nums[1], nil
	}
	return nums[0]*3600 + nums[1]*60 + nums[2], nil
}
