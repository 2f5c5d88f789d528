package engine

import "testing"

func TestParseTier(t *testing.T) {
	for _, name := range TierNames() {
		got, err := ParseTier(name)
		if err != nil {
			t.Fatalf("ParseTier(%q) returned error: %v", name, err)
		}
		if string(got) != name {
			t.Fatalf("ParseTier(%q) = %q", name, got)
		}
	}
	if got, err := ParseTier(" Small.EN "); err != nil || got != TierSmallEN {
		t.Fatalf("ParseTier mixed case = %q, %v", got, err)
	}
	if _, err := ParseTier("large-v3"); err == nil {
		t.Fatal("expected error for unsupported tier")
	}
}

func TestSelectDevice(t *testing.T) {
	tests := []struct {
		requested   string
		accelerator bool
		want        Device
		degraded    bool
	}{
		{"auto", true, DeviceCUDA, false},
		{"auto", false, DeviceCPU, false},
		{"", false, DeviceCPU, false},
		{"cuda", true, DeviceCUDA, false},
		{"cuda", false, DeviceCPU, true},
		{"cpu", true, DeviceCPU, false},
	}
	for _, tt := range tests {
		got, degraded := SelectDevice(tt.requested, tt.accelerator)
		if got != tt.want || degraded != tt.degraded {
			t.Fatalf("SelectDevice(%q, %v) = %q, %v, want %q, %v", tt.requested, tt.accelerator, got, degraded, tt.want, tt.degraded)
		}
	}
}

func TestResultTextJoinsTrimmedSegments(t *testing.T) {
	result := Result{Segments: []Segment{
		{Text: "hello "},
		{Text: "   "},
		{Text: " world"},
	}}
	if got := result.Text(); got != "hello world" {
		t.Fatalf("Text() = %q, want %q", got, "hello world")
	}
	if got := (Result{}).Text(); got != "" {
		t.Fatalf("empty Text() = %q", got)
	}
}
