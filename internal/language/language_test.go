package language

import (
	"testing"
)

func TestToISO2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ru", "ru"},
		{"RU", "ru"},
		{" en ", "en"},
		{"rus", "ru"},
		{"eng", "en"},
		{"deu", "de"},
		{"russian", "ru"},
		{"English", "en"},
		{"", ""},
		{" ", ""},
		{"not a language", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ToISO2(tt.input); got != tt.expected {
				t.Errorf("ToISO2(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ru", "Russian"},
		{"en", "English"},
		{"fr", "French"},
		{"", "Unknown"},
		{"???", "???"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := DisplayName(tt.input); got != tt.expected {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
