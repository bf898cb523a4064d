package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{60 * time.Second, "1:00"},
		{3*time.Minute + 7*time.Second, "3:07"},
		{-5 * time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatHz(t *testing.T) {
	if got := FormatHz(100); got != "100Hz" {
		t.Errorf("FormatHz(100) = %q", got)
	}
	if got := FormatHz(48000); got != "48.0kHz" {
		t.Errorf("FormatHz(48000) = %q", got)
	}
}

func TestFormatDegrees(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "0°"},
		{90, "90°"},
		{360, "0°"},
		{-15, "345°"},
		{375, "15°"},
	}
	for _, tt := range tests {
		if got := FormatDegrees(tt.deg); got != tt.want {
			t.Errorf("FormatDegrees(%v) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}
