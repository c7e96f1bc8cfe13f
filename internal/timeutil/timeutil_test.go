package timeutil

import (
	"testing"
	"time"
)

func TestStartOfDay(t *testing.T) {
	in := time.Date(2024, time.March, 5, 14, 30, 45, 123, time.Local)
	got := StartOfDay(in)
	want := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, expected %v", got, want)
	}
	if !StartOfDay(want).Equal(want) {
		t.Error("StartOfDay at midnight should be a fixed point")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{time.Minute, "1m"},
		{30 * time.Minute, "30m"},
		{59*time.Minute + 59*time.Second, "59m"},
		{time.Hour, "1h"},
		{time.Hour + 23*time.Minute, "1h 23m"},
		{2 * time.Hour, "2h"},
		{25*time.Hour + 5*time.Minute, "25h 5m"},
		{-time.Minute, "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.expected {
				t.Errorf("FormatDuration(%v) = %q, expected %q", tt.d, got, tt.expected)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "00:00:00"},
		{9 * time.Second, "00:00:09"},
		{time.Minute + 5*time.Second, "00:01:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{26 * time.Hour, "26:00:00"},
		{-time.Second, "00:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := FormatClock(tt.d); got != tt.expected {
				t.Errorf("FormatClock(%v) = %q, expected %q", tt.d, got, tt.expected)
			}
		})
	}
}
