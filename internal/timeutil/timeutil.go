// Package timeutil provides day-boundary helpers and duration
// formatting shared by the CLI output and the TUI.
package timeutil

import (
	"fmt"
	"time"
)

// StartOfDay returns midnight of t's local calendar day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatDuration formats a duration as a compact human-readable string.
// Examples: "45s", "30m", "1h 23m", "2h". Sub-minute durations show
// seconds; anything longer is rounded down to whole minutes.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalMinutes := int(d.Minutes())
	if totalMinutes < 1 {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm", totalMinutes)
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, mins)
}

// FormatClock formats a duration as HH:MM:SS for live timer displays.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
