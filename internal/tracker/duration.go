package tracker

import (
	"time"

	"github.com/avlone/tracknote/internal/timeutil"
)

// Duration returns the elapsed time of e at instant now. Containers
// sum their children; leaves measure end minus start, with a nil end
// (running leaf) measured against now.
func (e *Entry) Duration(now time.Time) time.Duration {
	if e.IsContainer() {
		return TotalDuration(e.SubEntries, now)
	}
	if e.Start == nil {
		return 0
	}
	end := now
	if e.End != nil {
		end = *e.End
	}
	return end.Sub(*e.Start)
}

// DurationToday returns the portion of e's elapsed time that falls
// within now's local calendar day. A leaf that ended before today
// contributes nothing; one that started before today is measured from
// today's start.
func (e *Entry) DurationToday(now time.Time) time.Duration {
	if e.IsContainer() {
		return TotalDurationToday(e.SubEntries, now)
	}
	if e.Start == nil {
		return 0
	}
	dayStart := timeutil.StartOfDay(now)
	end := now
	if e.End != nil {
		end = *e.End
	}
	if end.Before(dayStart) {
		return 0
	}
	start := *e.Start
	if start.Before(dayStart) {
		start = dayStart
	}
	return end.Sub(start)
}

// TotalDuration sums Duration over a sequence of entries.
func TotalDuration(entries []*Entry, now time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.Duration(now)
	}
	return total
}

// TotalDurationToday sums DurationToday over a sequence of entries.
func TotalDurationToday(entries []*Entry, now time.Time) time.Duration {
	var total time.Duration
	for _, e := range entries {
		total += e.DurationToday(now)
	}
	return total
}

// RunningEntry returns the first leaf with a nil end instant, searching
// depth-first in insertion order, or nil when nothing is running. The
// insertion-order walk guarantees a single stable result even when the
// display layer reverses entries for presentation.
func RunningEntry(entries []*Entry) *Entry {
	for _, e := range entries {
		if e.IsContainer() {
			if r := RunningEntry(e.SubEntries); r != nil {
				return r
			}
			continue
		}
		if e.End == nil {
			return e
		}
	}
	return nil
}

// Running returns the tracker's running leaf, or nil.
func (t *Tracker) Running() *Entry {
	return RunningEntry(t.Entries)
}

// IsRunning reports whether the tracker has a running leaf.
func (t *Tracker) IsRunning() bool {
	return t.Running() != nil
}
