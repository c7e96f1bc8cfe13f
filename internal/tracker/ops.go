package tracker

import (
	"fmt"
	"time"
)

// A leaf moves Idle→Running on start (start set, end nil) and
// Running→Stopped on stop (end set). A stopped leaf never reopens;
// continuing one appends a new sibling leaf instead.

// StartEntry appends a new running leaf to the tracker's top level and
// returns it. An empty name is synthesized as "Segment {n+1}" from the
// current top-level count. Stopping whatever else is running first is
// the caller's responsibility (see session).
func (t *Tracker) StartEntry(name string, now time.Time) *Entry {
	if name == "" {
		name = fmt.Sprintf("Segment %d", len(t.Entries)+1)
	}
	e := &Entry{
		ID:    newID(),
		Name:  name,
		Start: &now,
	}
	t.Entries = append(t.Entries, e)
	return e
}

// StartSub appends a new running child to e and returns it. When e is
// still a leaf it is first converted to a container: its own times
// move into a new first child named "Part 1" and its own times clear.
// An empty name is synthesized as "Part {k+1}" from the child count.
func (e *Entry) StartSub(name string, now time.Time) *Entry {
	if e.IsLeaf() {
		first := &Entry{
			ID:    newID(),
			Name:  "Part 1",
			Start: e.Start,
			End:   e.End,
		}
		e.Start = nil
		e.End = nil
		e.SubEntries = []*Entry{first}
	}
	if name == "" {
		name = fmt.Sprintf("Part %d", len(e.SubEntries)+1)
	}
	child := &Entry{
		ID:    newID(),
		Name:  name,
		Start: &now,
	}
	e.SubEntries = append(e.SubEntries, child)
	return child
}

// StopRunning stops the first running leaf found in entries, setting
// its end to now. Returns false when nothing in scope is running.
func StopRunning(entries []*Entry, now time.Time) bool {
	r := RunningEntry(entries)
	if r == nil {
		return false
	}
	r.End = &now
	return true
}

// StopRunning stops the tracker's running leaf, if any.
func (t *Tracker) StopRunning(now time.Time) bool {
	return StopRunning(t.Entries, now)
}

// Remove deletes the entry with the given id from the tree rooted at
// *entries and reports whether it was found. After a removal deeper in
// the tree leaves a container with exactly one child, the container
// flattens: it adopts the surviving child's times (and any children)
// and drops the wrapper. Removing the running leaf is a precondition
// violation the caller must prevent; it is not checked here.
func Remove(entries *[]*Entry, id string) bool {
	for i, e := range *entries {
		if e.ID == id {
			*entries = append((*entries)[:i], (*entries)[i+1:]...)
			return true
		}
	}
	for _, e := range *entries {
		if len(e.SubEntries) == 0 {
			continue
		}
		if !Remove(&e.SubEntries, id) {
			continue
		}
		if len(e.SubEntries) == 1 {
			survivor := e.SubEntries[0]
			e.Start = survivor.Start
			e.End = survivor.End
			e.SubEntries = survivor.SubEntries
		}
		return true
	}
	return false
}

// Remove deletes the entry with the given id from the tracker.
func (t *Tracker) Remove(id string) bool {
	return Remove(&t.Entries, id)
}

// FindByID returns the entry with the given id, searching depth-first,
// or nil.
func FindByID(entries []*Entry, id string) *Entry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
		if found := FindByID(e.SubEntries, id); found != nil {
			return found
		}
	}
	return nil
}

// EntryAt resolves a sequence of 0-based child indexes (insertion
// order) to an entry, or nil when any index is out of range.
func EntryAt(entries []*Entry, path []int) *Entry {
	var current *Entry
	for _, idx := range path {
		if idx < 0 || idx >= len(entries) {
			return nil
		}
		current = entries[idx]
		entries = current.SubEntries
	}
	return current
}
