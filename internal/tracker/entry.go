// Package tracker implements the time-tracker model embedded in
// documents: a tree of named timed segments, duration computation over
// the tree, the mutation operations (start, continue, stop, remove),
// and the JSON codec for the embedded payload format.
package tracker

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one node in a tracker's tree: either a leaf that owns its
// own start/end instants, or a container whose duration is derived
// from its children. Mode is decided by SubEntries: empty means leaf.
//
// A container never rests with exactly one child; removal flattens
// such a container back into a leaf (see Remove).
type Entry struct {
	// ID identifies the entry for the lifetime of one in-memory tree.
	// Assigned at decode/creation, never persisted.
	ID string `json:"-"`

	// Name is the display name. It may contain inline markdown,
	// rendered by the display layer.
	Name string

	// Start is the instant the segment began. Nil only transiently,
	// for an entry converted into a pure container of sub-entries.
	Start *time.Time

	// End is nil exactly when this leaf is the running entry.
	End *time.Time

	// SubEntries holds the ordered children. Non-empty makes this
	// entry a container; its own Start/End are then ignored.
	SubEntries []*Entry

	// Collapsed is a display-only flag; no duration or state
	// computation reads it.
	Collapsed bool
}

// Tracker is one whole time-tracking record, as embedded in a single
// fenced block of a document.
type Tracker struct {
	Entries []*Entry

	// TargetTime is an optional duration-spec string ("2h30m",
	// "1d5h") used only for progress display.
	TargetTime string
}

// New returns an empty tracker with a non-nil entry list.
func New() *Tracker {
	return &Tracker{Entries: []*Entry{}}
}

// IsContainer reports whether e derives its duration from children.
func (e *Entry) IsContainer() bool {
	return len(e.SubEntries) > 0
}

// IsLeaf reports whether e owns its own start/end instants.
func (e *Entry) IsLeaf() bool {
	return !e.IsContainer()
}

// entryJSON is the wire shape of an Entry. Field order here is the
// serialized key order. startTime and endTime are always present
// (null when unset); subEntries and collapsed are omitted at rest.
type entryJSON struct {
	Name       string          `json:"name"`
	Start      *string         `json:"startTime"`
	End        *string         `json:"endTime"`
	SubEntries []*Entry        `json:"subEntries,omitempty"`
	Collapsed  bool            `json:"collapsed,omitempty"`
}

// entryWire is the decode-side counterpart of entryJSON. Timestamps
// stay raw so legacy encodings (Unix-seconds numbers or digit
// strings) can be migrated during parse.
type entryWire struct {
	Name       string          `json:"name"`
	Start      json.RawMessage `json:"startTime"`
	End        json.RawMessage `json:"endTime"`
	SubEntries []*Entry        `json:"subEntries"`
	Collapsed  bool            `json:"collapsed"`
}

// MarshalJSON writes the canonical wire form: timestamps as RFC 3339
// strings (second precision) or null.
func (e *Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Name:       e.Name,
		Start:      formatInstant(e.Start),
		End:        formatInstant(e.End),
		SubEntries: e.SubEntries,
		Collapsed:  e.Collapsed,
	})
}

// UnmarshalJSON reads the wire form, accepting both canonical RFC 3339
// timestamps and the legacy Unix-seconds encoding.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var wire entryWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	start, err := parseInstant(wire.Start)
	if err != nil {
		return err
	}
	end, err := parseInstant(wire.End)
	if err != nil {
		return err
	}
	e.Name = wire.Name
	e.Start = start
	e.End = end
	e.SubEntries = wire.SubEntries
	e.Collapsed = wire.Collapsed
	return nil
}

// trackerJSON fixes the serialized key order of a Tracker. entries is
// always present, even when empty.
type trackerJSON struct {
	Entries    []*Entry `json:"entries"`
	TargetTime string   `json:"targetTime,omitempty"`
}

// MarshalJSON writes the tracker wire form with a non-null entries
// array.
func (t *Tracker) MarshalJSON() ([]byte, error) {
	entries := t.Entries
	if entries == nil {
		entries = []*Entry{}
	}
	return json.Marshal(trackerJSON{Entries: entries, TargetTime: t.TargetTime})
}

// UnmarshalJSON reads the tracker wire form.
func (t *Tracker) UnmarshalJSON(data []byte) error {
	var wire trackerJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.Entries = wire.Entries
	t.TargetTime = wire.TargetTime
	return nil
}

// formatInstant renders an instant for the wire: RFC 3339 with offset,
// second precision. Nil stays null.
func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// newID returns a fresh entry identifier.
func newID() string {
	return uuid.NewString()
}

// ensureIDs assigns identifiers to every entry in the tree that does
// not have one yet. Called after decode and by the constructors.
func ensureIDs(entries []*Entry) {
	for _, e := range entries {
		if e.ID == "" {
			e.ID = newID()
		}
		ensureIDs(e.SubEntries)
	}
}
