// Package session drives one render/mutate/persist cycle: load the
// tracker blocks of a document, mutate them through the tracker
// operations, and persist through the section rewriter. It also
// enforces the global start discipline: before anything starts, every
// other running entry in the whole store is stopped.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/avlone/tracknote/internal/autostop"
	"github.com/avlone/tracknote/internal/document"
	"github.com/avlone/tracknote/internal/store"
	"github.com/avlone/tracknote/internal/tracker"
)

var (
	// ErrNoBlock is returned when a document has no tracker block at
	// the requested index.
	ErrNoBlock = errors.New("no tracker block at index")

	// ErrNoEntry is returned when an entry id resolves to nothing in
	// the addressed tracker.
	ErrNoEntry = errors.New("entry not found")

	// ErrMalformedBlock is returned when a mutation addresses a block
	// whose payload failed to decode. The degraded empty tracker is
	// read-only: writing it back would replace the user's original
	// text.
	ErrMalformedBlock = errors.New("tracker block payload is malformed")
)

// View is one tracker block of a loaded document: the decoded tracker,
// the payload's current line span, and the block's document-order
// index. DecodeErr records a malformed payload that degraded to an
// empty tracker.
type View struct {
	Tracker   *tracker.Tracker
	Section   document.Section
	Block     int
	DecodeErr error
}

// Document is a loaded document and its tracker views. A Document does
// not outlive one render/mutate/persist cycle: sections go stale the
// moment any other actor edits the file.
type Document struct {
	Path  string
	Text  string
	Views []*View

	st  store.Store
	log *slog.Logger
}

// Load reads the document at path and locates and decodes every
// tracker block in it. A block that fails to decode degrades to an
// empty tracker and is reported, never a crash.
func Load(st store.Store, path string, log *slog.Logger) (*Document, error) {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	text, err := st.Read(path)
	if err != nil {
		return nil, err
	}
	d := &Document{Path: path, Text: text, st: st, log: log}
	for i, b := range document.Blocks(text, document.FenceTag) {
		t, decodeErr := tracker.Decode(b.Payload)
		if decodeErr != nil {
			log.Warn("malformed tracker block, treating as empty",
				"path", path, "block", i, "error", decodeErr)
		}
		d.Views = append(d.Views, &View{
			Tracker:   t,
			Section:   b.Section,
			Block:     i,
			DecodeErr: decodeErr,
		})
	}
	return d, nil
}

// View returns the tracker view at the given block index.
func (d *Document) View(block int) (*View, error) {
	if block < 0 || block >= len(d.Views) {
		return nil, fmt.Errorf("%w: %d (document has %d)", ErrNoBlock, block, len(d.Views))
	}
	return d.Views[block], nil
}

// mutableView returns the view at block, refusing one whose payload
// failed to decode: its empty tracker is a degraded stand-in, not the
// block's content, and must never be written back over the original.
func (d *Document) mutableView(block int) (*View, error) {
	v, err := d.View(block)
	if err != nil {
		return nil, err
	}
	if v.DecodeErr != nil {
		return nil, fmt.Errorf("%w: block %d: %v", ErrMalformedBlock, v.Block, v.DecodeErr)
	}
	return v, nil
}

// Save persists one view's tracker by re-splicing its section.
func (d *Document) Save(v *View) error {
	return d.saveViews([]*View{v})
}

// saveViews re-splices every given view into the document text and
// writes the file once. Views are spliced bottom-up so earlier
// sections stay valid while later ones are replaced; afterwards all
// views' sections are re-located, since a splice may change the
// document's line count. A view carrying a decode error is refused
// with ErrMalformedBlock. A save against a path that vanished from the
// store is a no-op, not an error.
func (d *Document) saveViews(views []*View) error {
	if len(views) == 0 {
		return nil
	}
	for _, v := range views {
		if v.DecodeErr != nil {
			return fmt.Errorf("%w: block %d: %v", ErrMalformedBlock, v.Block, v.DecodeErr)
		}
	}
	sorted := append([]*View{}, views...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Section.LineStart > sorted[j].Section.LineStart
	})

	text := d.Text
	for _, v := range sorted {
		payload, err := tracker.Encode(v.Tracker)
		if err != nil {
			return err
		}
		text = document.Splice(text, v.Section, payload)
	}

	if err := d.st.Write(d.Path, text); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			d.log.Warn("document gone, skipping save", "path", d.Path)
			return nil
		}
		return err
	}

	d.Text = text
	d.refreshSections()
	return nil
}

// refreshSections re-locates every block and updates the views' line
// spans from the current text.
func (d *Document) refreshSections() {
	blocks := document.Blocks(d.Text, document.FenceTag)
	for _, v := range d.Views {
		if v.Block < len(blocks) {
			v.Section = blocks[v.Block].Section
		}
	}
}

// stopOthers enforces the global start discipline at instant now:
// every other document in the store is swept by the auto-stop scanner,
// and this document's in-memory trackers are stopped directly (they
// are already loaded, so a file rewrite would only invalidate them).
// Returns the views whose trackers changed and still need saving.
func (d *Document) stopOthers(now time.Time) ([]*View, error) {
	if _, err := autostop.SweepExcept(d.st, now, d.log, d.Path); err != nil {
		return nil, err
	}
	var dirty []*View
	for _, v := range d.Views {
		if v.Tracker.StopRunning(now) {
			dirty = append(dirty, v)
		}
	}
	return dirty, nil
}

// Start stops every running entry store-wide, then starts a new
// top-level entry in the addressed block and persists the document.
func (d *Document) Start(block int, name string, now time.Time) (*tracker.Entry, error) {
	v, err := d.mutableView(block)
	if err != nil {
		return nil, err
	}
	dirty, err := d.stopOthers(now)
	if err != nil {
		return nil, err
	}
	e := v.Tracker.StartEntry(name, now)
	return e, d.saveViews(appendView(dirty, v))
}

// Continue stops every running entry store-wide, then starts a new
// running sub-entry under the identified entry (splitting it into a
// container first when it is still a leaf) and persists the document.
func (d *Document) Continue(block int, id, name string, now time.Time) (*tracker.Entry, error) {
	v, err := d.mutableView(block)
	if err != nil {
		return nil, err
	}
	target := tracker.FindByID(v.Tracker.Entries, id)
	if target == nil {
		return nil, ErrNoEntry
	}
	dirty, err := d.stopOthers(now)
	if err != nil {
		return nil, err
	}
	e := target.StartSub(name, now)
	return e, d.saveViews(appendView(dirty, v))
}

// Stop stops the addressed block's running entry, if any, and persists
// the document when something actually stopped.
func (d *Document) Stop(block int, now time.Time) (bool, error) {
	v, err := d.mutableView(block)
	if err != nil {
		return false, err
	}
	if !v.Tracker.StopRunning(now) {
		return false, nil
	}
	return true, d.Save(v)
}

// RemoveEntry removes the identified entry from the addressed block
// and persists the document. Reports false, without error, when the id
// resolves to nothing. Removing the running entry is a precondition
// violation the caller must prevent.
func (d *Document) RemoveEntry(block int, id string) (bool, error) {
	v, err := d.mutableView(block)
	if err != nil {
		return false, err
	}
	if !v.Tracker.Remove(id) {
		return false, nil
	}
	return true, d.Save(v)
}

// SetCollapsed toggles the display-only collapsed flag on the
// identified entry and persists the document.
func (d *Document) SetCollapsed(block int, id string, collapsed bool) error {
	v, err := d.mutableView(block)
	if err != nil {
		return err
	}
	e := tracker.FindByID(v.Tracker.Entries, id)
	if e == nil {
		return ErrNoEntry
	}
	e.Collapsed = collapsed
	return d.Save(v)
}

// Insert appends a fresh tracker block (empty entries, optional target
// time) to the document at path.
func Insert(st store.Store, path, targetTime string) error {
	text, err := st.Read(path)
	if err != nil {
		return err
	}
	t := tracker.New()
	t.TargetTime = targetTime
	payload, err := tracker.Encode(t)
	if err != nil {
		return err
	}
	return st.Write(path, document.AppendBlock(text, document.FenceTag, payload))
}

func appendView(views []*View, v *View) []*View {
	for _, existing := range views {
		if existing == v {
			return views
		}
	}
	return append(views, v)
}
