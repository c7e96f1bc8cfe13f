package session

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/avlone/tracknote/internal/store"
)

const (
	runningPayload = `{"entries":[{"name":"work","startTime":"2024-03-05T09:00:00Z","endTime":null}]}`
	stoppedPayload = `{"entries":[{"name":"done","startTime":"2024-03-05T08:00:00Z","endTime":"2024-03-05T08:30:00Z"}]}`
)

func fenced(payload string) string {
	return "```tracknote\n" + payload + "\n```\n"
}

func sessionTime(hour, min int) time.Time {
	return time.Date(2024, time.March, 5, hour, min, 0, 0, time.UTC)
}

func TestLoad(t *testing.T) {
	t.Run("locates and decodes every block", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{
			"today.md": "# Notes\n\n" + fenced(stoppedPayload) + "\n" + fenced(runningPayload),
		})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if len(d.Views) != 2 {
			t.Fatalf("got %d views, expected 2", len(d.Views))
		}
		if d.Views[0].Block != 0 || d.Views[1].Block != 1 {
			t.Error("views are not in document order")
		}
		if d.Views[0].Tracker.IsRunning() {
			t.Error("first block should not be running")
		}
		if !d.Views[1].Tracker.IsRunning() {
			t.Error("second block should be running")
		}
	})

	t.Run("malformed block degrades to an empty tracker", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{
			"today.md": fenced("{broken") + "\n" + fenced(stoppedPayload),
		})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if len(d.Views) != 2 {
			t.Fatalf("got %d views, expected 2", len(d.Views))
		}
		if d.Views[0].DecodeErr == nil {
			t.Error("expected a recorded decode error on the malformed view")
		}
		if len(d.Views[0].Tracker.Entries) != 0 {
			t.Error("expected the malformed view to degrade to an empty tracker")
		}
		if d.Views[1].DecodeErr != nil {
			t.Errorf("valid sibling carries a decode error: %v", d.Views[1].DecodeErr)
		}
	})

	t.Run("missing document", func(t *testing.T) {
		st := store.NewMemStore(nil)
		if _, err := Load(st, "missing.md", nil); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("Load() error = %v, expected ErrNotFound", err)
		}
	})
}

func TestView(t *testing.T) {
	st := store.NewMemStore(map[string]string{"today.md": fenced(stoppedPayload)})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if _, err := d.View(0); err != nil {
		t.Errorf("View(0) returned unexpected error: %v", err)
	}
	for _, block := range []int{-1, 1} {
		if _, err := d.View(block); !errors.Is(err, ErrNoBlock) {
			t.Errorf("View(%d) error = %v, expected ErrNoBlock", block, err)
		}
	}
}

func TestStart(t *testing.T) {
	now := sessionTime(10, 0)

	t.Run("starts and persists", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{
			"today.md": "# Notes\n\n" + fenced(stoppedPayload) + "\ntrailing\n",
		})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		e, err := d.Start(0, "review", now)
		if err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}
		if e.Name != "review" || e.End != nil {
			t.Errorf("started entry = %+v, expected a running entry named review", e)
		}

		text, _ := st.Read("today.md")
		if !strings.HasPrefix(text, "# Notes\n\n") || !strings.HasSuffix(text, "\ntrailing\n") {
			t.Errorf("surrounding text changed:\n%s", text)
		}
		reloaded, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("reload returned unexpected error: %v", err)
		}
		running := reloaded.Views[0].Tracker.Running()
		if running == nil || running.Name != "review" {
			t.Errorf("running after reload = %+v, expected review", running)
		}
	})

	t.Run("stops running entries in other documents first", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{
			"today.md": fenced(stoppedPayload),
			"other.md": fenced(runningPayload),
		})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if _, err := d.Start(0, "review", now); err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}

		other, _ := st.Read("other.md")
		if strings.Contains(other, `"endTime":null`) {
			t.Error("the other document still has a running entry")
		}
		otherDoc, err := Load(st, "other.md", nil)
		if err != nil {
			t.Fatalf("reload of other.md returned unexpected error: %v", err)
		}
		stopped := otherDoc.Views[0].Tracker.Entries[0]
		if stopped.End == nil || !stopped.End.Equal(now) {
			t.Errorf("other document's End = %v, expected the start instant", stopped.End)
		}
	})

	t.Run("stops a running sibling block in the same document", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{
			"today.md": fenced(runningPayload) + "\n" + fenced(stoppedPayload),
		})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if _, err := d.Start(1, "review", now); err != nil {
			t.Fatalf("Start() returned unexpected error: %v", err)
		}

		reloaded, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("reload returned unexpected error: %v", err)
		}
		if reloaded.Views[0].Tracker.IsRunning() {
			t.Error("the sibling block still has a running entry")
		}
		running := reloaded.Views[1].Tracker.Running()
		if running == nil || running.Name != "review" {
			t.Errorf("running after reload = %+v, expected review", running)
		}
	})

	t.Run("unknown block", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{"today.md": fenced(stoppedPayload)})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		if _, err := d.Start(3, "review", now); !errors.Is(err, ErrNoBlock) {
			t.Errorf("Start() error = %v, expected ErrNoBlock", err)
		}
	})
}

func TestContinue(t *testing.T) {
	now := sessionTime(10, 0)
	st := store.NewMemStore(map[string]string{"today.md": fenced(stoppedPayload)})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	target := d.Views[0].Tracker.Entries[0]

	e, err := d.Continue(0, target.ID, "", now)
	if err != nil {
		t.Fatalf("Continue() returned unexpected error: %v", err)
	}
	if e.Name != "Part 2" || e.End != nil {
		t.Errorf("continued entry = %+v, expected a running Part 2", e)
	}
	if !target.IsContainer() {
		t.Error("expected the target to split into a container")
	}

	reloaded, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("reload returned unexpected error: %v", err)
	}
	running := reloaded.Views[0].Tracker.Running()
	if running == nil || running.Name != "Part 2" {
		t.Errorf("running after reload = %+v, expected Part 2", running)
	}

	if _, err := d.Continue(0, "no-such-id", "", now); !errors.Is(err, ErrNoEntry) {
		t.Errorf("Continue() error = %v, expected ErrNoEntry", err)
	}
}

func TestStop(t *testing.T) {
	now := sessionTime(10, 0)

	t.Run("stops and persists", func(t *testing.T) {
		st := store.NewMemStore(map[string]string{"today.md": fenced(runningPayload)})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		stopped, err := d.Stop(0, now)
		if err != nil {
			t.Fatalf("Stop() returned unexpected error: %v", err)
		}
		if !stopped {
			t.Fatal("expected Stop() to report true")
		}
		text, _ := st.Read("today.md")
		if strings.Contains(text, `"endTime":null`) {
			t.Error("the document still has a running entry")
		}
	})

	t.Run("nothing running leaves the document alone", func(t *testing.T) {
		original := fenced(stoppedPayload)
		st := store.NewMemStore(map[string]string{"today.md": original})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		stopped, err := d.Stop(0, now)
		if err != nil {
			t.Fatalf("Stop() returned unexpected error: %v", err)
		}
		if stopped {
			t.Error("expected Stop() to report false")
		}
		text, _ := st.Read("today.md")
		if text != original {
			t.Error("expected the document to stay untouched")
		}
	})
}

func TestRemoveEntry(t *testing.T) {
	st := store.NewMemStore(map[string]string{"today.md": fenced(stoppedPayload)})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	id := d.Views[0].Tracker.Entries[0].ID

	removed, err := d.RemoveEntry(0, "no-such-id")
	if err != nil {
		t.Fatalf("RemoveEntry() returned unexpected error: %v", err)
	}
	if removed {
		t.Error("expected removal of an unknown id to report false")
	}

	removed, err = d.RemoveEntry(0, id)
	if err != nil {
		t.Fatalf("RemoveEntry() returned unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected removal to report true")
	}
	text, _ := st.Read("today.md")
	if !strings.Contains(text, `{"entries":[]}`) {
		t.Errorf("document = %q, expected an empty tracker payload", text)
	}
}

func TestSetCollapsed(t *testing.T) {
	payload := `{"entries":[{"name":"group","startTime":null,"endTime":null,"subEntries":[{"name":"Part 1","startTime":"2024-03-05T08:00:00Z","endTime":"2024-03-05T08:30:00Z"},{"name":"Part 2","startTime":"2024-03-05T08:30:00Z","endTime":"2024-03-05T09:00:00Z"}]}]}`
	st := store.NewMemStore(map[string]string{"today.md": fenced(payload)})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	id := d.Views[0].Tracker.Entries[0].ID

	if err := d.SetCollapsed(0, id, true); err != nil {
		t.Fatalf("SetCollapsed() returned unexpected error: %v", err)
	}
	reloaded, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("reload returned unexpected error: %v", err)
	}
	if !reloaded.Views[0].Tracker.Entries[0].Collapsed {
		t.Error("expected the collapsed flag to persist")
	}

	if err := d.SetCollapsed(0, "no-such-id", true); !errors.Is(err, ErrNoEntry) {
		t.Errorf("SetCollapsed() error = %v, expected ErrNoEntry", err)
	}
}

func TestSave_RefreshesSections(t *testing.T) {
	// A multi-line payload collapses to one line on save, shifting the
	// second block's span upwards.
	multiline := "```tracknote\n{\n\"entries\": []\n}\n```\n"
	st := store.NewMemStore(map[string]string{
		"today.md": multiline + "\n" + fenced(stoppedPayload),
	})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	secondBefore := d.Views[1].Section

	if err := d.Save(d.Views[0]); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}
	secondAfter := d.Views[1].Section
	if secondAfter.LineStart != secondBefore.LineStart-2 {
		t.Errorf("second block LineStart = %d, expected %d after the collapse",
			secondAfter.LineStart, secondBefore.LineStart-2)
	}

	// Mutating through the refreshed section must hit the right block.
	if _, err := d.Start(1, "after", sessionTime(11, 0)); err != nil {
		t.Fatalf("Start() after refresh returned unexpected error: %v", err)
	}
	reloaded, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("reload returned unexpected error: %v", err)
	}
	if got := len(reloaded.Views); got != 2 {
		t.Fatalf("got %d blocks after save, expected 2", got)
	}
	running := reloaded.Views[1].Tracker.Running()
	if running == nil || running.Name != "after" {
		t.Errorf("running after reload = %+v, expected the new entry in block 1", running)
	}
}

func TestSave_VanishedDocumentIsNoOp(t *testing.T) {
	st := store.NewMemStore(map[string]string{"today.md": fenced(runningPayload)})
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	// The document disappears between load and save.
	gone := &vanishingStore{MemStore: st}
	d.st = gone

	if _, err := d.Stop(0, sessionTime(10, 0)); err != nil {
		t.Errorf("Stop() against a vanished document = %v, expected a silent no-op", err)
	}
}

// vanishingStore reports every write as ErrNotFound.
type vanishingStore struct {
	*store.MemStore
}

func (s *vanishingStore) Write(path, text string) error {
	return fmt.Errorf("%s: %w", path, store.ErrNotFound)
}

func TestInsert(t *testing.T) {
	st := store.NewMemStore(map[string]string{"today.md": "# Notes\n"})

	if err := Insert(st, "today.md", "1h30m"); err != nil {
		t.Fatalf("Insert() returned unexpected error: %v", err)
	}
	d, err := Load(st, "today.md", nil)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if len(d.Views) != 1 {
		t.Fatalf("got %d blocks, expected 1", len(d.Views))
	}
	v := d.Views[0]
	if len(v.Tracker.Entries) != 0 {
		t.Error("expected the inserted tracker to start empty")
	}
	if v.Tracker.TargetTime != "1h30m" {
		t.Errorf("TargetTime = %q, expected %q", v.Tracker.TargetTime, "1h30m")
	}

	if err := Insert(st, "missing.md", ""); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Insert() error = %v, expected ErrNotFound", err)
	}
}

func TestMalformedBlockIsReadOnly(t *testing.T) {
	now := sessionTime(10, 0)
	malformed := `{"entries": [ oops`
	original := "# Notes\n\n" + fenced(malformed) + "\n" + fenced(stoppedPayload)

	load := func(t *testing.T) (*store.MemStore, *Document) {
		t.Helper()
		st := store.NewMemStore(map[string]string{"today.md": original})
		d, err := Load(st, "today.md", nil)
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}
		return st, d
	}

	t.Run("every mutation refuses the block", func(t *testing.T) {
		st, d := load(t)
		id := d.Views[1].Tracker.Entries[0].ID

		mutations := []struct {
			name string
			call func() error
		}{
			{"Start", func() error { _, err := d.Start(0, "new work", now); return err }},
			{"Continue", func() error { _, err := d.Continue(0, id, "more", now); return err }},
			{"Stop", func() error { _, err := d.Stop(0, now); return err }},
			{"RemoveEntry", func() error { _, err := d.RemoveEntry(0, id); return err }},
			{"SetCollapsed", func() error { return d.SetCollapsed(0, id, true) }},
			{"Save", func() error { return d.Save(d.Views[0]) }},
		}
		for _, m := range mutations {
			if err := m.call(); !errors.Is(err, ErrMalformedBlock) {
				t.Errorf("%s error = %v, expected ErrMalformedBlock", m.name, err)
			}
		}

		text, _ := st.Read("today.md")
		if text != original {
			t.Errorf("document changed despite refused mutations:\n%s", text)
		}
	})

	t.Run("valid sibling stays writable, malformed payload survives", func(t *testing.T) {
		st, d := load(t)
		if _, err := d.Start(1, "new work", now); err != nil {
			t.Fatalf("Start() on the valid block returned unexpected error: %v", err)
		}
		text, _ := st.Read("today.md")
		if !strings.Contains(text, malformed) {
			t.Errorf("original malformed payload was overwritten:\n%s", text)
		}
		if !strings.Contains(text, "new work") {
			t.Errorf("valid block was not persisted:\n%s", text)
		}
	})
}
