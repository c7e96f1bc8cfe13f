// Package autostop closes running entries across the whole document
// store. It is the mechanism behind "at most one running entry
// system-wide": before anything starts anywhere, a sweep stops
// whatever is still open in any other document.
//
// The scanner deliberately does not reuse the line-based Section
// addressing from internal/document: it must check and potentially
// rewrite several blocks per document in one pass, and needs only the
// matched substring of each block, not precise line ranges.
package autostop

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/avlone/tracknote/internal/document"
	"github.com/avlone/tracknote/internal/store"
	"github.com/avlone/tracknote/internal/tracker"
)

// blockPattern matches one fenced tracker block with its payload
// captured. The (?s) flag lets the non-greedy payload group span
// hand-edited multi-line payloads.
var blockPattern = regexp.MustCompile(
	"(?s)```" + regexp.QuoteMeta(document.FenceTag) + "[ \t]*\r?\n(.*?)\r?\n```")

// StopDocument stops every running entry in every tracker block of
// text and returns the updated text together with whether anything
// changed. Blocks that fail to decode are skipped, not failed: one
// malformed block must not keep valid siblings in the same document
// from being processed.
func StopDocument(text string, now time.Time, log *slog.Logger) (string, bool) {
	log = orDiscard(log)

	matches := blockPattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, false
	}

	var b strings.Builder
	last := 0
	changed := false
	for _, m := range matches {
		payloadStart, payloadEnd := m[2], m[3]
		t, err := tracker.Decode(text[payloadStart:payloadEnd])
		if err != nil {
			log.Warn("skipping malformed tracker block", "error", err)
			continue
		}
		if !t.StopRunning(now) {
			continue
		}
		encoded, err := tracker.Encode(t)
		if err != nil {
			log.Warn("skipping unencodable tracker block", "error", err)
			continue
		}
		b.WriteString(text[last:payloadStart])
		b.WriteString(encoded)
		last = payloadEnd
		changed = true
	}
	if !changed {
		return text, false
	}
	b.WriteString(text[last:])
	return b.String(), true
}

// Sweep runs StopDocument over every document in the store, writes
// back only the documents that changed, and returns how many were
// modified. Per-document read and write failures are logged and
// skipped rather than aborting the sweep.
func Sweep(st store.Store, now time.Time, log *slog.Logger) (int, error) {
	return SweepExcept(st, now, log, "")
}

// SweepExcept is Sweep with one document left untouched, for callers
// that hold that document in memory and stop it directly.
func SweepExcept(st store.Store, now time.Time, log *slog.Logger, skip string) (int, error) {
	log = orDiscard(log)

	paths, err := st.List()
	if err != nil {
		return 0, err
	}
	modified := 0
	for _, path := range paths {
		if path == skip {
			continue
		}
		text, err := st.Read(path)
		if err != nil {
			log.Warn("skipping unreadable document", "path", path, "error", err)
			continue
		}
		updated, changed := StopDocument(text, now, log.With("path", path))
		if !changed {
			continue
		}
		if err := st.Write(path, updated); err != nil {
			log.Warn("skipping unwritable document", "path", path, "error", err)
			continue
		}
		modified++
	}
	return modified, nil
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return log
}
