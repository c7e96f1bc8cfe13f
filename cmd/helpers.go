package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avlone/tracknote/internal/config"
	"github.com/avlone/tracknote/internal/session"
	"github.com/avlone/tracknote/internal/store"
	"github.com/avlone/tracknote/internal/tracker"
)

// openStore opens the document store at the --store root. On failure
// it prints the user-facing error and exits; the false return lets
// callers bail out in tests where Exit does not terminate.
func openStore() (store.Store, bool) {
	st, err := deps.NewStore(storeRoot)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open document store")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Pass a directory of markdown documents with --store (got %q)\n", storeRoot)
		deps.Exit(1)
		return nil, false
	}
	return st, true
}

// loadDocument loads one document's tracker views.
func loadDocument(st store.Store, path string) (*session.Document, bool) {
	doc, err := session.Load(st, path, newLogger())
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to read document '%s'\n", path)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return nil, false
	}
	return doc, true
}

// loadConfig reads the settings file, warning (not failing) when it is
// unusable.
func loadConfig() config.Config {
	path, err := deps.ConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}
	return cfg
}

// parseEntryPath converts a dotted 1-based index path like "2.1" into
// 0-based child indexes over insertion order.
func parseEntryPath(s string) ([]int, error) {
	parts := strings.Split(s, ".")
	path := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid entry path %q: expected dotted 1-based indexes like 2.1", s)
		}
		path = append(path, n-1)
	}
	return path, nil
}

// resolveEntry resolves a dotted entry path within a tracker, printing
// the usual error trio on failure.
func resolveEntry(t *tracker.Tracker, pathArg string) (*tracker.Entry, bool) {
	path, err := parseEntryPath(pathArg)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid entry path '%s'\n", pathArg)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use the indexes shown by 'tracknote report', e.g. 2 or 2.1")
		deps.Exit(1)
		return nil, false
	}
	e := tracker.EntryAt(t.Entries, path)
	if e == nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry at path '%s'\n", pathArg)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use the indexes shown by 'tracknote report', e.g. 2 or 2.1")
		deps.Exit(1)
		return nil, false
	}
	return e, true
}
