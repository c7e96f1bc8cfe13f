package tracker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// This file upgrades legacy payload encodings on load. Two historical
// quirks exist in the wild: timestamps stored as Unix seconds (either
// a JSON number or an all-digit string) instead of RFC 3339 strings,
// and containers whose subEntries arrays were round-tripped through a
// serializer that kept them as empty arrays instead of dropping the
// key. Both are repaired before any other code sees the tree, and the
// repair is idempotent.

// parseInstant decodes a raw timestamp value. Accepts null/absent
// (nil), an RFC 3339 string, a Unix-seconds JSON number, or a
// Unix-seconds digit string. Legacy seconds are given the local
// offset of the instant they denote.
func parseInstant(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
			t := time.Unix(secs, 0)
			return &t, nil
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", s, err)
		}
		return &t, nil
	}
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return nil, fmt.Errorf("parsing timestamp %s: unsupported encoding", raw)
	}
	t := time.Unix(secs, 0)
	return &t, nil
}

// Normalize restores leaf mode for any entry whose subEntries survived
// serialization as an empty (or null) array, recursively. Running it
// twice produces the same tree.
func Normalize(entries []*Entry) {
	for _, e := range entries {
		if len(e.SubEntries) == 0 {
			e.SubEntries = nil
			continue
		}
		Normalize(e.SubEntries)
	}
}
