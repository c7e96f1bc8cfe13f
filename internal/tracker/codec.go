package tracker

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Encode serializes the tracker to its canonical single-line JSON
// payload form.
func Encode(t *Tracker) (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("encoding tracker: %w", err)
	}
	return string(data), nil
}

// Decode parses a payload into a Tracker. Hand-edited payloads may
// carry JSONC extensions (comments, trailing commas); those are
// stripped before the strict parse. On any parse failure Decode
// returns an empty tracker together with the error, so a malformed
// block degrades to "empty" for the caller instead of crashing it.
// On success the tree is normalized (legacy repairs) and every entry
// gets an identifier.
func Decode(payload string) (*Tracker, error) {
	stripped := jsonc.ToJSON([]byte(payload))

	var t Tracker
	if err := json.Unmarshal(stripped, &t); err != nil {
		return New(), fmt.Errorf("decoding tracker: %w", err)
	}
	if t.Entries == nil {
		t.Entries = []*Entry{}
	}
	Normalize(t.Entries)
	ensureIDs(t.Entries)
	return &t, nil
}
