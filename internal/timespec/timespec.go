// Package timespec parses the target-time spec strings attached to a
// tracker, like "2h30m" or "1d5h".
package timespec

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// specPattern matches the target-time grammar: all groups optional, in
// this fixed order. Units are calendar-naive constants (y=365d, M=30d).
var specPattern = regexp.MustCompile(`^(?:(\d+)y)?(?:(\d+)M)?(?:(\d+)d)?(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

var unitDurations = [...]time.Duration{
	365 * 24 * time.Hour, // y
	30 * 24 * time.Hour,  // M
	24 * time.Hour,       // d
	time.Hour,            // h
	time.Minute,          // m
	time.Second,          // s
}

// Parse converts a target-time spec to a duration. Missing groups
// count as zero; a string matching none of the groups yields zero.
// Parse never fails: an unparseable target disables progress display,
// it is not an error surfaced to the user.
func Parse(spec string) time.Duration {
	matches := specPattern.FindStringSubmatch(strings.TrimSpace(spec))
	if matches == nil {
		return 0
	}
	var total time.Duration
	for i, unit := range unitDurations {
		group := matches[i+1]
		if group == "" {
			continue
		}
		n, err := strconv.ParseInt(group, 10, 64)
		if err != nil {
			return 0
		}
		total += time.Duration(n) * unit
	}
	return total
}
