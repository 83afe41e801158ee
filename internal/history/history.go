// Package history trims oversized project prompt histories.
//
// History arrays live inside the assistant's configuration file, newest
// first. They grow without bound; this package decides which records an
// over-limit history keeps. It never touches disk — claudecfg owns the
// rewrite.
package history

import (
	"strings"

	"github.com/tbleier/ccsweep/internal/claudecfg"
)

const (
	// TrimThreshold is the history length above which trimming kicks in.
	TrimThreshold = 30
	// TrimTarget is the maximum length of a trimmed history.
	TrimTarget = 25
)

// Trim returns the records an over-limit history keeps, and whether
// anything was dropped. Histories at or under TrimThreshold pass through
// untouched.
//
// Drop preference: records with blank display text and records repeating
// an earlier (newer) display are removed first; only then is the list cut
// by position. Output order is the input order, so the newest-first
// convention of the source array is preserved.
func Trim(records []claudecfg.HistoryRecord) ([]claudecfg.HistoryRecord, bool) {
	if len(records) <= TrimThreshold {
		return records, false
	}

	seen := make(map[string]struct{}, len(records))
	kept := make([]claudecfg.HistoryRecord, 0, TrimTarget)
	for _, r := range records {
		display := strings.TrimSpace(r.Display)
		if display == "" {
			continue
		}
		if _, dup := seen[display]; dup {
			continue
		}
		seen[display] = struct{}{}
		kept = append(kept, r)
		if len(kept) == TrimTarget {
			break
		}
	}
	return kept, true
}
