// Package sweep plans and applies batch deletions of stale configuration
// entries and cache directories.
//
// Planning never mutates anything. Applying follows a strict order: a
// durable backup of the configuration file is written before the first
// destructive deletion, filesystem deletions run with per-item failure
// isolation, and the configuration rewrite happens once at the end.
package sweep

import (
	"path/filepath"

	"github.com/tbleier/ccsweep/internal/cachescan"
	"github.com/tbleier/ccsweep/internal/claudecfg"
	"github.com/tbleier/ccsweep/internal/pathenc"
	"github.com/tbleier/ccsweep/internal/project"
)

// Reason classifies why an item is in the deletion plan.
type Reason string

const (
	// ReasonConfigOnly marks a configuration entry with no cache directory.
	ReasonConfigOnly Reason = "no cache directory"
	// ReasonOrphan marks a cache directory matching no configuration entry.
	ReasonOrphan Reason = "not in configuration"
	// ReasonInvalid marks a cache directory with no files, or with files
	// but no session logs.
	ReasonInvalid Reason = "invalid"
)

// Item is one deletion candidate.
type Item struct {
	Reason   Reason
	RealPath string
	DirName  string // empty for config-only entries
	DirPath  string // for config-only: the encoded location to check at apply time
	// HasConfig marks items whose apply step removes a configuration
	// entry. Always true for config-only items.
	HasConfig bool
	// Guessed marks directory items whose real path is only a decoded
	// guess. Strict mode refuses to delete these.
	Guessed  bool
	Sessions int
	Size     int64
}

// Plan is an ordered set of deletion candidates. Config-only entries come
// first (configuration order), then directory items in scan order.
type Plan struct {
	Items []Item
}

// Empty reports whether the plan has nothing to do.
func (p *Plan) Empty() bool { return len(p.Items) == 0 }

// BuildPlan inspects the reconciled project view and identifies deletion
// candidates. The cfg parameter is only consulted for entry existence;
// nothing is mutated.
func BuildPlan(cfg *claudecfg.File, cacheRoot string, projects []project.Project) *Plan {
	plan := &Plan{}

	// Config entries whose cache directory is gone.
	for _, p := range projects {
		if !p.HasConfig || p.HasCache {
			continue
		}
		plan.Items = append(plan.Items, Item{
			Reason:    ReasonConfigOnly,
			RealPath:  p.RealPath,
			DirPath:   filepath.Join(cacheRoot, pathenc.Encode(p.RealPath)),
			HasConfig: true,
		})
	}

	// Cache directories that are invalid (no usable content) or orphaned
	// (matched no configuration entry).
	for _, p := range projects {
		if !p.HasCache {
			continue
		}

		invalid := cachescan.FileCount(p.DirPath) == 0 || p.SessionCount == 0
		if !invalid && p.HasConfig {
			continue // live project
		}

		reason := ReasonOrphan
		if invalid {
			reason = ReasonInvalid
		}

		_, hasEntry := cfg.Entry(p.RealPath)
		plan.Items = append(plan.Items, Item{
			Reason:    reason,
			RealPath:  p.RealPath,
			DirName:   p.DirName,
			DirPath:   p.DirPath,
			HasConfig: hasEntry,
			Guessed:   p.Source == project.SourceGuessed,
			Sessions:  p.SessionCount,
			Size:      p.Size,
		})
	}

	return plan
}
