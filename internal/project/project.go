// Package project builds the unified view of configured projects and cache
// directories, and provides typed lookups over it.
//
// The view is derived, never persisted: every listing or lookup rebuilds it
// from the configuration file and a fresh cache-root scan.
package project

import (
	"strings"
	"time"

	"github.com/tbleier/ccsweep/internal/cachescan"
	"github.com/tbleier/ccsweep/internal/claudecfg"
	"github.com/tbleier/ccsweep/internal/pathenc"
)

// PathSource records how a project's real path was established.
type PathSource int

const (
	// SourceConfirmed means the path came from the configuration file or
	// from session-log content.
	SourceConfirmed PathSource = iota
	// SourceGuessed means the path was decoded from a lossy directory
	// name and may be wrong. Sweep logic can refuse to act on guesses.
	SourceGuessed
)

// Project unifies a configuration entry and a cache directory sharing a
// real path. Either side may be absent, never both.
type Project struct {
	RealPath      string
	DirName       string // empty unless HasCache
	DirPath       string // empty unless HasCache
	HasConfig     bool
	HasCache      bool
	Source        PathSource
	LastSessionID string
	HistoryLen    int
	Size          int64
	SessionCount  int
	LastModified  time.Time
}

// DisplayName returns the basename of a real path, handling both
// separator styles since config keys may be Windows paths.
func DisplayName(realPath string) string {
	p := strings.TrimRight(realPath, `\/`)
	if i := strings.LastIndexAny(p, `\/`); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return realPath
	}
	return p
}

// Build reconciles configuration entries against cache directories.
//
// Resolution order per entry: exact encoded-name match, then content match
// against the session logs of still-unclaimed directories, then no match.
// A directory claimed once cannot be claimed again. Leftover directories
// become their own projects, preferring content-derived paths over decoded
// guesses; a leftover whose derived path collides with a registered
// project is discarded (first registered wins).
//
// The exact-name pass runs first because it is a map lookup; content
// matching reads log files and only pays that cost for entries the cheap
// pass missed.
func Build(cfg *claudecfg.File, cacheRoot string) []Project {
	dirs := cachescan.ListDirs(cacheRoot)

	byName := make(map[string]int, len(dirs))
	for i, d := range dirs {
		byName[d.Name] = i
	}

	claimed := make([]bool, len(dirs))

	// Content extraction is memoized: a directory's logs are read at most
	// once per reconciliation even when several entries probe it.
	contentPath := make([]string, len(dirs))
	contentKnown := make([]bool, len(dirs))
	content := func(i int) (string, bool) {
		if !contentKnown[i] {
			contentPath[i], _ = cachescan.ExtractRealPath(dirs[i].Path)
			contentKnown[i] = true
		}
		return contentPath[i], contentPath[i] != ""
	}

	var projects []Project
	index := make(map[string]int)

	for _, e := range cfg.Entries() {
		if _, dup := index[e.RealPath]; dup {
			continue
		}

		p := Project{
			RealPath:      e.RealPath,
			HasConfig:     true,
			Source:        SourceConfirmed,
			LastSessionID: e.LastSessionID(),
			HistoryLen:    len(e.History()),
		}

		match := -1
		if i, ok := byName[pathenc.Encode(e.RealPath)]; ok && !claimed[i] {
			match = i
		} else {
			for i := range dirs {
				if claimed[i] {
					continue
				}
				if cp, ok := content(i); ok && cp == e.RealPath {
					match = i
					break
				}
			}
		}

		if match >= 0 {
			claimed[match] = true
			fillCacheStats(&p, dirs[match])
		}

		index[p.RealPath] = len(projects)
		projects = append(projects, p)
	}

	for i, d := range dirs {
		if claimed[i] {
			continue
		}

		p := Project{HasCache: true}
		if cp, ok := content(i); ok {
			p.RealPath = cp
			p.Source = SourceConfirmed
		} else {
			p.RealPath = pathenc.Decode(d.Name)
			p.Source = SourceGuessed
		}

		if _, taken := index[p.RealPath]; taken {
			continue // derived path collides; first registered wins
		}

		fillCacheStats(&p, d)
		index[p.RealPath] = len(projects)
		projects = append(projects, p)
	}

	return projects
}

func fillCacheStats(p *Project, d cachescan.Dir) {
	p.HasCache = true
	p.DirName = d.Name
	p.DirPath = d.Path
	p.Size = cachescan.DirSize(d.Path)
	p.SessionCount = cachescan.SessionCount(d.Path)
	p.LastModified = cachescan.LastModified(d.Path)
}
