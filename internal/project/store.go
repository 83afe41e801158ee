package project

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/tbleier/ccsweep/internal/claudecfg"
)

// ErrNotFound is returned when an identifier resolves to no project.
var ErrNotFound = errors.New("project not found")

// maxSuggestions bounds the "did you mean" list on lookup misses.
const maxSuggestions = 3

// Store provides typed lookups over the reconciled project view.
type Store struct {
	cfg      *claudecfg.File
	projects []Project
}

// NewStore reconciles cfg against cacheRoot and wraps the result.
func NewStore(cfg *claudecfg.File, cacheRoot string) *Store {
	return &Store{cfg: cfg, projects: Build(cfg, cacheRoot)}
}

// Projects returns the reconciled view in reconciliation order
// (configuration entries first, then leftover cache directories).
func (s *Store) Projects() []Project {
	return s.projects
}

// List returns projects sorted by last-modified descending. Projects
// without a cache carry the zero time and therefore sort last.
func (s *Store) List() []Project {
	sorted := slices.Clone(s.projects)
	slices.SortStableFunc(sorted, func(a, b Project) int {
		return b.LastModified.Compare(a.LastModified)
	})
	return sorted
}

// Find resolves an identifier against display name (basename of the real
// path), cache directory name, or the full real path. The first structural
// match in scan order wins; ambiguous short identifiers are resolved by
// that order, so callers needing determinism must pass the full path.
func (s *Store) Find(identifier string) (Project, error) {
	for _, p := range s.projects {
		if identifier == DisplayName(p.RealPath) || (p.DirName != "" && identifier == p.DirName) || identifier == p.RealPath {
			return p, nil
		}
	}

	if suggestions := s.suggest(identifier); len(suggestions) > 0 {
		return Project{}, fmt.Errorf("%w: %q (did you mean %s?)",
			ErrNotFound, identifier, strings.Join(suggestions, ", "))
	}
	return Project{}, fmt.Errorf("%w: %q", ErrNotFound, identifier)
}

// suggest returns up to maxSuggestions display names fuzzy-matching the
// missed identifier.
func (s *Store) suggest(identifier string) []string {
	names := make([]string, len(s.projects))
	for i, p := range s.projects {
		names[i] = DisplayName(p.RealPath)
	}

	matches := fuzzy.Find(identifier, names)
	var suggestions []string
	for _, m := range matches {
		if !slices.Contains(suggestions, names[m.Index]) {
			suggestions = append(suggestions, names[m.Index])
		}
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

// MostRecentlyUsed returns the real path of the first configuration entry
// (file order) carrying a non-empty lastSessionId.
//
// This is a file-order heuristic, not a true recency measure: the
// configuration format records no timestamps, and nothing guarantees the
// assistant keeps its project keys sorted by use.
func (s *Store) MostRecentlyUsed() (string, bool) {
	for _, e := range s.cfg.Entries() {
		if e.LastSessionID() != "" {
			return e.RealPath, true
		}
	}
	return "", false
}
