package sweep

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tbleier/ccsweep/internal/cachescan"
	"github.com/tbleier/ccsweep/internal/claudecfg"
)

// Options controls plan application.
type Options struct {
	// Strict skips directory deletions whose real path is only a decoded
	// guess from the lossy directory name.
	Strict bool
}

// Result reports the outcome for one plan item.
type Result struct {
	Item         Item
	Skipped      bool
	SkipReason   string
	Err          error
	EntryRemoved bool
	DirRemoved   bool
}

// Apply executes the plan. It returns the per-item results, the backup
// path (empty when no backup was needed), and a fatal error.
//
// Ordering guarantee: when any item will remove a configuration entry, the
// backup is written and fsynced before the first filesystem deletion. A
// failed backup aborts the whole apply. Individual deletion failures are
// recorded in the item's Result and do not stop the remaining items; an
// item whose filesystem step failed keeps its configuration entry.
func Apply(cfg *claudecfg.File, plan *Plan, backupDir string, opts Options) ([]Result, string, error) {
	touchesConfig := false
	for _, item := range plan.Items {
		if item.HasConfig {
			touchesConfig = true
			break
		}
	}

	var backupPath string
	if touchesConfig {
		bp, err := cfg.Backup(backupDir)
		if err != nil {
			return nil, "", fmt.Errorf("config backup failed, nothing deleted: %w", err)
		}
		backupPath = bp
	}

	results := make([]Result, 0, len(plan.Items))
	entriesRemoved := false

	for _, item := range plan.Items {
		res := Result{Item: item}

		if opts.Strict && item.Guessed {
			res.Skipped = true
			res.SkipReason = "real path is a guess"
			results = append(results, res)
			continue
		}

		switch item.Reason {
		case ReasonConfigOnly:
			if err := cleanConfigOnlyDir(item.DirPath); err != nil {
				res.Err = err
				break
			}
			if cfg.Remove(item.RealPath) {
				res.EntryRemoved = true
				entriesRemoved = true
			}

		default: // orphan or invalid directory
			if err := removeTree(item.DirPath); err != nil {
				res.Err = err
				break
			}
			res.DirRemoved = true
			if item.HasConfig && cfg.Remove(item.RealPath) {
				res.EntryRemoved = true
				entriesRemoved = true
			}
		}

		results = append(results, res)
	}

	if entriesRemoved {
		if err := cfg.Save(); err != nil {
			return results, backupPath, fmt.Errorf("rewrite config: %w", err)
		}
	}
	return results, backupPath, nil
}

// cleanConfigOnlyDir handles the cache location of a config-only entry,
// which may have reappeared between planning and execution: a missing
// directory is fine, an empty one is removed, a non-empty one loses only
// its session logs (other files are left intact).
func cleanConfigOnlyDir(dirPath string) error {
	if _, err := os.Lstat(dirPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if cachescan.FileCount(dirPath) == 0 {
		return os.Remove(dirPath)
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}
	var firstErr error
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), cachescan.LogExt) {
			continue
		}
		if err := os.Remove(filepath.Join(dirPath, entry.Name())); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// removeTree deletes a directory tree with an explicit two-phase
// traversal: collect directories breadth-first deleting files on the way,
// then remove the directories deepest-first. No recursion, and every
// directory handle is released by os.ReadDir before its children are
// touched.
func removeTree(root string) error {
	if _, err := os.Lstat(root); err != nil {
		// A root that vanished between planning and execution is a
		// per-item failure, reported to the caller.
		return err
	}

	dirs := []string{root}
	var firstErr error

	for i := 0; i < len(dirs); i++ {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		for _, entry := range entries {
			path := filepath.Join(dirs[i], entry.Name())
			if entry.IsDir() {
				dirs = append(dirs, path)
				continue
			}
			if err := os.Remove(path); err != nil && firstErr == nil {
				firstErr = err
			}
		}
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		if err := os.Remove(dirs[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
