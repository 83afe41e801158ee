package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/tbleier/ccsweep/internal/claudecfg"
	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/project"
	"github.com/tbleier/ccsweep/internal/ui/prompt"
)

// loadView reconciles the assistant configuration against the cache root.
//
// Read-only commands pass lenient=true: a malformed configuration file
// degrades to an empty view with a warning so the cache side still shows.
// Destructive commands pass lenient=false because they must rewrite the
// file and cannot do that safely from a partial parse.
func loadView(ctx context.Context, lenient bool) (*project.Store, *claudecfg.File, string, error) {
	l := log.FromContext(ctx)

	configFile, err := prefs.ConfigFilePath()
	if err != nil {
		return nil, nil, "", err
	}
	cacheRoot, err := prefs.CacheRootPath()
	if err != nil {
		return nil, nil, "", err
	}

	cfg, err := claudecfg.Load(configFile)
	if err != nil {
		if !lenient {
			return nil, nil, "", err
		}
		l.Warnf("%v (treating configuration as empty)", err)
		cfg = claudecfg.Empty(configFile)
	}

	l.Debug("loaded view", "config", configFile, "cacheRoot", cacheRoot, "entries", len(cfg.Entries()))

	return project.NewStore(cfg, cacheRoot), cfg, cacheRoot, nil
}

// confirmOrAbort gates destructive operations. With --yes it proceeds
// immediately; otherwise it requires an interactive terminal and an
// explicit "y". Returns false when the user declined or cancelled.
func confirmOrAbort(msg string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to confirm")
	}

	result, err := prompt.Confirm(msg)
	if err != nil {
		return false, err
	}
	return result.Confirmed && !result.Cancelled, nil
}
