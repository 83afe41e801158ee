// Package settings manages ccsweep's own configuration file, which is
// separate from the assistant config it operates on.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Settings holds the ccsweep configuration
type Settings struct {
	ConfigFile    string `toml:"config_file"`    // assistant config JSON (default ~/.claude.json)
	CacheRoot     string `toml:"cache_root"`     // session cache root (default ~/.claude/projects)
	ActiveProject string `toml:"active_project"` // identifier set by "use"
}

// Default returns the default configuration
func Default() Settings {
	return Settings{}
}

// Path returns the path to the settings file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ccsweep", "config.toml"), nil
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Load reads settings from the given path.
// Returns Default() if the file doesn't exist (no error).
// Returns error only if the file exists but is invalid.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read settings file: %w", err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse settings file: %w", err)
	}

	if err := ValidatePath(s.ConfigFile, "config_file"); err != nil {
		return Default(), err
	}
	if err := ValidatePath(s.CacheRoot, "cache_root"); err != nil {
		return Default(), err
	}

	return s, nil
}

// Save writes settings to the given path, creating parent directories
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create settings file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return f.Close()
}

// ConfigFilePath returns the assistant config path, expanded.
// Falls back to ~/.claude.json when not configured.
func (s Settings) ConfigFilePath() (string, error) {
	if s.ConfigFile != "" {
		return expandPath(s.ConfigFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude.json"), nil
}

// CacheRootPath returns the session cache root, expanded.
// Falls back to ~/.claude/projects when not configured.
func (s Settings) CacheRootPath() (string, error) {
	if s.CacheRoot != "" {
		return expandPath(s.CacheRoot)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "projects"), nil
}

// BackupDir returns where config backups are written before destructive
// operations. Always lives next to the cache, not the cache root itself,
// so sweeps never delete their own backups.
func (s Settings) BackupDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".claude", "backups"), nil
}
