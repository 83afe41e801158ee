package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tbleier/ccsweep/internal/claudecfg"
)

func writeConfig(t *testing.T, content string) *claudecfg.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "claude.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := claudecfg.Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

func writeCacheDir(t *testing.T, root, name string, logs map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for file, content := range logs {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestBuildExactNameMatch(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `{"projects":{"D:\\Proj\\A":{"lastSessionId":"s1"}}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--Proj-A", map[string]string{
		"s1.jsonl": `{"cwd":"D:\\Proj\\A"}`,
	})

	projects := Build(cfg, root)
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if !p.HasCache || !p.HasConfig {
		t.Errorf("HasCache=%v HasConfig=%v, want both true", p.HasCache, p.HasConfig)
	}
	if p.SessionCount != 1 {
		t.Errorf("SessionCount = %d, want 1", p.SessionCount)
	}
	if p.Source != SourceConfirmed {
		t.Error("config-matched project must be Confirmed")
	}
	if p.LastSessionID != "s1" {
		t.Errorf("LastSessionID = %q", p.LastSessionID)
	}
}

func TestBuildContentMatchWhenNameDiffers(t *testing.T) {
	t.Parallel()

	// The directory name does not round-trip to the config key (dot in the
	// path), so only the session-log cwd can link them.
	cfg := writeConfig(t, `{"projects":{"D:\\repo.git":{}}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--repo-git", map[string]string{
		"s1.jsonl": "not json\n" + `{"cwd":"D:\\repo.git"}`,
	})

	projects := Build(cfg, root)
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if !projects[0].HasCache {
		t.Error("content match should claim the directory")
	}
}

func TestBuildConfigOnly(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `{"projects":{"D:\\Gone":{"lastSessionId":"s1"}}}`)

	projects := Build(cfg, t.TempDir())
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.HasCache {
		t.Error("HasCache should be false")
	}
	if p.Size != 0 || p.SessionCount != 0 {
		t.Error("size and session count must be zero without a cache")
	}
	if !p.LastModified.IsZero() {
		t.Error("cacheless project must carry the zero time")
	}
}

func TestBuildDirectoryNeverClaimedTwice(t *testing.T) {
	t.Parallel()

	// Two entries whose encoded names collide on one directory: only the
	// first may claim it.
	cfg := writeConfig(t, `{"projects":{"D:\\Proj\\A":{},"D:\\Proj.A":{}}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--Proj-A", map[string]string{"s1.jsonl": "{}"})

	projects := Build(cfg, root)
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	claimedCount := 0
	for _, p := range projects {
		if p.HasCache {
			claimedCount++
		}
	}
	if claimedCount != 1 {
		t.Errorf("directory claimed %d times, want 1", claimedCount)
	}
}

func TestBuildLeftoverDirContentPreferred(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `{"projects":{}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--Proj-B", map[string]string{
		"s1.jsonl": `{"cwd":"D:\\Real\\Location"}`,
	})

	projects := Build(cfg, root)
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.RealPath != `D:\Real\Location` {
		t.Errorf("RealPath = %q, want content-derived path", p.RealPath)
	}
	if p.Source != SourceConfirmed {
		t.Error("content-derived path must be Confirmed")
	}
	if p.HasConfig {
		t.Error("HasConfig should be false for orphan dir")
	}
}

func TestBuildLeftoverDirGuessedFallback(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t, `{"projects":{}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--Proj-B", map[string]string{
		"s1.jsonl": "no cwd here\n{\"type\":\"summary\"}",
	})

	projects := Build(cfg, root)
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if p.RealPath != `D:\Proj\B` {
		t.Errorf("RealPath = %q, want decoded guess D:\\Proj\\B", p.RealPath)
	}
	if p.Source != SourceGuessed {
		t.Error("decoded path must be Guessed")
	}
}

func TestBuildGuessCollisionDiscarded(t *testing.T) {
	t.Parallel()

	// Config claims D:\Proj\A via exact name. A second directory with no
	// cwd decodes to the same real path; it must be discarded rather than
	// produce a duplicate project.
	cfg := writeConfig(t, `{"projects":{"D:\\Proj\\A":{}}}`)
	root := t.TempDir()
	writeCacheDir(t, root, "D--Proj-A", map[string]string{"s1.jsonl": "{}"})
	writeCacheDir(t, root, "E--other", map[string]string{
		"s9.jsonl": `{"cwd":"D:\\Proj\\A"}`,
	})

	projects := Build(cfg, root)
	seen := map[string]int{}
	for _, p := range projects {
		seen[p.RealPath]++
	}
	for path, n := range seen {
		if n > 1 {
			t.Errorf("real path %q appears %d times", path, n)
		}
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{`D:\Proj\A`, "A"},
		{"/home/me/proj", "proj"},
		{`D:\`, `D:`},
		{"standalone", "standalone"},
		{"/trailing/slash/", "slash"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
