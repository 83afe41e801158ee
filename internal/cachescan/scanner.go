// Package cachescan enumerates the session cache root and extracts
// authoritative project paths from session-log content.
//
// Every function here is read-only and error-tolerant: unreadable entries
// are skipped, malformed log lines are skipped, and a missing cache root
// scans as empty. Failures never abort a scan, because one corrupt file
// must not hide valid data elsewhere (and listing commands must degrade,
// not crash).
package cachescan

import (
	"bufio"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogExt is the session-log file extension.
const LogExt = ".jsonl"

// maxLineSize bounds how much of a single session-log line is parsed;
// assistant transcripts can carry whole file contents in one record.
// Longer lines are discarded without aborting the file scan.
const maxLineSize = 10 * 1024 * 1024

// Dir is one immediate subdirectory of the cache root.
type Dir struct {
	Name string // lossy-encoded directory name
	Path string // absolute location on disk
}

// Session describes one session-log file inside a cache directory.
type Session struct {
	ID       string // file name without the log extension
	Path     string
	Size     int64
	Modified time.Time
}

// ListDirs returns one entry per immediate subdirectory of cacheRoot.
// A missing or unreadable root yields an empty slice; unreadable children
// are skipped.
func ListDirs(cacheRoot string) []Dir {
	entries, err := os.ReadDir(cacheRoot)
	if err != nil {
		return nil
	}

	var dirs []Dir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, Dir{
			Name: entry.Name(),
			Path: filepath.Join(cacheRoot, entry.Name()),
		})
	}
	return dirs
}

// ExtractRealPath scans the session logs in dirPath for the first line
// carrying a non-empty "cwd" field and returns its value. Lines that fail
// to parse as JSON are skipped without aborting the scan. Returns false
// when no log file yields a cwd.
func ExtractRealPath(dirPath string) (string, bool) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		if cwd, ok := cwdFromLog(filepath.Join(dirPath, entry.Name())); ok {
			return cwd, true
		}
	}
	return "", false
}

// cwdFromLog reads one log file line by line, parsing each line as an
// independent JSON object. A line over maxLineSize is skipped, not fatal:
// a cwd on a later line must still be found.
func cwdFromLog(path string) (string, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, 64*1024)

	var record struct {
		Cwd string `json:"cwd"`
	}
	for {
		line, err := readLine(reader)
		if len(line) > 0 {
			record.Cwd = ""
			if json.Unmarshal(line, &record) == nil && record.Cwd != "" {
				return record.Cwd, true
			}
		}
		if err != nil {
			return "", false
		}
	}
}

// readLine returns the next line including its delimiter. A line longer
// than maxLineSize returns nil with the remainder consumed, so the caller
// can continue with the next line. A non-nil error means the input is
// exhausted; the returned line (if any) is still valid.
func readLine(r *bufio.Reader) ([]byte, error) {
	chunk, err := r.ReadSlice('\n')
	if err == nil || err == io.EOF {
		// Common case: the whole line fits in the buffer. The slice is
		// only valid until the next read, which is fine because the
		// caller parses it before asking for another line.
		return chunk, err
	}
	if err != bufio.ErrBufferFull {
		return nil, err
	}

	line := append([]byte(nil), chunk...)
	skip := false
	for {
		chunk, err = r.ReadSlice('\n')
		if !skip {
			line = append(line, chunk...)
			if len(line) > maxLineSize {
				line, skip = nil, true
			}
		}
		switch err {
		case nil, io.EOF:
			return line, err
		case bufio.ErrBufferFull:
			continue
		default:
			return nil, err
		}
	}
}

// DirSize returns the recursive sum of file sizes under dirPath.
// Unreadable entries contribute zero.
func DirSize(dirPath string) int64 {
	var total int64
	_ = filepath.WalkDir(dirPath, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable subtree entries
		}
		if d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

// SessionCount returns the number of session-log files directly under
// dirPath (non-recursive).
func SessionCount(dirPath string) int {
	return len(Sessions(dirPath))
}

// Sessions lists the session-log files directly under dirPath, in
// directory order. Entries whose metadata cannot be read are skipped.
func Sessions(dirPath string) []Session {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil
	}

	var sessions []Session
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, Session{
			ID:       strings.TrimSuffix(entry.Name(), LogExt),
			Path:     filepath.Join(dirPath, entry.Name()),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	return sessions
}

// FileCount returns the number of entries directly under dirPath.
// Used to distinguish an empty directory from one holding non-log files.
func FileCount(dirPath string) int {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return 0
	}
	return len(entries)
}

// LastModified returns the newest session-log modification time in
// dirPath, falling back to the directory's own mtime when no logs exist.
// Directories that cannot be inspected report the zero time, which sorts
// last in project listings.
func LastModified(dirPath string) time.Time {
	var newest time.Time
	for _, s := range Sessions(dirPath) {
		if s.Modified.After(newest) {
			newest = s.Modified
		}
	}
	if !newest.IsZero() {
		return newest
	}
	if info, err := os.Stat(dirPath); err == nil {
		return info.ModTime()
	}
	return time.Time{}
}
