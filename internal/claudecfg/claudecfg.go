// Package claudecfg reads and rewrites the assistant's JSON configuration
// file (~/.claude.json by default).
//
// The file is owned by the assistant process, not by this tool, so rewrites
// are read-modify-write: every field we do not understand is carried through
// byte for byte, and key order is preserved. The only supported mutations
// are removing a project entry and replacing a project's history array.
//
// Parsing uses a token decoder instead of struct unmarshalling because Go
// maps lose key order, and the "most recently used" heuristic depends on
// the file's project order.
package claudecfg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// member is one key/value pair of a JSON object, with the value kept raw.
type member struct {
	key string
	raw json.RawMessage
}

// File is the parsed configuration file.
type File struct {
	path     string
	exists   bool
	original []byte // file content as loaded, for backups
	top      []member
	entries  []*Entry
}

// Entry is one project entry, keyed by its real filesystem path.
type Entry struct {
	RealPath string
	fields   []member
}

// HistoryRecord is one element of a project's history array. Display is
// parsed out for trimming decisions; the raw bytes are what gets written
// back, so unknown fields inside a record survive a trim.
type HistoryRecord struct {
	Display string
	raw     json.RawMessage
}

// Raw returns the record's original bytes.
func (r HistoryRecord) Raw() json.RawMessage { return r.raw }

// NewHistoryRecord builds a record from raw bytes, extracting the display
// text when present. Exposed for tests and for callers that synthesize
// history content.
func NewHistoryRecord(raw json.RawMessage) HistoryRecord {
	var probe struct {
		Display string `json:"display"`
	}
	_ = json.Unmarshal(raw, &probe)
	return HistoryRecord{Display: probe.Display, raw: raw}
}

// Load parses the configuration file at path. A missing file loads as an
// empty configuration; a malformed file is an error, which callers treat
// as fatal for rewriting operations and as a degraded-to-empty warning for
// read-only ones.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{path: path}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	f := &File{path: path, exists: true, original: data}
	f.top, err = decodeMembers(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, m := range f.top {
		if m.key != "projects" {
			continue
		}
		projectMembers, err := decodeMembers(m.raw)
		if err != nil {
			return nil, fmt.Errorf("parse config %s: projects: %w", path, err)
		}
		for _, pm := range projectMembers {
			fields, err := decodeMembers(pm.raw)
			if err != nil {
				return nil, fmt.Errorf("parse config %s: project %q: %w", path, pm.key, err)
			}
			f.entries = append(f.entries, &Entry{RealPath: pm.key, fields: fields})
		}
		break
	}

	return f, nil
}

// Empty returns a configuration with no entries, used when a read-only
// command degrades after a parse failure.
func Empty(path string) *File {
	return &File{path: path}
}

// decodeMembers parses a JSON object into its ordered members.
func decodeMembers(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var members []member
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		members = append(members, member{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return members, nil
}

// Path returns the configuration file location.
func (f *File) Path() string { return f.path }

// Exists reports whether the file was present on disk at load time.
func (f *File) Exists() bool { return f.exists }

// Entries returns the project entries in file order.
func (f *File) Entries() []*Entry { return f.entries }

// Entry looks up a project entry by real path.
func (f *File) Entry(realPath string) (*Entry, bool) {
	for _, e := range f.entries {
		if e.RealPath == realPath {
			return e, true
		}
	}
	return nil, false
}

// Remove deletes the entry for realPath. Returns false if absent.
func (f *File) Remove(realPath string) bool {
	for i, e := range f.entries {
		if e.RealPath == realPath {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Save rewrites the configuration file atomically (temp file + rename).
// Untouched fields are emitted from their original bytes.
func (f *File) Save() error {
	data, err := f.marshal()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save config: %w", err)
	}

	f.exists = true
	f.original = data
	return nil
}

// Backup writes a timestamped byte-for-byte copy of the file content as it
// was loaded, fsyncing before returning. It must be called before any
// destructive operation that will later rewrite the configuration. Returns
// the backup path, or "" when the file never existed.
func (f *File) Backup(backupDir string) (string, error) {
	if !f.exists {
		return "", nil
	}

	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	stamp := time.Now().Format("20060102-150405.000000000")
	name := filepath.Base(f.path) + ".backup-" + stamp
	path := filepath.Join(backupDir, name)

	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	if _, err := out.Write(f.original); err != nil {
		out.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return "", fmt.Errorf("sync backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close backup: %w", err)
	}
	return path, nil
}

// marshal rebuilds the file: untouched top-level members verbatim, the
// projects object from the (possibly mutated) entry list.
func (f *File) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	wrote := false
	for _, m := range f.top {
		if wrote {
			buf.WriteByte(',')
		}
		wrote = true
		writeKey(&buf, m.key)
		if m.key == "projects" {
			f.writeProjects(&buf)
		} else {
			buf.Write(m.raw)
		}
	}
	buf.WriteByte('}')

	var indented bytes.Buffer
	if err := json.Indent(&indented, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	indented.WriteByte('\n')
	return indented.Bytes(), nil
}

func (f *File) writeProjects(buf *bytes.Buffer) {
	buf.WriteByte('{')
	for i, e := range f.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(buf, e.RealPath)
		buf.WriteByte('{')
		for j, fld := range e.fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeKey(buf, fld.key)
			buf.Write(fld.raw)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
}

func writeKey(buf *bytes.Buffer, key string) {
	encoded, _ := json.Marshal(key)
	buf.Write(encoded)
	buf.WriteByte(':')
}

// LastSessionID returns the entry's lastSessionId, or "" when absent or
// not a string.
func (e *Entry) LastSessionID() string {
	raw, ok := e.field("lastSessionId")
	if !ok {
		return ""
	}
	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return ""
	}
	return id
}

// History returns the entry's history records, newest first (the order the
// source file uses). Records that are not objects still round-trip via
// their raw bytes.
func (e *Entry) History() []HistoryRecord {
	raw, ok := e.field("history")
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	records := make([]HistoryRecord, 0, len(items))
	for _, item := range items {
		records = append(records, NewHistoryRecord(item))
	}
	return records
}

// SetHistory replaces the entry's history array with the given records,
// preserving each record's original bytes.
func (e *Entry) SetHistory(records []HistoryRecord) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(r.raw)
	}
	buf.WriteByte(']')

	for i := range e.fields {
		if e.fields[i].key == "history" {
			e.fields[i].raw = buf.Bytes()
			return
		}
	}
	e.fields = append(e.fields, member{key: "history", raw: buf.Bytes()})
}

func (e *Entry) field(key string) (json.RawMessage, bool) {
	for _, f := range e.fields {
		if f.key == key {
			return f.raw, true
		}
	}
	return nil, false
}
