package log

import (
	"context"
	"strings"
	"testing"
)

func TestPrintfQuiet(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	l := New(&buf, false, true)
	l.Printf("hello %s\n", "world")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote output: %q", buf.String())
	}
}

func TestWarnfIgnoresQuiet(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	l := New(&buf, false, true)
	l.Warnf("delete failed: %s", "D--Proj-A")

	got := buf.String()
	if !strings.HasPrefix(got, "Warning: ") {
		t.Errorf("Warnf output = %q, want Warning prefix", got)
	}
	if !strings.Contains(got, "D--Proj-A") {
		t.Errorf("Warnf output missing argument: %q", got)
	}
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	l := New(&buf, false, false)
	l.Debug("scanning", "dirs", 3)
	if buf.Len() != 0 {
		t.Errorf("non-verbose Debug wrote output: %q", buf.String())
	}

	l = New(&buf, true, false)
	l.Debug("scanning", "dirs", 3)
	got := buf.String()
	if !strings.Contains(got, "scanning") || !strings.Contains(got, "dirs=3") {
		t.Errorf("Debug output = %q", got)
	}
}

func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	l := FromContext(context.Background())
	// Must not panic and must be usable.
	l.Printf("discarded")
	l.Debug("discarded")
}

func TestWithLoggerRoundTrip(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx := WithLogger(context.Background(), New(&buf, true, false))
	FromContext(ctx).Println("attached")

	if !strings.Contains(buf.String(), "attached") {
		t.Errorf("context logger not used, got %q", buf.String())
	}
}
