package output

import (
	"context"
	"strings"
	"testing"
)

func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	p := FromContext(context.Background())
	if p.Writer() == nil {
		t.Fatal("expected fallback writer")
	}
}

func TestPrinterJSON(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	p := New(&buf)

	if err := p.JSON(map[string]int{"sessions": 2}); err != nil {
		t.Fatalf("JSON failed: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, `"sessions": 2`) {
		t.Errorf("JSON output = %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("JSON output should end with newline")
	}
}

func TestWithPrinterRoundTrip(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	ctx := WithPrinter(context.Background(), &buf)
	FromContext(ctx).Printf("%s\n", "D:\\Proj\\A")

	if !strings.Contains(buf.String(), `D:\Proj\A`) {
		t.Errorf("printer output = %q", buf.String())
	}
}
