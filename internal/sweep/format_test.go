package sweep

import (
	"testing"

	"github.com/charmbracelet/x/exp/golden"
)

func TestFormatPlan(t *testing.T) {
	plan := &Plan{Items: []Item{
		{
			Reason:    ReasonConfigOnly,
			RealPath:  `D:\Proj\Gone`,
			HasConfig: true,
		},
		{
			Reason:   ReasonOrphan,
			RealPath: `D:\Proj\B`,
			DirName:  "D--Proj-B",
			Guessed:  true,
			Sessions: 3,
			Size:     2048,
		},
		{
			Reason:   ReasonInvalid,
			RealPath: `D:\Empty`,
			DirName:  "D--Empty",
		},
	}}

	golden.RequireEqual(t, []byte(FormatPlan(plan)))
}

func TestFormatPlanEmpty(t *testing.T) {
	t.Parallel()

	if got := FormatPlan(&Plan{}); got != "Nothing to clean.\n" {
		t.Errorf("empty plan output = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
