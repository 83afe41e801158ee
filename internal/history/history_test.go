package history

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/tbleier/ccsweep/internal/claudecfg"
)

func record(t *testing.T, display string) claudecfg.HistoryRecord {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"display": display})
	if err != nil {
		t.Fatal(err)
	}
	return claudecfg.NewHistoryRecord(raw)
}

func TestTrimUnderThresholdUntouched(t *testing.T) {
	t.Parallel()

	var records []claudecfg.HistoryRecord
	for i := 0; i < TrimThreshold; i++ {
		records = append(records, record(t, fmt.Sprintf("prompt %d", i)))
	}

	got, changed := Trim(records)
	if changed {
		t.Error("history at threshold should not be trimmed")
	}
	if len(got) != TrimThreshold {
		t.Errorf("len = %d, want %d", len(got), TrimThreshold)
	}
}

func TestTrimCapsAtTarget(t *testing.T) {
	t.Parallel()

	var records []claudecfg.HistoryRecord
	for i := 0; i < 50; i++ {
		records = append(records, record(t, fmt.Sprintf("prompt %d", i)))
	}

	got, changed := Trim(records)
	if !changed {
		t.Fatal("expected trim")
	}
	if len(got) != TrimTarget {
		t.Fatalf("len = %d, want %d", len(got), TrimTarget)
	}
	// Newest-first order preserved: the first Target records survive when
	// there are no duplicates or blanks.
	for i, r := range got {
		if want := fmt.Sprintf("prompt %d", i); r.Display != want {
			t.Errorf("record %d = %q, want %q", i, r.Display, want)
		}
	}
}

func TestTrimDropsDuplicatesAndBlanksFirst(t *testing.T) {
	t.Parallel()

	var records []claudecfg.HistoryRecord
	// 12 unique prompts, each followed by a duplicate and a blank. The
	// trim must prefer dropping those over dropping uniques by position.
	for i := 0; i < 12; i++ {
		d := fmt.Sprintf("prompt %d", i)
		records = append(records, record(t, d), record(t, d), record(t, "  "))
	}

	got, changed := Trim(records)
	if !changed {
		t.Fatal("expected trim")
	}
	if len(got) != 12 {
		t.Fatalf("len = %d, want 12 uniques", len(got))
	}
	seen := map[string]bool{}
	for _, r := range got {
		if r.Display == "" {
			t.Error("blank display survived trim")
		}
		if seen[r.Display] {
			t.Errorf("duplicate display %q survived trim", r.Display)
		}
		seen[r.Display] = true
	}
}

func TestTrimOrderConsistentSubsequence(t *testing.T) {
	t.Parallel()

	var records []claudecfg.HistoryRecord
	for i := 0; i < 40; i++ {
		records = append(records, record(t, fmt.Sprintf("p%d", i%20))) // every prompt twice
	}

	got, _ := Trim(records)
	// Output must be a subsequence of input order: each kept display's
	// first occurrence index is strictly increasing.
	last := -1
	for _, r := range got {
		idx := -1
		for i, in := range records {
			if in.Display == r.Display {
				idx = i
				break
			}
		}
		if idx <= last {
			t.Fatalf("output not order-consistent with input at %q", r.Display)
		}
		last = idx
	}
}

func TestTrimAllBlank(t *testing.T) {
	t.Parallel()

	var records []claudecfg.HistoryRecord
	for i := 0; i < 35; i++ {
		records = append(records, record(t, ""))
	}

	got, changed := Trim(records)
	if !changed {
		t.Fatal("expected trim")
	}
	if len(got) != 0 {
		t.Errorf("all-blank history should trim to empty, got %d", len(got))
	}
}
