package sweep

import (
	"fmt"
	"strings"
)

// FormatBytes renders a byte count for humans.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// FormatPlan renders the non-destructive preview of a plan. The same text
// is shown for --dry-run and before the confirmation prompt.
func FormatPlan(p *Plan) string {
	if p.Empty() {
		return "Nothing to clean.\n"
	}

	var b strings.Builder
	b.WriteString("Deletion plan:\n\n")
	fmt.Fprintf(&b, "  %-42s %-36s %8s  %s\n", "TARGET", "REASON", "SESSIONS", "SIZE")

	dirs, entries := 0, 0
	for _, item := range p.Items {
		if item.HasConfig {
			entries++
		}

		if item.Reason == ReasonConfigOnly {
			fmt.Fprintf(&b, "  %-42s %-36s %8s  %s\n", item.RealPath, string(item.Reason), "-", "-")
			continue
		}

		dirs++
		// The suffix is part of the cell, composed before padding so the
		// SESSIONS column stays aligned.
		reason := string(item.Reason)
		if item.Guessed {
			reason += " (path guessed)"
		}
		fmt.Fprintf(&b, "  %-42s %-36s %8d  %s\n", item.DirName, reason, item.Sessions, FormatBytes(item.Size))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%d directory(ies), %d config entry(ies)\n", dirs, entries)
	return b.String()
}
