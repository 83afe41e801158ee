package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/claudecfg"
	"github.com/tbleier/ccsweep/internal/history"
	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/output"
)

// trimCandidate pairs an over-limit entry with its trimmed history.
type trimCandidate struct {
	entry   *claudecfg.Entry
	trimmed []claudecfg.HistoryRecord
}

func newTrimCmd() *cobra.Command {
	var (
		dryRun bool
		yes    bool
	)

	cmd := &cobra.Command{
		Use:     "trim",
		Short:   "Trim oversized project histories",
		GroupID: GroupCleanup,
		Args:    cobra.NoArgs,
		Long: fmt.Sprintf(`Trim the prompt history of configuration entries holding more than
%d records down to at most %d, dropping blank and duplicate prompts
first and cutting positionally only if that is not enough. The newest
records always survive.

The configuration file is backed up before it is rewritten. Untouched
entries are written back byte for byte.`, history.TrimThreshold, history.TrimTarget),
		Example: `  ccsweep trim             # Preview, confirm, apply
  ccsweep trim --dry-run   # Preview only
  ccsweep trim --yes       # Apply without prompting`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			_, cfg, _, err := loadView(ctx, false)
			if err != nil {
				return fmt.Errorf("cannot trim: %w", err)
			}

			var candidates []trimCandidate
			for _, e := range cfg.Entries() {
				records := e.History()
				trimmed, changed := history.Trim(records)
				if !changed {
					continue
				}
				out.Printf("  %-50s %d -> %d records\n", e.RealPath, len(records), len(trimmed))
				candidates = append(candidates, trimCandidate{entry: e, trimmed: trimmed})
			}

			if len(candidates) == 0 {
				out.Println("Nothing to trim.")
				return nil
			}
			if dryRun {
				out.Println("\nDry run, nothing written")
				return nil
			}

			ok, err := confirmOrAbort(fmt.Sprintf("Trim history of %d project(s)?", len(candidates)), yes)
			if err != nil {
				return err
			}
			if !ok {
				out.Println("Cancelled")
				return nil
			}

			backupDir, err := prefs.BackupDir()
			if err != nil {
				return err
			}
			backupPath, err := cfg.Backup(backupDir)
			if err != nil {
				return fmt.Errorf("config backup failed, nothing written: %w", err)
			}
			if backupPath != "" {
				l.Printf("Configuration backed up to %s\n", backupPath)
			}

			for _, c := range candidates {
				c.entry.SetHistory(c.trimmed)
			}
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}

			out.Printf("\nTrimmed %d project(s)\n", len(candidates))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview without writing")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
