package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/sweep"
)

func newCleanCmd() *cobra.Command {
	var (
		dryRun bool
		yes    bool
		strict bool
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove stale entries and orphaned cache directories",
		GroupID: GroupCleanup,
		Args:    cobra.NoArgs,
		Long: `Build and apply a cleanup plan covering three kinds of staleness:

  - configuration entries with no cache directory
  - cache directories matching no configuration entry
  - cache directories with no session logs

The plan is always printed before anything is deleted. When any
configuration entry is affected, a timestamped backup of the
configuration file is written and synced before the first deletion.
Individual failures are reported and skip only the affected item; an
item whose directory could not be deleted keeps its configuration
entry.`,
		Example: `  ccsweep clean             # Preview, confirm, apply
  ccsweep clean --dry-run   # Preview only
  ccsweep clean --yes       # Apply without prompting
  ccsweep clean --strict    # Skip directories whose path is only guessed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, cfg, cacheRoot, err := loadView(ctx, false)
			if err != nil {
				return fmt.Errorf("cannot clean: %w", err)
			}

			plan := sweep.BuildPlan(cfg, cacheRoot, store.Projects())
			out.Print(sweep.FormatPlan(plan))

			if plan.Empty() {
				return nil
			}
			if dryRun {
				out.Println("\nDry run, nothing deleted")
				return nil
			}

			ok, err := confirmOrAbort(fmt.Sprintf("Delete %d item(s)?", len(plan.Items)), yes)
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

			results, backupPath, err := sweep.Apply(cfg, plan, backupDir, sweep.Options{Strict: strict})
			if err != nil {
				return err
			}
			if backupPath != "" {
				l.Printf("Configuration backed up to %s\n", backupPath)
			}

			var removed, skipped, failed int
			for _, r := range results {
				switch {
				case r.Err != nil:
					failed++
					l.Warnf("%s: %v", target(r), r.Err)
				case r.Skipped:
					skipped++
					l.Printf("Skipped %s: %s\n", target(r), r.SkipReason)
				default:
					removed++
				}
			}

			out.Printf("\nRemoved %d item(s), skipped %d, failed %d\n", removed, skipped, failed)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview without deleting")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")
	cmd.Flags().BoolVar(&strict, "strict", false, "Skip directories whose real path is only a decoded guess")

	return cmd
}

// target names a result's subject for diagnostics: the directory when one
// exists, the configured path otherwise.
func target(r sweep.Result) string {
	if r.Item.DirName != "" {
		return r.Item.DirName
	}
	return r.Item.RealPath
}
