package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/cachescan"
	"github.com/tbleier/ccsweep/internal/format"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/project"
	"github.com/tbleier/ccsweep/internal/sweep"
	"github.com/tbleier/ccsweep/internal/ui/static"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions <project>",
		Short:   "List a project's session logs",
		GroupID: GroupProjects,
		Args:    cobra.ExactArgs(1),
		Example: `  ccsweep sessions my-app                 # List session logs
  ccsweep sessions rm my-app 0198a7c2    # Delete one session log`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			store, _, _, err := loadView(ctx, true)
			if err != nil {
				return err
			}

			p, err := store.Find(args[0])
			if err != nil {
				return err
			}
			if !p.HasCache {
				out.Printf("%s has no cache directory\n", project.DisplayName(p.RealPath))
				return nil
			}

			sessions := cachescan.Sessions(p.DirPath)
			if len(sessions) == 0 {
				out.Println("No session logs found")
				return nil
			}

			headers := []string{"SESSION", "SIZE", "MODIFIED"}
			var rows [][]string
			for _, s := range sessions {
				rows = append(rows, []string{
					s.ID,
					sweep.FormatBytes(s.Size),
					format.RelativeTime(s.Modified),
				})
			}
			out.Print(static.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.AddCommand(newSessionsRmCmd())

	return cmd
}

func newSessionsRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <project> <session-id>",
		Short: "Delete one session log",
		Args:  cobra.ExactArgs(2),
		Long: `Delete a single session log from a project's cache directory. The
configuration file is not touched. This cannot be undone.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			store, _, _, err := loadView(ctx, true)
			if err != nil {
				return err
			}

			p, err := store.Find(args[0])
			if err != nil {
				return err
			}
			if !p.HasCache {
				return fmt.Errorf("%s has no cache directory", project.DisplayName(p.RealPath))
			}

			var target *cachescan.Session
			for _, s := range cachescan.Sessions(p.DirPath) {
				if s.ID == args[1] {
					target = &s
					break
				}
			}
			if target == nil {
				return fmt.Errorf("session %q not found in %s", args[1], project.DisplayName(p.RealPath))
			}

			ok, err := confirmOrAbort(fmt.Sprintf("Delete session %s (%s)?", target.ID, sweep.FormatBytes(target.Size)), yes)
			if err != nil {
				return err
			}
			if !ok {
				out.Println("Cancelled")
				return nil
			}

			if err := os.Remove(target.Path); err != nil {
				return fmt.Errorf("delete session log: %w", err)
			}

			out.Printf("Deleted %s\n", target.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}
