package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/project"
	"github.com/tbleier/ccsweep/internal/settings"
)

func newUseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "use [<project>]",
		Short:   "Set or show the active project",
		GroupID: GroupProjects,
		Args:    cobra.MaximumNArgs(1),
		Long: `With an argument, resolve the project and persist it as the active
project. Without an argument, print the active project; when none is
set, fall back to the most recently used configuration entry.

The fallback is a file-order heuristic over the configuration: the
first entry with a recorded session wins.`,
		Example: `  ccsweep use my-app   # Set active project
  ccsweep use          # Show active project`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, _, _, err := loadView(ctx, true)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				if prefs.ActiveProject != "" {
					out.Println(prefs.ActiveProject)
					return nil
				}
				if realPath, ok := store.MostRecentlyUsed(); ok {
					l.Println("No active project set, showing most recently used")
					out.Println(realPath)
					return nil
				}
				return fmt.Errorf("no active project set and no project has a recorded session")
			}

			p, err := store.Find(args[0])
			if err != nil {
				return err
			}

			prefs.ActiveProject = p.RealPath
			if err := settings.Save(prefsPath, prefs); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}

			out.Printf("Active project: %s (%s)\n", project.DisplayName(p.RealPath), p.RealPath)
			return nil
		},
	}

	return cmd
}
