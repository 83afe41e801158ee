package main

import (
	"strconv"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/format"
	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/project"
	"github.com/tbleier/ccsweep/internal/sweep"
	"github.com/tbleier/ccsweep/internal/ui/static"
)

func newShowCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "show <project>",
		Short:   "Show project details",
		GroupID: GroupProjects,
		Args:    cobra.ExactArgs(1),
		Long: `Show details for one project, resolved by display name, cache
directory name, or full real path.`,
		Example: `  ccsweep show my-app            # By display name
  ccsweep show D--Proj-my-app    # By cache directory name
  ccsweep show my-app --copy     # Copy the real path to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			store, _, _, err := loadView(ctx, true)
			if err != nil {
				return err
			}

			p, err := store.Find(args[0])
			if err != nil {
				return err
			}

			source := "confirmed"
			if p.Source == project.SourceGuessed {
				source = "guessed from directory name"
			}

			pairs := [][2]string{
				{"Name", project.DisplayName(p.RealPath)},
				{"Path", p.RealPath},
				{"Path source", source},
				{"Cache directory", p.DirPath},
				{"In configuration", boolYesNo(p.HasConfig)},
				{"Sessions", strconv.Itoa(p.SessionCount)},
				{"Size", sweep.FormatBytes(p.Size)},
				{"Last modified", format.Timestamp(p.LastModified)},
				{"Last session", p.LastSessionID},
				{"History records", strconv.Itoa(p.HistoryLen)},
			}
			out.Print(static.RenderDetails(pairs))

			if copyToClipboard {
				if err := clipboard.WriteAll(p.RealPath); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Path copied to clipboard")
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy real path to clipboard")

	return cmd
}

func boolYesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
