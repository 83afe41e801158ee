package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/format"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/project"
	"github.com/tbleier/ccsweep/internal/sweep"
	"github.com/tbleier/ccsweep/internal/ui/static"
	"github.com/tbleier/ccsweep/internal/ui/styles"
)

// ProjectDisplay holds project info for display
type ProjectDisplay struct {
	Name          string    `json:"name"`
	Path          string    `json:"path"`
	DirName       string    `json:"dir_name,omitempty"`
	HasConfig     bool      `json:"has_config"`
	HasCache      bool      `json:"has_cache"`
	Guessed       bool      `json:"guessed,omitempty"`
	Sessions      int       `json:"sessions"`
	Size          int64     `json:"size"`
	LastModified  time.Time `json:"last_modified"`
	LastSessionID string    `json:"last_session_id,omitempty"`
}

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List projects",
		Aliases: []string{"ls"},
		GroupID: GroupProjects,
		Args:    cobra.NoArgs,
		Long: `List all known projects: configuration entries reconciled against
cache directories, sorted by last modification (most recent first).

Projects without a cache directory show "no cache"; cache directories
whose real path could only be guessed from the directory name show
"path guessed". The active project is highlighted.`,
		Example: `  ccsweep list          # Project table
  ccsweep list --json   # Output as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			store, _, _, err := loadView(ctx, true)
			if err != nil {
				return err
			}

			projects := store.List()

			if jsonOutput {
				displays := make([]ProjectDisplay, 0, len(projects))
				for _, p := range projects {
					displays = append(displays, ProjectDisplay{
						Name:          project.DisplayName(p.RealPath),
						Path:          p.RealPath,
						DirName:       p.DirName,
						HasConfig:     p.HasConfig,
						HasCache:      p.HasCache,
						Guessed:       p.Source == project.SourceGuessed,
						Sessions:      p.SessionCount,
						Size:          p.Size,
						LastModified:  p.LastModified,
						LastSessionID: p.LastSessionID,
					})
				}
				return out.JSON(displays)
			}

			if len(projects) == 0 {
				out.Println("No projects found")
				return nil
			}

			headers := []string{"NAME", "PATH", "SESSIONS", "SIZE", "MODIFIED", "NOTE"}
			var rows [][]string
			for _, p := range projects {
				name := project.DisplayName(p.RealPath)
				if p.RealPath == prefs.ActiveProject || name == prefs.ActiveProject {
					name = styles.AccentStyle.Render(name + " *")
				}
				rows = append(rows, []string{
					name,
					p.RealPath,
					strconv.Itoa(p.SessionCount),
					sweep.FormatBytes(p.Size),
					format.RelativeTime(p.LastModified),
					listNote(p),
				})
			}

			out.Print(static.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// listNote summarizes a project's reconciliation state for the table.
func listNote(p project.Project) string {
	switch {
	case !p.HasCache:
		return styles.MutedStyle.Render("no cache")
	case !p.HasConfig && p.Source == project.SourceGuessed:
		return styles.WarningStyle.Render("path guessed")
	case !p.HasConfig:
		return styles.MutedStyle.Render("not in config")
	default:
		return ""
	}
}
