package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/log"
	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/settings"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	prefs     settings.Settings
	prefsPath string
)

// Command group IDs for organizing help output
const (
	GroupProjects = "projects"
	GroupCleanup  = "cleanup"
	GroupConfig   = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ccsweep",
	Short: "Manage the AI assistant's local project cache",
	Long: `ccsweep inspects and cleans the local cache an AI coding assistant
leaves behind: the project entries in its JSON configuration file and the
per-project session-log directories under its cache root.

It reconciles the two sides, lists projects with their disk usage, and
sweeps out stale entries and orphaned directories safely, backing up the
configuration file before any destructive change.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}

		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed by now; attach the logger here so --verbose
		// and --quiet take effect.
		logger := log.New(os.Stderr, verbose, quiet)
		cmd.SetContext(log.WithLogger(cmd.Context(), logger))
		return nil
	},
	// Run is not set - shows help when no subcommand provided
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	// Load settings
	path, err := settings.Path()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ccsweep: failed to locate settings: %v\n", err)
		os.Exit(1)
	}
	prefsPath = path

	prefs, err = settings.Load(prefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Default logger; PersistentPreRunE replaces it once flags are parsed
	ctx = log.WithLogger(ctx, log.New(os.Stderr, false, false))

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, os.Stdout)

	// Store context for commands to use
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'ccsweep -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show reconciliation details")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Add command groups for organized help output
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupProjects, Title: "Project Commands:"},
		&cobra.Group{ID: GroupCleanup, Title: "Cleanup Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Project commands
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newUseCmd())
	rootCmd.AddCommand(newSessionsCmd())

	// Cleanup commands
	rootCmd.AddCommand(newCleanCmd())
	rootCmd.AddCommand(newTrimCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
}
