package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tbleier/ccsweep/internal/output"
	"github.com/tbleier/ccsweep/internal/settings"
	"github.com/tbleier/ccsweep/internal/ui/static"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Show or change ccsweep settings",
		GroupID: GroupConfig,
		Long: `Show or change ccsweep's own settings, stored in
~/.config/ccsweep/config.toml.

Keys:
  config_file     path to the assistant configuration JSON
  cache_root      path to the session cache root
  active_project  project selected by "use"`,
		Example: `  ccsweep config show
  ccsweep config set cache_root ~/.claude/projects`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())

			configFile, err := prefs.ConfigFilePath()
			if err != nil {
				return err
			}
			cacheRoot, err := prefs.CacheRootPath()
			if err != nil {
				return err
			}

			pairs := [][2]string{
				{"Settings file", prefsPath},
				{"config_file", configFile},
				{"cache_root", cacheRoot},
				{"active_project", prefs.ActiveProject},
			}
			out.Print(static.RenderDetails(pairs))
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a settings value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			key, value := args[0], args[1]

			switch key {
			case "config_file":
				if err := settings.ValidatePath(value, key); err != nil {
					return err
				}
				prefs.ConfigFile = value
			case "cache_root":
				if err := settings.ValidatePath(value, key); err != nil {
					return err
				}
				prefs.CacheRoot = value
			case "active_project":
				prefs.ActiveProject = value
			default:
				return fmt.Errorf("unknown key %q (valid: config_file, cache_root, active_project)", key)
			}

			if err := settings.Save(prefsPath, prefs); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}

			out.Printf("%s = %s\n", key, value)
			return nil
		},
	}
}
