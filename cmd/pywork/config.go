// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"pywork/internal/config"
	"pywork/internal/issue"

	"github.com/spf13/cobra"
)

// configCmd groups the configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage pywork configuration",
	Long: `Manage pywork configuration.

Configuration is stored in:
  - Linux: ~/.config/pywork/config.cue
  - macOS: ~/Library/Application Support/pywork/config.cue
  - Windows: %APPDATA%\pywork\config.cue

Individual values can be overridden with PYWORK_* environment
variables, e.g. PYWORK_VENV_NAME.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showConfig()
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create the default configuration file",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.CreateDefaultConfig(); err != nil {
					return err
				}
				path, err := config.ConfigFilePath()
				if err != nil {
					return err
				}
				fmt.Printf("%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Show the configuration file path",
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := config.ConfigFilePath()
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Output the effective configuration as CUE",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				fmt.Print(config.GenerateCUE(cfg))
				return nil
			},
		},
	)
}

func showConfig() error {
	cfg, err := config.Load()
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	fmt.Println(TitleStyle.Render("Current Configuration"))
	fmt.Println()

	if path := config.LoadedPath(); path != "" {
		fmt.Printf("%s: %s\n", TargetStyle.Render("Config file"), path)
	} else {
		fmt.Printf("%s: %s\n", TargetStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s: %s\n", TargetStyle.Render("default_runtime"), SuccessStyle.Render(string(cfg.DefaultRuntime)))
	fmt.Printf("%s: %s\n", TargetStyle.Render("venv_name"), SuccessStyle.Render(string(cfg.VenvName)))
	if cfg.BasePython != "" {
		fmt.Printf("%s: %s\n", TargetStyle.Render("base_python"), SuccessStyle.Render(string(cfg.BasePython)))
	}
	fmt.Printf("%s: %s\n", TargetStyle.Render("watch.debounce_ms"), SuccessStyle.Render(fmt.Sprintf("%d", cfg.Watch.DebounceMs)))
	fmt.Printf("%s: %s\n", TargetStyle.Render("watch.clear_screen"), SuccessStyle.Render(fmt.Sprintf("%t", cfg.Watch.ClearScreen)))
	fmt.Printf("%s: %s\n", TargetStyle.Render("ui.color_scheme"), SuccessStyle.Render(string(cfg.UI.ColorScheme)))
	fmt.Printf("%s: %s\n", TargetStyle.Render("ui.verbose"), SuccessStyle.Render(fmt.Sprintf("%t", cfg.UI.Verbose)))

	return nil
}
