// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"pywork/internal/config"
	"pywork/internal/pyproject"
	"pywork/pkg/workfile"

	"github.com/spf13/cobra"
)

var (
	initForce       bool
	initProjectName string
	initVenvName    string

	// initCmd creates a starter workfile in the current directory.
	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a workfile in the current directory",
		Long: `Create a workfile.cue in the current directory with the standard
Python development targets: venv management, formatting, linting, type
checking, security scanning, testing, coverage, build and publish.

When a pyproject.toml exists next to the workfile, the project name is
taken from it.`,
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing workfile")
	initCmd.Flags().StringVar(&initProjectName, "name", "", "project name (defaults to pyproject.toml or the directory name)")
	initCmd.Flags().StringVar(&initVenvName, "venv", "", "virtual environment directory name")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := "workfile.cue"
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	wf := workfile.NewPythonStarter(resolveProjectName(filename), resolveVenvName())

	if err := os.WriteFile(filename, []byte(workfile.GenerateCUE(wf)), 0o644); err != nil {
		return fmt.Errorf("failed to write workfile: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Run 'pywork venv init' to create the virtual environment")
	fmt.Println("  2. Run 'pywork list' to see the available targets")
	fmt.Println("  3. Run 'pywork run test' to run the test suite")

	return nil
}

// resolveProjectName picks the project name: the --name flag, then the
// pyproject.toml next to the workfile, then the directory name.
func resolveProjectName(workfilePath string) string {
	if initProjectName != "" {
		return initProjectName
	}

	dir := filepath.Dir(workfilePath)
	if meta, err := pyproject.Load(filepath.Join(dir, "pyproject.toml")); err == nil && meta.Name != "" {
		return meta.Name
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "project"
	}
	return filepath.Base(abs)
}

// resolveVenvName picks the venv directory name: the --venv flag, then
// the user config, then the default.
func resolveVenvName() string {
	if initVenvName != "" {
		return initVenvName
	}
	if cfg, err := config.Load(); err == nil && cfg.VenvName != "" {
		return string(cfg.VenvName)
	}
	return config.DefaultVenvName
}
