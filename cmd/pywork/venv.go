// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"pywork/internal/issue"
	"pywork/internal/venv"

	"github.com/spf13/cobra"
)

var (
	venvPython string

	// venvCmd groups the virtual environment subcommands.
	venvCmd = &cobra.Command{
		Use:   "venv",
		Short: "Manage the project's virtual environment",
		Long: `Manage the Python virtual environment of the current project.

The environment name is resolved from VENV_NAME, the workfile's 'venv'
field, the user config, or the default '.venv', in that order.`,
	}

	venvInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the virtual environment if it doesn't exist",
		RunE:  runVenvInit,
	}

	venvRemoveCmd = &cobra.Command{
		Use:     "remove",
		Aliases: []string{"rm"},
		Short:   "Delete the virtual environment",
		RunE:    runVenvRemove,
	}

	venvInfoCmd = &cobra.Command{
		Use:   "info",
		Short: "Show the virtual environment's paths and state",
		RunE:  runVenvInfo,
	}
)

func init() {
	venvInitCmd.Flags().StringVar(&venvPython, "python", "", "base Python interpreter used to create the environment")
	venvCmd.AddCommand(venvInitCmd, venvRemoveCmd, venvInfoCmd)
}

func runVenvInit(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	if p.Venv.Exists() {
		fmt.Printf("%s Virtual environment already exists at %s\n",
			SuccessStyle.Render("✓"), p.Venv.Dir())
		return nil
	}

	basePython := venvPython
	if basePython == "" && p.Config != nil {
		basePython = string(p.Config.BasePython)
	}

	fmt.Printf("%s Creating virtual environment at %s...\n",
		VerboseHighlightStyle.Render("→"), p.Venv.Dir())

	if err := p.Venv.Create(cmd.Context(), basePython); err != nil {
		rendered, _ := issue.Get(issue.PythonNotFoundId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	fmt.Printf("%s Virtual environment ready\n", SuccessStyle.Render("✓"))
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Python:"), p.Venv.Python())
	return nil
}

func runVenvRemove(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	if !p.Venv.Exists() {
		fmt.Printf("%s Nothing to remove: %s does not exist\n",
			VerboseStyle.Render("·"), p.Venv.Dir())
		return nil
	}

	if err := p.Venv.Remove(); err != nil {
		if errors.Is(err, venv.ErrActive) {
			rendered, _ := issue.Get(issue.VenvActiveId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
		}
		return err
	}

	fmt.Printf("%s Removed %s\n", SuccessStyle.Render("✓"), p.Venv.Dir())
	return nil
}

func runVenvInfo(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	state := ErrorStyle.Render("missing")
	if p.Venv.Exists() {
		state = SuccessStyle.Render("ready")
	}
	active := "no"
	if p.Venv.IsActive() {
		active = SuccessStyle.Render("yes")
	}

	fmt.Println(TitleStyle.Render("Virtual Environment"))
	fmt.Println()
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Name:"), p.Venv.Name())
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Path:"), p.Venv.Dir())
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Python:"), p.Venv.Python())
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Separator:"), p.Venv.Separator())
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("State:"), state)
	fmt.Printf("  %s %s\n", VerboseHighlightStyle.Render("Active:"), active)
	return nil
}
