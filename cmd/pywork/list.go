// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"pywork/pkg/workfile"

	"github.com/spf13/cobra"
)

var (
	listAll bool

	// listCmd prints the targets defined in the workfile.
	listCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List targets defined in the workfile",
		Long: `List the targets defined in the workfile, with descriptions.

Targets that don't support the current platform are hidden unless
--all is given.`,
		RunE: runList,
	}
)

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include targets not supported on this platform")
}

func runList(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, TitleStyle.Render("Targets"))
	fmt.Fprintf(os.Stdout, "%s\n\n", SubtitleStyle.Render(p.Workfile.FilePath))

	platform := workfile.CurrentPlatform()
	width := 0
	for i := range p.Workfile.Targets {
		if n := len(p.Workfile.Targets[i].Name); n > width {
			width = n
		}
	}

	shown := 0
	for i := range p.Workfile.Targets {
		target := &p.Workfile.Targets[i]
		supported := target.MatchesPlatform(platform)
		if !supported && !listAll {
			continue
		}
		shown++

		line := fmt.Sprintf("  %s  %s",
			TargetStyle.Render(fmt.Sprintf("%-*s", width, target.Name)),
			target.Description)
		if !supported {
			line += WarningStyle.Render(fmt.Sprintf(" (requires %s)", target.PlatformsString()))
		}
		fmt.Fprintln(os.Stdout, line)

		if verbose && len(target.Deps) > 0 {
			fmt.Fprintf(os.Stdout, "  %s  %s\n",
				strings.Repeat(" ", width),
				VerboseStyle.Render("deps: "+strings.Join(target.Deps, ", ")))
		}
	}

	if shown == 0 {
		fmt.Fprintln(os.Stdout, VerboseStyle.Render("  (no targets)"))
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", VerboseStyle.Render("Run a target with 'pywork run <target>'."))
	return nil
}
