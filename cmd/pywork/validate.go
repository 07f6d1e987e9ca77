// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"pywork/internal/dag"
	"pywork/internal/issue"
	"pywork/pkg/workfile"

	"github.com/spf13/cobra"
)

// validateCmd checks the workfile for schema and semantic errors without
// executing anything.
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate the workfile",
	Long: `Validate a workfile against its schema and semantic rules:
duplicate targets, dangling or cyclic prerequisites, empty targets,
and tool declarations.

Without a path, the workfile is discovered from the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to determine current directory: %w", err)
		}
		discovered, err := workfile.Discover(cwd)
		if err != nil {
			rendered, _ := issue.Get(issue.WorkfileNotFoundId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return err
		}
		path = discovered
	}

	wf, err := workfile.Parse(path)
	if err != nil {
		rendered, _ := issue.Get(issue.WorkfileParseErrorId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	failed := false

	if errs := wf.Validate(); len(errs) > 0 {
		failed = true
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ Validation failed:"))
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  %s %v\n", ErrorStyle.Render("•"), e)
		}
	}

	// Cycles span multiple targets, so they're checked on the whole graph
	// rather than per target.
	g := buildGraph(wf)
	for _, name := range wf.TargetNames() {
		if _, err := g.OrderFor(name); err != nil {
			var cycleErr *dag.CycleError
			if errors.As(err, &cycleErr) {
				failed = true
				fmt.Fprintf(os.Stderr, "  %s %v\n", ErrorStyle.Render("•"), err)
				break
			}
		}
	}

	if failed {
		return fmt.Errorf("workfile %s is not valid", path)
	}

	fmt.Printf("%s %s is valid (%d targets)\n", SuccessStyle.Render("✓"), path, len(wf.Targets))
	return nil
}
