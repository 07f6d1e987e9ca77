// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"pywork/internal/dag"
	"pywork/internal/issue"

	"github.com/spf13/cobra"
)

// graphCmd renders the dependency graph of the workfile's targets.
var graphCmd = &cobra.Command{
	Use:   "graph [target]",
	Short: "Show the target dependency graph",
	Long: `Show the dependency graph of workfile targets.

Without arguments, every target is shown as a tree of its
prerequisites. With a target name, only that target's tree and
resolved execution order are shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	p, err := loadProject()
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, TitleStyle.Render("Dependency Graph"))
	fmt.Fprintln(os.Stdout)

	roots := p.Workfile.TargetNames()
	if len(args) == 1 {
		if p.Workfile.GetTarget(args[0]) == nil {
			rendered, _ := issue.Get(issue.TargetNotFoundId).Render("dark")
			fmt.Fprint(os.Stderr, rendered)
			return fmt.Errorf("target '%s' not found", args[0])
		}
		roots = []string{args[0]}
	}

	for _, root := range roots {
		printTargetTree(p, root, 0, make(map[string]bool))
	}

	// For a single target also print the flat execution order, the same
	// order 'pywork run' would use.
	if len(args) == 1 {
		order, err := buildGraph(p.Workfile).OrderFor(args[0])
		if err != nil {
			var cycleErr *dag.CycleError
			if errors.As(err, &cycleErr) {
				rendered, _ := issue.Get(issue.DependencyCycleId).Render("dark")
				fmt.Fprint(os.Stderr, rendered)
			}
			return err
		}
		fmt.Fprintf(os.Stdout, "\n%s %s\n",
			VerboseHighlightStyle.Render("Execution order:"),
			strings.Join(order, " → "))
	}

	return nil
}

// printTargetTree prints one target and its prerequisites as an indented
// tree. Already-seen targets are marked instead of expanded, which also
// keeps cyclic workfiles printable.
func printTargetTree(p *project, name string, depth int, seen map[string]bool) {
	indent := strings.Repeat("  ", depth)
	if seen[name] {
		fmt.Fprintf(os.Stdout, "%s%s %s\n", indent, TargetStyle.Render(name), VerboseStyle.Render("(see above)"))
		return
	}
	seen[name] = true

	target := p.Workfile.GetTarget(name)
	if target == nil {
		fmt.Fprintf(os.Stdout, "%s%s %s\n", indent, ErrorStyle.Render(name), VerboseStyle.Render("(unknown)"))
		return
	}

	label := TargetStyle.Render(name)
	if target.Description != "" {
		label += "  " + VerboseStyle.Render(target.Description)
	}
	fmt.Fprintf(os.Stdout, "%s%s\n", indent, label)

	for _, dep := range target.Deps {
		printTargetTree(p, dep, depth+1, seen)
	}
}
