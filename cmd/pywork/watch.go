// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"pywork/internal/config"
	"pywork/internal/watch"

	"github.com/spf13/cobra"
)

// runWatchMode executes a target once, then re-executes it whenever the
// project's Python sources or build metadata change. It blocks until the
// context is cancelled (e.g., Ctrl+C).
func runWatchMode(cmd *cobra.Command, p *project, name string, positional []string, extraEnv map[string]string) error {
	debounce := time.Duration(config.DefaultWatchDebounceMs) * time.Millisecond
	clearScreen := false
	if p.Config != nil {
		debounce = time.Duration(p.Config.Watch.DebounceMs) * time.Millisecond
		clearScreen = p.Config.Watch.ClearScreen
	}

	// Re-execution closure running the target through the normal pipeline.
	// Failures are reported but don't stop the watcher: the user may fix
	// the error and save again.
	reexecute := func() {
		if err := executePlan(cmd, p, name, positional, extraEnv); err != nil {
			fmt.Fprintf(os.Stderr, "%s Execution failed: %v\n", WarningStyle.Render("!"), err)
		}
	}

	fmt.Fprintf(os.Stdout, "%s Watch mode: initial execution of '%s'\n", VerboseHighlightStyle.Render("→"), name)
	reexecute()

	fmt.Fprintf(os.Stdout, "\n%s Watching for changes (Ctrl+C to stop)...\n\n", VerboseHighlightStyle.Render("→"))

	cfg := watch.Config{
		Patterns:    watch.DefaultPatterns(),
		Ignore:      watch.DefaultIgnores(),
		Debounce:    debounce,
		ClearScreen: clearScreen,
		ProjectDir:  p.Workfile.Dir(),
		OnChange: func(ctx context.Context, changed []string) error {
			fmt.Fprintf(os.Stdout, "%s Detected %d change(s). Re-running '%s'...\n",
				VerboseHighlightStyle.Render("→"), len(changed), name)
			reexecute()
			fmt.Fprintf(os.Stdout, "\n%s Watching for changes...\n\n", VerboseHighlightStyle.Render("→"))
			return nil
		},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	w, err := watch.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(cmd.Context())
}
