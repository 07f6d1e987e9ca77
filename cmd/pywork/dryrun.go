// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"pywork/internal/runtime"
	"pywork/internal/venv"
)

// renderDryRun prints the resolved execution context for one step without
// executing it. It shows the target name, runtime, working directory,
// script content, and the environment the target would receive —
// everything a user needs to understand what pywork would do.
func renderDryRun(w io.Writer, p *project, ctx *runtime.ExecutionContext) {
	fmt.Fprintln(w, TitleStyle.Render("Dry Run: "+ctx.Target.Name))
	fmt.Fprintln(w)

	mode := ctx.Target.Runtime
	if mode == "" {
		mode = p.defaultRuntime()
	}
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Target:"), ctx.Target.Name)
	if ctx.Target.Description != "" {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Description:"), ctx.Target.Description)
	}
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Runtime:"), string(mode))
	fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Workfile:"), ctx.Workfile.FilePath)

	if ctx.WorkDir != "" {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("WorkDir:"), ctx.WorkDir)
	} else if ctx.Target.WorkDir != "" {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("WorkDir:"), ctx.Target.WorkDir)
	}

	if ctx.Target.NeedsVenv && ctx.Venv != nil {
		state := "missing"
		if ctx.Venv.Exists() {
			state = "ready"
		}
		fmt.Fprintf(w, "  %s %s (%s)\n", VerboseHighlightStyle.Render("Venv:"), ctx.Venv.Dir(), state)
	}

	if len(ctx.PositionalArgs) > 0 {
		fmt.Fprintf(w, "  %s %s\n", VerboseHighlightStyle.Render("Args:"), strings.Join(ctx.PositionalArgs, " "))
	}

	// Script content.
	fmt.Fprintln(w)
	fmt.Fprintln(w, VerboseHighlightStyle.Render("  Script:"))
	if ctx.Target.IsScriptFile() {
		fmt.Fprintf(w, "    (file: %s)\n", ctx.Target.ScriptFilePath(ctx.Workfile.FilePath))
	} else {
		for _, line := range strings.Split(strings.TrimRight(ctx.Target.Script, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}

	// Environment the target would see, limited to the variables pywork
	// injects or the workfile declares.
	env, err := runtime.BuildEnv(ctx)
	if err != nil {
		fmt.Fprintf(w, "\n  %s %v\n", WarningStyle.Render("Environment resolution failed:"), err)
		fmt.Fprintln(w)
		return
	}
	shown := make(map[string]string)
	for k, v := range env {
		if isPyworkVar(k) || hasTargetVar(ctx, k) {
			shown[k] = v
		}
	}
	if len(shown) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, VerboseHighlightStyle.Render("  Environment:"))
		for _, k := range slices.Sorted(maps.Keys(shown)) {
			fmt.Fprintf(w, "    %s=%s\n", k, shown[k])
		}
	}

	fmt.Fprintln(w)
}

// isPyworkVar reports whether a variable is injected by pywork itself.
func isPyworkVar(name string) bool {
	switch name {
	case runtime.EnvPywork, venv.EnvVenvName, venv.EnvVirtualEnv,
		"PYTHON", "SEP", "PROJECT_DIR", "PROJECT_NAME", "PROJECT_VERSION":
		return true
	}
	return false
}

// hasTargetVar reports whether the target or a CLI flag declares the variable.
func hasTargetVar(ctx *runtime.ExecutionContext, name string) bool {
	if _, ok := ctx.Target.Env[name]; ok {
		return true
	}
	_, ok := ctx.ExtraEnv[name]
	return ok
}
